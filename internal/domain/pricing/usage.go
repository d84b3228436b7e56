package pricing

import (
	"fmt"

	"gorm.io/gorm"
)

// IncrementUse counts one redemption of a discount. The increment is a
// conditional UPDATE so a capped discount's counter never passes its limit;
// hitting the cap is not an error, the rule simply stops applying.
func IncrementUse(db *gorm.DB, discountID uint) error {
	res := db.Model(&Discount{}).
		Where("id = ? AND (max_uses IS NULL OR current_uses < max_uses)", discountID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to count discount use: %w", res.Error)
	}
	return nil
}
