package pricing

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Discount{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestIncrementUseStopsAtCap(t *testing.T) {
	db := openTestDB(t)
	maxUses := 2
	d := Discount{Name: "early-bird", DiscountType: DiscountTypePercentage, Value: 10, MaxUses: &maxUses, IsActive: true}
	if err := db.Create(&d).Error; err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := IncrementUse(db, d.ID); err != nil {
			t.Fatalf("increment %d: %v", i+1, err)
		}
	}

	var got Discount
	if err := db.First(&got, d.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CurrentUses != 2 {
		t.Fatalf("counter must stop at max_uses, got %d", got.CurrentUses)
	}
}

func TestIncrementUseUnlimited(t *testing.T) {
	db := openTestDB(t)
	d := Discount{Name: "members", DiscountType: DiscountTypeFixed, Value: 5, IsActive: true}
	if err := db.Create(&d).Error; err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		if err := IncrementUse(db, d.ID); err != nil {
			t.Fatal(err)
		}
	}

	var got Discount
	if err := db.First(&got, d.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CurrentUses != 4 {
		t.Fatalf("uncapped discount should count every use, got %d", got.CurrentUses)
	}
}
