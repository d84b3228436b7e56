package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/admin/dashboard", nil)
	c.Set("role", "admin")

	RequireRole("admin")(c)

	if c.IsAborted() {
		t.Fatal("matching role should not abort")
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/admin/dashboard", nil)
	c.Set("role", "user")

	RequireRole("admin")(c)

	if !c.IsAborted() {
		t.Fatal("mismatched role should abort")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/admin/dashboard", nil)

	RequireRole("admin")(c)

	if !c.IsAborted() {
		t.Fatal("missing role should abort")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMembershipFromContextEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := MembershipFromContext(c); got != nil {
		t.Fatalf("expected nil without guard, got %+v", got)
	}
}
