package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductPatchAppliesOnlySetFields(t *testing.T) {
	catID := 2
	current := Product{ID: 1, Name: "Espresso Machine", Price: 3500, Stock: 10, CategoryID: &catID}

	price := 3999.0
	merged := ProductPatch{Price: &price}.Apply(current)

	assert.Equal(t, "Espresso Machine", merged.Name)
	assert.Equal(t, 3999.0, merged.Price)
	assert.Equal(t, 10, merged.Stock)
	assert.Equal(t, &catID, merged.CategoryID)

	// The original value is untouched.
	assert.Equal(t, 3500.0, current.Price)
}

func TestProductPatchReplacesCategory(t *testing.T) {
	current := Product{ID: 1, Name: "Espresso Machine"}

	newCat := 7
	merged := ProductPatch{CategoryID: &newCat}.Apply(current)

	assert.NotNil(t, merged.CategoryID)
	assert.Equal(t, 7, *merged.CategoryID)
}

func TestUserPatch(t *testing.T) {
	current := User{Username: "alice", Password: "old-hash", Role: RoleCashier}

	role := RoleManager
	merged := UserPatch{Role: &role}.Apply(current)

	assert.Equal(t, "old-hash", merged.Password)
	assert.Equal(t, RoleManager, merged.Role)
}

func TestContactPatch(t *testing.T) {
	current := Contact{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Smith", Email: "a@example.com", Phone: "123"}

	email := "alice@example.com"
	phone := "456"
	merged := ContactPatch{Email: &email, Phone: &phone}.Apply(current)

	assert.Equal(t, "Alice", merged.FirstName)
	assert.Equal(t, "alice@example.com", merged.Email)
	assert.Equal(t, "456", merged.Phone)
}
