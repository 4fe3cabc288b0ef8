// Package recipe は食材とレシピのCRUDを提供します。
// ストレージはインメモリで、レシピは所有者のみが参照・変更できます。
package recipe

import (
	"fmt"
	"sort"
	"strings"
)

// AllowedUnits は分量の単位として許可される値の集合です（大文字小文字を区別）。
var AllowedUnits = map[string]struct{}{
	"g":    {},
	"kg":   {},
	"ml":   {},
	"l":    {},
	"tsp":  {},
	"tbsp": {},
	"pcs":  {},
}

// Ingredient は食材マスタの1件です。
type Ingredient struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RecipeIngredient はレシピ内の食材と分量です。
type RecipeIngredient struct {
	IngredientID int     `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

// Recipe はレシピの1件です。owner_id は作成後に変わりません。
type Recipe struct {
	ID          int                `json:"id"`
	OwnerID     int                `json:"owner_id"`
	Title       string             `json:"title"`
	Steps       string             `json:"steps"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

type ingredientCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type recipeIngredientInput struct {
	IngredientID int     `json:"ingredient_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0,lte=999999.99"`
	Unit         string  `json:"unit" binding:"required,min=1,max=10"`
}

type recipeCreateRequest struct {
	Title       string                   `json:"title" binding:"required,min=1,max=200"`
	Steps       string                   `json:"steps" binding:"required,min=1,max=10000"`
	Ingredients *[]recipeIngredientInput `json:"ingredients" binding:"required,max=100,dive"`
}

type recipeUpdateRequest struct {
	Title       *string                  `json:"title" binding:"omitempty,min=1,max=200"`
	Steps       *string                  `json:"steps" binding:"omitempty,min=1,max=10000"`
	Ingredients *[]recipeIngredientInput `json:"ingredients" binding:"omitempty,max=100,dive"`
}

// normalizeName は食材名を一意性の判定に使う形へ正規化します。
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// checkUnit は単位が許可リストに含まれるかを検証します。
func checkUnit(unit string) (string, bool) {
	if _, ok := AllowedUnits[unit]; ok {
		return "", true
	}
	allowed := make([]string, 0, len(AllowedUnits))
	for u := range AllowedUnits {
		allowed = append(allowed, u)
	}
	sort.Strings(allowed)
	return fmt.Sprintf("Unit must be one of: %s. Got: %s", strings.Join(allowed, ", "), unit), false
}
