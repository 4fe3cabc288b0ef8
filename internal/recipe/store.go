package recipe

import (
	"sort"
	"sync"

	"github.com/yourusername/recipe-box/internal/apperr"
)

// IngredientDirectory は食材マスタを保持するインメモリストアです。
// 正規化後の名前（trim + 小文字化）で一意性を保証します。
// 食材の削除・改名はサポートしないため、参照整合性は追記のみで保たれます。
type IngredientDirectory struct {
	mu     sync.RWMutex
	byID   map[int]Ingredient
	byName map[string]int
	seq    int
}

// NewIngredientDirectory は空の食材マスタを作成します。
func NewIngredientDirectory() *IngredientDirectory {
	return &IngredientDirectory{
		byID:   make(map[int]Ingredient),
		byName: make(map[string]int),
	}
}

// Create は食材を登録します。正規化後の名前が既に存在する場合は Conflict を返します。
func (d *IngredientDirectory) Create(name string) (Ingredient, error) {
	normalized := normalizeName(name)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byName[normalized]; exists {
		return Ingredient{}, apperr.Conflict("Ingredient already exists")
	}

	d.seq++
	ingredient := Ingredient{ID: d.seq, Name: name}
	d.byID[ingredient.ID] = ingredient
	d.byName[normalized] = ingredient.ID
	return ingredient, nil
}

// List は全食材をID昇順で返します。
func (d *IngredientDirectory) List() []Ingredient {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ingredients := make([]Ingredient, 0, len(d.byID))
	for _, ingredient := range d.byID {
		ingredients = append(ingredients, ingredient)
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].ID < ingredients[j].ID })
	return ingredients
}

// Get はIDで食材を取得します。
func (d *IngredientDirectory) Get(id int) (Ingredient, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ingredient, ok := d.byID[id]
	return ingredient, ok
}

// IDByName は正規化後の名前で食材IDを検索します。
func (d *IngredientDirectory) IDByName(name string) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byName[normalizeName(name)]
	return id, ok
}

// Exists はIDの食材が存在するかを返します。
func (d *IngredientDirectory) Exists(id int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.byID[id]
	return ok
}

// Reset は全食材を破棄し、ID採番を 1 からやり直します（テスト用途）。
func (d *IngredientDirectory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.byID = make(map[int]Ingredient)
	d.byName = make(map[string]int)
	d.seq = 0
}

// Store はレシピを保持するインメモリストアです。
// 参照・更新・削除は所有者IDで絞り込み、他人のレシピは存在しないものとして扱います。
type Store struct {
	mu      sync.RWMutex
	recipes map[int]Recipe
	seq     int
}

// NewStore は空のレシピストアを作成します。
func NewStore() *Store {
	return &Store{
		recipes: make(map[int]Recipe),
	}
}

// Create はレシピを登録します。検証済みの入力のみを受け取ります。
func (s *Store) Create(ownerID int, title, steps string, ingredients []RecipeIngredient) Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	recipe := Recipe{
		ID:          s.seq,
		OwnerID:     ownerID,
		Title:       title,
		Steps:       steps,
		Ingredients: append([]RecipeIngredient(nil), ingredients...),
	}
	s.recipes[recipe.ID] = recipe
	return copyRecipe(recipe)
}

// ListByOwner は所有者のレシピをID昇順で返します。
// filterIngredientID が指定された場合は、その食材を含むレシピのみを返します。
func (s *Store) ListByOwner(ownerID int, filterIngredientID *int) []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]Recipe, 0)
	for _, recipe := range s.recipes {
		if recipe.OwnerID != ownerID {
			continue
		}
		if filterIngredientID != nil && !containsIngredient(recipe, *filterIngredientID) {
			continue
		}
		recipes = append(recipes, copyRecipe(recipe))
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes
}

// Get は所有者のレシピを取得します。
// 存在しない場合も、他人のレシピの場合も同じ NotFound を返します。
func (s *Store) Get(id, ownerID int) (Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, ok := s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return Recipe{}, apperr.NotFound("Recipe not found")
	}
	return copyRecipe(recipe), nil
}

// Update は所有者のレシピを部分更新します。nil のフィールドは変更しません。
// owner_id は決して変更されません。
func (s *Store) Update(id, ownerID int, title, steps *string, ingredients []RecipeIngredient) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return Recipe{}, apperr.NotFound("Recipe not found")
	}

	if title != nil {
		recipe.Title = *title
	}
	if steps != nil {
		recipe.Steps = *steps
	}
	if ingredients != nil {
		recipe.Ingredients = append([]RecipeIngredient(nil), ingredients...)
	}
	s.recipes[id] = recipe
	return copyRecipe(recipe), nil
}

// Delete は所有者のレシピを削除します。
func (s *Store) Delete(id, ownerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return apperr.NotFound("Recipe not found")
	}
	delete(s.recipes, id)
	return nil
}

// Reset は全レシピを破棄し、ID採番を 1 からやり直します（テスト用途）。
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = make(map[int]Recipe)
	s.seq = 0
}

func copyRecipe(r Recipe) Recipe {
	r.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	return r
}

func containsIngredient(r Recipe, ingredientID int) bool {
	for _, ing := range r.Ingredients {
		if ing.IngredientID == ingredientID {
			return true
		}
	}
	return false
}
