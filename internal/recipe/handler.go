package recipe

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apperr"
	"github.com/yourusername/recipe-box/internal/auth"
	"github.com/yourusername/recipe-box/internal/problem"
)

// ingredientQueryMaxLength は ?ingredient= フィルターの最大文字数です。
const ingredientQueryMaxLength = 100

// Handler は食材・レシピのHTTPハンドラーをまとめた構造体です。
type Handler struct {
	ingredients *IngredientDirectory
	recipes     *Store
}

// NewHandler はハンドラーを作成します。
func NewHandler(ingredients *IngredientDirectory, recipes *Store) *Handler {
	return &Handler{
		ingredients: ingredients,
		recipes:     recipes,
	}
}

// CreateIngredient は POST /ingredients のハンドラーです。
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req ingredientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem.RespondBinding(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		problem.Respond(c, apperr.Validation(apperr.FieldError{
			Field: "name", Message: "must not be empty",
		}))
		return
	}

	ingredient, err := h.ingredients.Create(name)
	if err != nil {
		problem.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// ListIngredients は GET /ingredients のハンドラーです。
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, h.ingredients.List())
}

// GetIngredient は GET /ingredients/:id のハンドラーです。
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "ingredient_id")
	if !ok {
		return
	}

	ingredient, found := h.ingredients.Get(id)
	if !found {
		problem.Respond(c, apperr.NotFound("Ingredient not found"))
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// CreateRecipe は POST /recipes のハンドラーです。
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem.RespondBinding(c, err)
		return
	}

	title, steps, ok := trimmedText(c, req.Title, req.Steps)
	if !ok {
		return
	}

	ingredients, err := h.convertIngredients(*req.Ingredients)
	if err != nil {
		problem.Respond(c, err)
		return
	}

	recipe := h.recipes.Create(auth.CurrentUser(c).ID, title, steps, ingredients)
	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes は GET /recipes のハンドラーです。
// ?ingredient=名前 を指定すると、その食材を含む自分のレシピのみを返します。
func (h *Handler) ListRecipes(c *gin.Context) {
	ownerID := auth.CurrentUser(c).ID

	var filterID *int
	if name, exists := c.GetQuery("ingredient"); exists {
		if name == "" || len(name) > ingredientQueryMaxLength {
			problem.Respond(c, apperr.Validation(apperr.FieldError{
				Field:   "ingredient",
				Message: fmt.Sprintf("must be between 1 and %d characters", ingredientQueryMaxLength),
			}))
			return
		}
		id, found := h.ingredients.IDByName(name)
		if !found {
			// 未知の食材名はエラーではなく空の結果
			c.JSON(http.StatusOK, []Recipe{})
			return
		}
		filterID = &id
	}

	c.JSON(http.StatusOK, h.recipes.ListByOwner(ownerID, filterID))
}

// GetRecipe は GET /recipes/:id のハンドラーです。
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(id, auth.CurrentUser(c).ID)
	if err != nil {
		problem.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe は PATCH /recipes/:id のハンドラーです。
// 指定されたフィールドのみを更新します。更新対象が1つも無い場合は 400 を返します。
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	var req recipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem.RespondBinding(c, err)
		return
	}

	if req.Title == nil && req.Steps == nil && req.Ingredients == nil {
		problem.Respond(c, apperr.BadRequest("No fields to update"))
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			problem.Respond(c, apperr.Validation(apperr.FieldError{
				Field: "title", Message: "must not be empty",
			}))
			return
		}
		req.Title = &title
	}
	if req.Steps != nil {
		steps := strings.TrimSpace(*req.Steps)
		if steps == "" {
			problem.Respond(c, apperr.Validation(apperr.FieldError{
				Field: "steps", Message: "must not be empty",
			}))
			return
		}
		req.Steps = &steps
	}

	var ingredients []RecipeIngredient
	if req.Ingredients != nil {
		converted, err := h.convertIngredients(*req.Ingredients)
		if err != nil {
			problem.Respond(c, err)
			return
		}
		ingredients = converted
	}

	recipe, err := h.recipes.Update(id, auth.CurrentUser(c).ID, req.Title, req.Steps, ingredients)
	if err != nil {
		problem.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe は DELETE /recipes/:id のハンドラーです。
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.recipes.Delete(id, auth.CurrentUser(c).ID); err != nil {
		problem.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// convertIngredients は入力の食材リストを検証して内部表現へ変換します。
// 単位の検証を先に行い、その後に食材マスタとの存在照合を行います。
// いずれかが失敗した場合、レシピへの書き込みは一切行われません。
func (h *Handler) convertIngredients(inputs []recipeIngredientInput) ([]RecipeIngredient, error) {
	var fields []apperr.FieldError
	for _, input := range inputs {
		if msg, ok := checkUnit(input.Unit); !ok {
			fields = append(fields, apperr.FieldError{Field: "unit", Message: msg})
		}
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	ingredients := make([]RecipeIngredient, 0, len(inputs))
	for _, input := range inputs {
		if !h.ingredients.Exists(input.IngredientID) {
			return nil, apperr.Unprocessable(fmt.Sprintf("Unknown ingredient_id=%d", input.IngredientID))
		}
		ingredients = append(ingredients, RecipeIngredient{
			IngredientID: input.IngredientID,
			Amount:       input.Amount,
			Unit:         input.Unit,
		})
	}
	return ingredients, nil
}

// trimmedText はタイトルと手順の前後空白を除去し、空になった場合は 422 を返します。
func trimmedText(c *gin.Context, title, steps string) (string, string, bool) {
	title = strings.TrimSpace(title)
	steps = strings.TrimSpace(steps)

	var fields []apperr.FieldError
	if title == "" {
		fields = append(fields, apperr.FieldError{Field: "title", Message: "must not be empty"})
	}
	if steps == "" {
		fields = append(fields, apperr.FieldError{Field: "steps", Message: "must not be empty"})
	}
	if len(fields) > 0 {
		problem.Respond(c, apperr.Validation(fields...))
		return "", "", false
	}
	return title, steps, true
}

// pathID はパスパラメーター :id を整数として取り出します。
func pathID(c *gin.Context, field string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		problem.Respond(c, apperr.Validation(apperr.FieldError{
			Field: field, Message: "must be an integer",
		}))
		return 0, false
	}
	return id, true
}
