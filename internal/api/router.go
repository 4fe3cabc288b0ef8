// Package api はルーターの組み立てを行います。
// cmd/api とテストの両方から同じ構成でアプリケーションを構築できるようにします。
package api

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yourusername/recipe-box/internal/auth"
	"github.com/yourusername/recipe-box/internal/config"
	"github.com/yourusername/recipe-box/internal/problem"
	"github.com/yourusername/recipe-box/internal/recipe"
	"github.com/yourusername/recipe-box/internal/session"
)

// Dependencies はルーターが利用する共有ストアの集合です。
// テストから明示的に構築・リセットできるよう、グローバル変数にはしません。
type Dependencies struct {
	Users       *auth.Directory
	Sessions    session.Store
	Ingredients *recipe.IngredientDirectory
	Recipes     *recipe.Store
}

// NewDependencies はインメモリのストア一式を作成します。
func NewDependencies(sessions session.Store) *Dependencies {
	return &Dependencies{
		Users:       auth.NewDirectory(),
		Sessions:    sessions,
		Ingredients: recipe.NewIngredientDirectory(),
		Recipes:     recipe.NewStore(),
	}
}

var tagNameOnce sync.Once

// registerTagNames はバリデーションエラーのフィールド名を json タグ名に揃えます。
func registerTagNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// New はルーターを組み立てます。
func New(cfg *config.Config, deps *Dependencies) *gin.Engine {
	registerTagNames()

	router := gin.New()
	router.Use(gin.Logger(), problem.Recovery())
	router.NoRoute(problem.NoRoute)
	router.NoMethod(problem.NoMethod)
	router.HandleMethodNotAllowed = true

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	authService := auth.NewService(deps.Users, deps.Sessions)
	authHandler := auth.NewHandler(authService)
	recipeHandler := recipe.NewHandler(deps.Ingredients, deps.Recipes)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	// ベアラートークン必須のルート
	authorized := router.Group("/", auth.RequireAuth(authService))
	authorized.GET("/auth/me", authHandler.Me)

	authorized.POST("/ingredients", recipeHandler.CreateIngredient)
	authorized.GET("/ingredients", recipeHandler.ListIngredients)
	authorized.GET("/ingredients/:id", recipeHandler.GetIngredient)

	authorized.POST("/recipes", recipeHandler.CreateRecipe)
	authorized.GET("/recipes", recipeHandler.ListRecipes)
	authorized.GET("/recipes/:id", recipeHandler.GetRecipe)
	authorized.PATCH("/recipes/:id", recipeHandler.UpdateRecipe)
	authorized.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)

	return router
}
