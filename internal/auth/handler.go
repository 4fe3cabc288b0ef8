package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/problem"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,min=5,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,min=5,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Handler は認証関連のHTTPハンドラーをまとめた構造体です。
type Handler struct {
	svc *Service
}

// NewHandler は認証ハンドラーを作成します。
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register は POST /auth/register のハンドラーです。
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem.RespondBinding(c, err)
		return
	}

	user, err := h.svc.Register(req.Email, req.Password)
	if err != nil {
		problem.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login は POST /auth/login のハンドラーです。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem.RespondBinding(c, err)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		problem.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me は GET /auth/me のハンドラーです。RequireAuth の後段で使用します。
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}
