package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/apperr"
	"github.com/yourusername/recipe-box/internal/problem"
)

// ContextUserKey は、ハンドラー間で認証済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

// BearerToken は Authorization ヘッダーからベアラートークンを取り出します。
// ヘッダーが無い場合・スキームが bearer 以外の場合・トークンが空の場合は false を返します。
// スキームの比較は大文字小文字を区別しません。
func BearerToken(header string) (string, bool) {
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(rest)
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth はベアラートークンを検証するミドルウェアを返します。
// 成功時は認証済みユーザーをコンテキストに格納します。
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			problem.Respond(c, apperr.Unauthorized("Authorization header missing"))
			return
		}

		user, err := svc.ResolveToken(c.Request.Context(), token)
		if err != nil {
			problem.Respond(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser はコンテキストから認証済みユーザーを取得します。
// RequireAuth を通過したハンドラー内でのみ使用できます。
func CurrentUser(c *gin.Context) *PublicUser {
	user, _ := c.MustGet(ContextUserKey).(*PublicUser)
	return user
}
