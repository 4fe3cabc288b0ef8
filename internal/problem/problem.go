// Package problem は RFC 7807 Problem Details 形式のエラーレスポンスを提供します。
// ドメインエラー・バリデーションエラー・予期しないエラーのすべてを
// 単一の 出口（Respond）で統一された文書に変換します。
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/recipe-box/internal/apperr"
)

// maskedDetail は予期しないエラー時にクライアントへ返す固定メッセージです。
// 内部の例外テキストは決して応答に含めません。
const maskedDetail = "An unexpected error occurred. Please contact support."

// Document は RFC 7807 のエラー文書です。
type Document struct {
	Type             string              `json:"type"`
	Title            string              `json:"title"`
	Status           int                 `json:"status"`
	Detail           string              `json:"detail"`
	CorrelationID    string              `json:"correlation_id"`
	ValidationErrors []apperr.FieldError `json:"validation_errors,omitempty"`
}

// write はエラー文書を組み立てて応答します。
// correlation_id はレスポンスごとに新規生成します（同一エラーでも再利用しません）。
func write(c *gin.Context, status int, title, detail string, fields []apperr.FieldError) {
	c.Abort()
	c.JSON(status, Document{
		Type:             "about:blank",
		Title:            title,
		Status:           status,
		Detail:           detail,
		CorrelationID:    uuid.NewString(),
		ValidationErrors: fields,
	})
}

// Respond は任意のエラーを RFC 7807 文書に変換して応答します。
// ドメインエラーはステータスとメッセージをそのまま通し、
// それ以外はログにのみ詳細を残してマスクした 500 を返します。
func Respond(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := appErr.Status()
		title := fmt.Sprintf("HTTP %d", status)
		if len(appErr.Fields) > 0 {
			title = "Validation Error"
		}
		write(c, status, title, appErr.Message, appErr.Fields)
		return
	}

	log.Printf("unexpected error: %v (path=%s)", err, c.FullPath())
	write(c, http.StatusInternalServerError, "Internal Server Error", maskedDetail, nil)
}

// RespondBinding はリクエストのバインド失敗を 422 のバリデーションエラーとして応答します。
func RespondBinding(c *gin.Context, err error) {
	Respond(c, FromBindingError(err))
}

// FromBindingError は gin の ShouldBindJSON が返すエラーを
// フィールド別のバリデーションエラーへ変換します。
func FromBindingError(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{
				Field:   fe.Field(),
				Message: messageForTag(fe),
			})
		}
		return apperr.Validation(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.Validation(apperr.FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type),
		})
	}

	// JSONとして解釈できない本文など
	return apperr.Validation(apperr.FieldError{
		Field:   "body",
		Message: "must be valid JSON",
	})
}

// messageForTag はバリデーションタグから人間可読なメッセージを組み立てます。
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s items", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at most %s items", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q constraint", fe.Tag())
	}
}

// Recovery は panic を捕捉してマスクした 500 を返すミドルウェアです。
// 完全な診断情報はログにのみ出力します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic recovered: %v (path=%s)", recovered, c.FullPath())
		write(c, http.StatusInternalServerError, "Internal Server Error", maskedDetail, nil)
	})
}

// NoRoute は未定義ルートへの 404 応答ハンドラーです。
func NoRoute(c *gin.Context) {
	write(c, http.StatusNotFound, "HTTP 404", "Not Found", nil)
}

// NoMethod は許可されていないメソッドへの 405 応答ハンドラーです。
func NoMethod(c *gin.Context) {
	write(c, http.StatusMethodNotAllowed, "HTTP 405", "Method Not Allowed", nil)
}
