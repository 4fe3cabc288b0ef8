// Package apperr はAPI全体で共有するドメインエラー型を提供します。
// §エラー分類（Conflict / Unauthorized / NotFound / ValidationFailed）を
// 閉じたタグ付きバリアントとして表現し、HTTPステータスへの対応付けを一箇所に集約します。
package apperr

import (
	"net/http"
	"strings"
)

// Kind はドメインエラーの分類です。
type Kind int

const (
	// KindBadRequest はリクエストそのものが成立しない場合（空のPATCHなど）を表します。
	KindBadRequest Kind = iota
	// KindUnauthorized は認証情報の欠落・不正を表します。
	KindUnauthorized
	// KindNotFound は対象が存在しない（または他ユーザー所有の）場合を表します。
	KindNotFound
	// KindConflict は一意性制約（メールアドレス・食材名）の衝突を表します。
	KindConflict
	// KindValidation は入力値の形式・ポリシー違反を表します。
	KindValidation
)

// FieldError はフィールド単位のバリデーションエラーです。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はドメインエラーの実体です。ステータスとメッセージを保持し、
// バリデーション失敗の場合はフィールド別の詳細を併せて保持します。
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

// Error は error インターフェースを満たします。
func (e *Error) Error() string {
	return e.Message
}

// Status はエラー分類に対応するHTTPステータスコードを返します。
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest は 400 エラーを作成します。
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Unauthorized は 401 エラーを作成します。
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotFound は 404 エラーを作成します。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict は 409 エラーを作成します。
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unprocessable はフィールド詳細を持たない 422 エラーを作成します
// （例: 存在しない ingredient_id の参照）。
func Unprocessable(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validation はフィールド別の詳細付き 422 エラーを作成します。
// メッセージは "field: message" をセミコロンで連結した文字列になります。
func Validation(fields ...FieldError) *Error {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(parts, "; "),
		Fields:  fields,
	}
}
