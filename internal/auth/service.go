package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/yourusername/recipe-box/internal/apperr"
	"github.com/yourusername/recipe-box/internal/session"
)

// パスワードポリシーの境界値
const (
	passwordMinLength = 8
	passwordMaxLength = 128
)

// Service は登録・ログイン・トークン解決を提供する認証サービスです。
// セッションストアには session.Store インターフェース経由でのみアクセスします。
type Service struct {
	users    *Directory
	sessions session.Store
}

// NewService は認証サービスを作成します。
func NewService(users *Directory, sessions session.Store) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// Register はバリデーションを通過したユーザーを登録し、公開情報を返します。
// ダイジェストは決して返しません。
func (s *Service) Register(email, password string) (*PublicUser, error) {
	var fields []apperr.FieldError
	if msg, ok := checkEmailShape(email); !ok {
		fields = append(fields, apperr.FieldError{Field: "email", Message: msg})
	}
	if msg, ok := checkPasswordPolicy(password); !ok {
		fields = append(fields, apperr.FieldError{Field: "password", Message: msg})
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	user, err := s.users.Create(email, password)
	if err != nil {
		return nil, err
	}
	return &PublicUser{ID: user.ID, Email: user.Email}, nil
}

// Login は資格情報を検証し、新しいベアラートークンを発行します。
// メールアドレスが未登録の場合とパスワードが誤っている場合は
// 同一のメッセージを返し、アカウントの存在を漏らしません。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, found := s.users.FindByEmail(email)
	if !found || !VerifyPassword(password, user.PasswordDigest) {
		return "", apperr.Unauthorized("Invalid credentials")
	}

	token, err := GenerateToken()
	if err != nil {
		return "", fmt.Errorf("token generation failed: %w", err)
	}
	if err := s.sessions.StoreToken(ctx, token, user.ID); err != nil {
		return "", fmt.Errorf("session store failed: %w", err)
	}
	return token, nil
}

// ResolveToken はトークンから現在のユーザーを解決します。
// トークンが解決できない場合は Unauthorized、解決できたのにユーザーが
// 存在しない場合（通常は起こりません）は NotFound を返します。
func (s *Service) ResolveToken(ctx context.Context, token string) (*PublicUser, error) {
	userID, found, err := s.sessions.ResolveToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session resolve failed: %w", err)
	}
	if !found {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	user, ok := s.users.FindByID(userID)
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &PublicUser{ID: user.ID, Email: user.Email}, nil
}

// checkEmailShape はメールアドレスの形式を検証します。
// 「@ を含み、ローカル部が空でなく、ドメインに . を含む」ことのみを要求します。
func checkEmailShape(email string) (string, bool) {
	normalized := NormalizeEmail(email)
	if len(normalized) < 5 || len(normalized) > 255 {
		return "must be between 5 and 255 characters", false
	}
	if !strings.Contains(normalized, "@") ||
		strings.HasPrefix(normalized, "@") || strings.HasSuffix(normalized, "@") {
		return "must contain '@' and domain part", false
	}
	local, domain, _ := strings.Cut(normalized, "@")
	if local == "" || domain == "" || !strings.Contains(domain, ".") {
		return "must contain domain with dot", false
	}
	return "", true
}

// checkPasswordPolicy はパスワードポリシーを検証します。
// 長さ 8〜128 で、英字と数字を少なくとも1文字ずつ含む必要があります。
func checkPasswordPolicy(password string) (string, bool) {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return fmt.Sprintf("must be between %d and %d characters", passwordMinLength, passwordMaxLength), false
	}

	hasLetter := false
	hasDigit := false
	for _, ch := range password {
		switch {
		case unicode.IsLetter(ch):
			hasLetter = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "must include letters and digits", false
	}
	return "", true
}
