package auth

import (
	"strings"
	"sync"

	"github.com/yourusername/recipe-box/internal/apperr"
)

// User はユーザーの内部表現です。ダイジェストを含むため外部へは返しません。
type User struct {
	ID             int
	Email          string // 正規化済み（trim + 小文字化）
	PasswordDigest string
}

// PublicUser はクライアントへ返すユーザー情報です。
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Directory はメールアドレスとユーザーの対応を保持するインメモリのユーザー台帳です。
// 正規化後のメールアドレスで一意性を保証します。
type Directory struct {
	mu      sync.RWMutex
	byID    map[int]*User
	byEmail map[string]int
	seq     int
}

// NewDirectory は空のユーザー台帳を作成します。
func NewDirectory() *Directory {
	return &Directory{
		byID:    make(map[int]*User),
		byEmail: make(map[string]int),
	}
}

// NormalizeEmail はメールアドレスを一意性の判定に使う形へ正規化します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create はユーザーを登録します。正規化後のメールアドレスが既に存在する場合は
// Conflict を返します。IDは 1 から始まる連番で払い出します。
// パスワードのハッシュ化はロックの外で行います（反復計算が遅いため）。
func (d *Directory) Create(email, password string) (*User, error) {
	normalized := NormalizeEmail(email)

	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[normalized]; exists {
		return nil, apperr.Conflict("User already exists")
	}

	d.seq++
	user := &User{
		ID:             d.seq,
		Email:          normalized,
		PasswordDigest: digest,
	}
	d.byID[user.ID] = user
	d.byEmail[normalized] = user.ID
	return user, nil
}

// FindByEmail は正規化後のメールアドレスでユーザーを検索します。
func (d *Directory) FindByEmail(email string) (*User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, false
	}
	user := d.byID[id]
	return user, user != nil
}

// FindByID はIDでユーザーを検索します。
func (d *Directory) FindByID(id int) (*User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.byID[id]
	return user, ok
}

// Reset は全ユーザーを破棄し、ID採番を 1 からやり直します（テスト用途）。
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.byID = make(map[int]*User)
	d.byEmail = make(map[string]int)
	d.seq = 0
}
