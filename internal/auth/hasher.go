// Package auth はパスワード認証とベアラートークンによるセッション解決を提供します。
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// passwordIterations は PBKDF2-HMAC-SHA256 の反復回数です。
	passwordIterations = 120_000
	// saltLength はソルトのバイト長です。
	saltLength = 16
	// digestSeparator はソルトと導出鍵を区切る文字です（base64 の出力には現れません）。
	digestSeparator = ":"
)

// HashPassword はパスワードをソルト付きダイジェストに変換します。
// 呼び出しごとに新しいソルトを生成するため、同じパスワードでも出力は毎回異なります。
// 形式: base64(salt) ":" base64(derived_key)
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, passwordIterations, sha256.Size, sha256.New)
	return base64.StdEncoding.EncodeToString(salt) + digestSeparator +
		base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword はパスワードを保存済みダイジェストと照合します。
// ダイジェストが不正な形式の場合はエラーにせず false を返します。
// 比較は常に一定時間で行い、タイミング攻撃を防ぎます。
func VerifyPassword(password, digest string) bool {
	saltPart, keyPart, found := strings.Cut(digest, digestSeparator)
	if !found {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(keyPart)
	if err != nil {
		return false
	}

	actual := pbkdf2.Key([]byte(password), salt, passwordIterations, sha256.Size, sha256.New)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}
