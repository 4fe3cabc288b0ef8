package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes はトークンの乱数バイト長です（256ビットのエントロピー）。
const tokenBytes = 32

// GenerateToken は暗号学的乱数からURLセーフなベアラートークンを生成します。
// ユーザーやリクエストのデータには一切依存しません。
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
