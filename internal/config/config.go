// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// セッションバックエンドの選択肢
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// セッション設定
	SessionBackend    string // セッションの保存先 (memory | redis)
	RedisURL          string // Redis接続URL（SessionBackend=redis の場合に使用）
	SessionKeyPrefix  string // Redisキーのプレフィックス（デプロイ間の衝突回避用）
	SessionTTLSeconds int    // セッションの有効期間（秒）
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	ttlRaw := getEnv("SESSION_TTL_SECONDS", "3600")
	ttl, err := strconv.Atoi(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL_SECONDS must be an integer, got %q", ttlRaw)
	}

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// セッション設定
		SessionBackend:    strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", SessionBackendMemory))),
		RedisURL:          getEnv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		SessionKeyPrefix:  getEnv("SESSION_KEY_PREFIX", "recipe-session"),
		SessionTTLSeconds: ttl,
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// 不正な値は起動時エラーとして扱い、初回リクエストまで遅延させません。
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, c.SessionBackend)
	}

	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS must be a positive integer, got %d", c.SessionTTLSeconds)
	}

	if c.SessionBackend == SessionBackendRedis && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
