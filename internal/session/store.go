// Package session はログイントークンとユーザーIDの対応を保持するストアを提供します。
// バックエンドはプロセス内メモリと Redis の2種類で、選択は設定で行います。
package session

import (
	"context"
	"fmt"

	"github.com/yourusername/recipe-box/internal/config"
)

// Store はセッションストアのインターフェースです。
// 認証サービスはこの3操作のみに依存します。
type Store interface {
	// StoreToken はトークンをユーザーIDに紐付けて保存します。
	// 同一トークンの再保存は上書きとして扱います。
	StoreToken(ctx context.Context, token string, userID int) error

	// ResolveToken はトークンに対応するユーザーIDを返します。
	// 未発行・期限切れのトークンは (0, false, nil) を返します。
	ResolveToken(ctx context.Context, token string) (int, bool, error)

	// Reset は自ストアが保持するセッションをすべて破棄します（テスト用途）。
	Reset(ctx context.Context) error
}

// New は設定に基づいてセッションストアを構築するファクトリーです。
func New(cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.SessionKeyPrefix, cfg.SessionTTLSeconds)
	case config.SessionBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend: %q", cfg.SessionBackend)
	}
}
