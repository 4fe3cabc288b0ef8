package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// resetScanCount は Reset 時の SCAN 1回あたりの取得件数です。
const resetScanCount = 200

// pingTimeout は構築時の疎通確認に使うタイムアウトです。
const pingTimeout = 5 * time.Second

// RedisStore は Redis にセッションを保持するストアです。
// キーはプレフィックスで分離され、書き込みごとに TTL を満額で設定し直します。
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore は接続URLから RedisStore を作成します。
// 接続できない場合や TTL が正でない場合は初回利用まで遅延せず、その場でエラーを返します。
func NewRedisStore(url, prefix string, ttlSeconds int) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opt), prefix, ttlSeconds)
}

// NewRedisStoreWithClient は既存のクライアントから RedisStore を作成します。
// テストで miniredis のクライアントを注入する場合に使用します。
func NewRedisStoreWithClient(rdb *redis.Client, prefix string, ttlSeconds int) (*RedisStore, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("session TTL must be a positive number of seconds, got %d", ttlSeconds)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection check failed: %w", err)
	}

	return &RedisStore{
		rdb:    rdb,
		prefix: strings.TrimRight(prefix, ":"),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// StoreToken はトークンを保存します。TTL は呼び出しごとに満額で再設定されます。
func (s *RedisStore) StoreToken(ctx context.Context, token string, userID int) error {
	return s.rdb.Set(ctx, s.key(token), strconv.Itoa(userID), s.ttl).Err()
}

// ResolveToken はトークンに対応するユーザーIDを返します。
// キーが存在しない（未発行または期限切れ）場合は (0, false, nil) を返します。
func (s *RedisStore) ResolveToken(ctx context.Context, token string) (int, bool, error) {
	value, err := s.rdb.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value for token: %w", err)
	}
	return userID, true, nil
}

// Reset は自分のプレフィックス配下のキーのみを列挙して削除します。
// 共有しているRedis全体の FLUSH は行いません。
func (s *RedisStore) Reset(ctx context.Context) error {
	var cursor uint64
	pattern := s.prefix + ":*"
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, resetScanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}
