package session

import (
	"context"
	"sync"
)

// MemoryStore はプロセス内メモリにセッションを保持するストアです。
// 有効期限はなく、プロセス終了または Reset で消滅します。
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]int
}

// NewMemoryStore は MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]int),
	}
}

// StoreToken はトークンを保存します。既存トークンは上書きします。
func (s *MemoryStore) StoreToken(_ context.Context, token string, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

// ResolveToken はトークンに対応するユーザーIDを返します。
func (s *MemoryStore) ResolveToken(_ context.Context, token string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok, nil
}

// Reset は保持しているセッションをすべて破棄します。
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]int)
	return nil
}
