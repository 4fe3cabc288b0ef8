// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/recipe-box/internal/api"
	"github.com/yourusername/recipe-box/internal/config"
	"github.com/yourusername/recipe-box/internal/session"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// セッションバックエンドの構築（Redisの場合はここで疎通確認まで行う）
	sessions, err := session.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	log.Printf("Session backend: %s", cfg.SessionBackend)

	router := api.New(cfg, api.NewDependencies(sessions))

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
