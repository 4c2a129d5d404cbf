// Package main API Server 入口
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrm-admin/internal/apiserver/auth"
	"hrm-admin/internal/apiserver/server"
	"hrm-admin/internal/config"
	"hrm-admin/internal/shared/cache"
	"hrm-admin/internal/shared/cache/redis"
	"hrm-admin/internal/shared/storage/mongostore"
)

func main() {
	// 加载配置（自动加载 .env，根据 APP_ENV 切换数据库和 Redis）
	cfg := config.Load()

	log.Printf("Starting API Server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	// 初始化 MongoDB（持久化业务数据）
	store, err := mongostore.NewStore(cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()
	log.Println("Connected to MongoDB")

	// 初始化 Redis（令牌黑名单）
	// Redis 不可用时降级启动：注销的令牌在过期前仍然有效
	var cacheStore cache.Cache
	if redisStore, err := redis.NewStoreFromURL(cfg.RedisURL); err != nil {
		log.Printf("Redis unavailable, token revocation disabled: %v", err)
		cacheStore = cache.NewNoOpCache()
	} else {
		defer redisStore.Close()
		cacheStore = redisStore
		log.Println("Connected to Redis")
	}

	// 认证配置
	authCfg := auth.DefaultConfig()
	authCfg.JWTSecret = cfg.Auth.JWTSecret
	authCfg.TokenTTL = cfg.TokenTTL
	if !authCfg.Enabled() {
		log.Println("WARNING: JWT_SECRET not set, authentication disabled")
	}

	// 引导超级管理员账户（幂等）
	if err := auth.EnsureSuperAdmin(store, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure super admin: %v", err)
	}

	h := server.NewHandler(store, cacheStore, authCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API Server listening on :%s", cfg.APIPort)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped")
}
