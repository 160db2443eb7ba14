package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tw092669-ctrl/gecko/internal/analysis"
	"github.com/tw092669-ctrl/gecko/internal/config"
	"github.com/tw092669-ctrl/gecko/internal/database"
	"github.com/tw092669-ctrl/gecko/internal/router"
	"github.com/tw092669-ctrl/gecko/internal/syncx"

	"github.com/joho/godotenv"
)

func main() {
	// .env 里通常只放 GEMINI_API_KEY，没有也无所谓
	_ = godotenv.Load()

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure data directory exists
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// 外部同步推送器
	publisher := syncx.NewPublisher(time.Duration(cfg.Sync.TimeoutSeconds) * time.Second)

	// Gemini 分析：没配 key 就保持 nil，分析接口自动走本地降级
	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	var analyzer *analysis.Analyzer
	if apiKey != "" {
		analyzer, err = analysis.New(context.Background(), apiKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("init gemini client failed, analysis will use local fallback: %v", err)
			analyzer = nil
		}
	} else {
		log.Printf("gemini api key not set, analysis will use local fallback")
	}

	r := router.SetupRouter(cfg, db, publisher, analyzer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
