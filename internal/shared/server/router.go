package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmassist-backend/internal/chat"
	"farmassist-backend/internal/llm"
	"farmassist-backend/internal/llm/gemini"
	"farmassist-backend/internal/plaintext"
	"farmassist-backend/internal/scans"
	"farmassist-backend/internal/shared/config"
	"farmassist-backend/internal/shared/metrics"
	"farmassist-backend/internal/shared/server/middleware"
	"farmassist-backend/internal/shared/server/respond"
	"farmassist-backend/internal/shared/storage/db"
	"farmassist-backend/internal/shared/storage/object"
	localstore "farmassist-backend/internal/shared/storage/object/local"
	s3store "farmassist-backend/internal/shared/storage/object/s3"
	"farmassist-backend/internal/weather"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 20},
				"UPLOAD":  {Rate: 1, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost &&
					(c.FullPath() == "/api/v1/scans" || c.FullPath() == "/upload-image") {
					return "UPLOAD"
				}
				return "DEFAULT"
			},
		}),
	)

	// Dependencies
	store, serveLocalFiles := newObjectStore(cfg)
	sqlDB := connectDatabase(cfg)

	var vision llm.VisionClient
	var chatLLM llm.ChatClient
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("gemini client init failed: %v", err)
		} else {
			vision = client
			chatLLM = client
		}
	} else {
		log.Printf("GEMINI_API_KEY not set, image analysis and chat are degraded")
	}

	normalizer := plaintext.Default()

	var scanRepo scans.Repo
	if sqlDB != nil {
		scanRepo = &scans.PGRepo{DB: sqlDB}
	} else {
		scanRepo = scans.NewMemoryRepo()
	}
	scanSvc := &scans.Service{
		Repo:       scanRepo,
		Store:      store,
		Vision:     vision,
		Extractor:  scans.NewExtractor(),
		Normalizer: normalizer,
	}
	scanHandler := scans.NewHandler(scanSvc)

	var chatRepo chat.Repo
	if sqlDB != nil {
		chatRepo = &chat.PGRepo{DB: sqlDB}
	} else {
		chatRepo = chat.NewMemoryRepo()
	}
	chatHandler := chat.NewHandler(&chat.Service{
		Repo:       chatRepo,
		LLM:        chatLLM,
		Normalizer: normalizer,
	})

	var weatherRepo weather.Repo
	if sqlDB != nil {
		weatherRepo = &weather.PGRepo{DB: sqlDB}
	} else {
		weatherRepo = weather.NewMemoryRepo()
	}
	var fetcher weather.Fetcher
	if cfg.OpenWeatherAPIKey != "" {
		client, err := weather.NewClient(cfg.OpenWeatherAPIKey)
		if err != nil {
			log.Printf("openweather client init failed: %v", err)
		} else {
			fetcher = client
		}
	} else {
		log.Printf("OPENWEATHER_API_KEY not set, weather lookups are degraded")
	}
	weatherHandler := weather.NewHandler(&weather.Service{
		Repo:    weatherRepo,
		Fetcher: fetcher,
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	scanHandler.RegisterRoutes(api)
	chatHandler.RegisterRoutes(api)
	weatherHandler.RegisterRoutes(api)

	scanHandler.RegisterLegacyRoutes(r)
	r.GET("/metrics", metrics.Handler())
	if serveLocalFiles {
		r.Static("/files", cfg.LocalStoreDir)
	}

	return r
}

func newObjectStore(cfg config.Config) (object.ObjectStore, bool) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("s3 store init failed, falling back to local: %v", err)
		} else {
			return store, false
		}
	}
	return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), true
}

func connectDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	conn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(context.Background(), conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return conn
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
