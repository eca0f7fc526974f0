package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/config"
	"github.com/yukikurage/procms-api/internal/database"
	"github.com/yukikurage/procms-api/internal/handlers"
	"github.com/yukikurage/procms-api/internal/kanban"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/scheduler"
	"github.com/yukikurage/procms-api/internal/services"
)

const sessionName = "procms_session"

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		r.Use(cors.Default())
	} else {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}

	// Setup session middleware, backed by Redis when configured
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(10, "tcp", redisAddr, "", []byte(cfg.SessionSecret))
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// Initialize services
	repos := repository.New(db)
	boardService := services.NewBoardService(repos, kanban.NewRegistry(cfg.DragTTL), services.NewAIService(cfg.OpenAIAPIKey))
	commentService := services.NewCommentService(repos, cfg.DefaultAssigneeID)

	handlers.RegisterRoutes(r, handlers.Services{
		Viewers:       services.NewViewerService(repos, cfg.AdminID, cfg.AdminName),
		Projects:      services.NewProjectService(repos),
		Board:         boardService,
		Comments:      commentService,
		Directory:     services.NewDirectoryService(repos),
		Subscriptions: services.NewSubscriptionService(repos),
		Reports:       services.NewReportService(repos),
		Dashboard:     services.NewDashboardService(repos),
	})

	jobs, err := scheduler.New(boardService, commentService)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Start server
	log.WithField("addr", cfg.ServerAddr).Info("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
