package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/kano20041101/xuexizhushou/internal/handler/http"
	gormpersistence "github.com/kano20041101/xuexizhushou/internal/infra/persistence/gorm"
	"github.com/kano20041101/xuexizhushou/internal/infra/setup"
	"github.com/kano20041101/xuexizhushou/internal/infra/storage/local"
	"github.com/kano20041101/xuexizhushou/internal/middleware"
	"github.com/kano20041101/xuexizhushou/internal/service"
	"github.com/kano20041101/xuexizhushou/internal/tasks"
	"github.com/kano20041101/xuexizhushou/internal/worker"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client // 未配置 Redis 时为 nil
	AsynqClient *asynq.Client // 同上
	Worker      *worker.WorkerServer
	Scheduler   *asynq.Scheduler
	HttpServer  *http.Server
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger，包级 logrus 与 App logger 使用相同的输出
	log := NewLogger(cfg)
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(log.Level)
	logrus.SetOutput(log.Out)
	log.Infof("Logger initialized (Level: %s, Env: %s)", log.Level.String(), cfg.AppEnv)

	app := &App{Config: cfg, Log: log}

	// 3. 初始化基础设施
	db, err := setup.InitDB(setup.DBOptions{
		DSN:             cfg.DBDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Hour,
		Debug:           cfg.AppEnv != "production" && cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	app.DB = db
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		app.closeInfra()
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	store := local.NewAvatarStore(cfg.UploadDir)
	if err := store.EnsureDirs(); err != nil {
		app.closeInfra()
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	// 4. Repositories
	userRepo := gormpersistence.NewGormUserRepository(db)
	profileRepo := gormpersistence.NewGormProfileRepository(db)
	kpRepo := gormpersistence.NewGormKnowledgePointRepository(db)
	transactor := gormpersistence.NewGormTransactor(db)

	// 5. Redis 与后台任务 (可选)
	var cleaner service.AvatarCleaner
	if cfg.RedisEnabled() {
		redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			app.closeInfra()
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		app.RedisClient = redisClient

		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
		app.AsynqClient = asynq.NewClient(redisOpt)
		cleaner = tasks.NewEnqueuer(app.AsynqClient)

		app.Worker = worker.NewWorkerServer(redisOpt,
			worker.NewAvatarCleanupHandler(store),
			worker.NewAvatarSweepHandler(store, profileRepo, cfg.AvatarSweepGrace),
			log)

		app.Scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
				if err != nil {
					log.WithError(err).Error("Scheduler failed to enqueue periodic task")
				}
			},
		})
		entryID, err := app.Scheduler.Register(cfg.AvatarSweepEvery, tasks.NewAvatarSweepTask(), asynq.Queue("low"))
		if err != nil {
			app.closeInfra()
			return nil, fmt.Errorf("failed to register avatar sweep task: %w", err)
		}
		log.Infof("Avatar sweep registered with schedule '%s' (EntryID: %s)", cfg.AvatarSweepEvery, entryID)
	} else {
		log.Warn("REDIS_ADDR not set: rate limiting and avatar housekeeping disabled")
	}

	// 6. Services
	hasher, err := service.NewPasswordHasher(cfg.PasswordScheme)
	if err != nil {
		app.closeInfra()
		return nil, err
	}
	authService := service.NewAuthService(userRepo, transactor, hasher)
	profileService := service.NewProfileService(userRepo, profileRepo, transactor, store, cleaner)
	kpService := service.NewKnowledgePointService(userRepo, kpRepo, transactor)

	// 7. Handlers 与路由
	handlers := httpHandler.Handlers{
		Health:         httpHandler.NewHealthHandler(db),
		Auth:           httpHandler.NewAuthHandler(authService),
		Profile:        httpHandler.NewProfileHandler(profileService, cfg.MaxAvatarSize),
		KnowledgePoint: httpHandler.NewKnowledgePointHandler(kpService),
	}
	router := NewRouter(cfg, log, app.RedisClient, store, handlers)

	app.HttpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Application assembled successfully")
	return app, nil
}

// NewRouter 创建 Gin Engine 并挂载中间件、静态文件和业务路由。
// redisClient 为 nil 时不启用限流。
func NewRouter(cfg *Config, log *logrus.Logger, redisClient *redis.Client, store *local.AvatarStore, h httpHandler.Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	// multipart 内存上限与头像上限一致，超出部分落到临时文件
	if cfg.MaxAvatarSize > 0 {
		router.MaxMultipartMemory = cfg.MaxAvatarSize
	}

	router.Static("/"+store.PublicPrefix(), store.Root())
	httpHandler.RegisterRoutes(router, h)
	return router
}

// Start 启动后台任务和 HTTP 服务器，不阻塞
func (a *App) Start() error {
	if a.Worker != nil {
		if err := a.Worker.Start(); err != nil {
			return fmt.Errorf("failed to start worker server: %w", err)
		}
		a.Log.Info("Asynq worker server started")
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		a.Log.Info("Asynq scheduler started")
	}

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
	return nil
}

// Shutdown 优雅地关闭应用：先停止接收请求，再停后台任务，最后释放连接
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
		a.Log.Info("Asynq scheduler stopped.")
	}
	if a.Worker != nil {
		a.Worker.Shutdown()
	}

	a.closeInfra()
	a.Log.Info("Application shutdown complete.")
}

func (a *App) closeInfra() {
	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	if a.DB != nil {
		if err := setup.CloseDB(a.DB); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		} else {
			a.Log.Info("Database connection closed.")
		}
	}
}
