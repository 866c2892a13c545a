package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reach_edu_backend/internal/config"
	"reach_edu_backend/internal/controller"
	"reach_edu_backend/internal/repository"
	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/pkg/database"
	"reach_edu_backend/pkg/logger"
	"reach_edu_backend/pkg/monitoring"
	"reach_edu_backend/pkg/security"
	"reach_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Store           store.Store
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user *repository.UserRepository
}

type services struct {
	auth        *service.AuthService
	signup      *service.SignupService
	storage     *service.StorageService
	state       *service.AssignmentStateService
	submission  *service.SubmissionService
	assignment  *service.AssignmentService
	community   *service.CommunityService
	leaderboard *service.LeaderboardService
	session     *service.SessionService
	hub         *service.RefreshHub
}

type controllers struct {
	auth        *controller.AuthController
	signup      *controller.SignupController
	assignment  *controller.AssignmentController
	submission  *controller.SubmissionController
	grade       *controller.GradeController
	sync        *controller.SyncController
	community   *controller.CommunityController
	leaderboard *controller.LeaderboardController
	session     *controller.SessionController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置文件热更新入口。存储后端、数据库连接这类
// 启动期决策不动，只转发给登记过的回调。
func (a *App) ReloadConfig(cfg *config.Config) {
	logger.Log.Info("config reloaded")
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

// buildStore 按配置选择记录存储后端。档案隔离由后端实现保证，
// 选不出来时回落到进程内存（重启即清空，仅限开发）。
func buildStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) store.Store {
	var s store.Store
	switch cfg.Records.Backend {
	case "redis":
		s = store.NewRedisStore(rdb, cfg.Records.Profile)
	case "memory":
		s = store.NewMemoryStore()
	default:
		s = store.NewGormStore(db, cfg.Records.Profile)
	}
	return store.Instrumented(s)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user: repository.NewUserRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, recordStore store.Store) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.signup = service.NewSignupService(repos.user, service.LogCodeSender{}, cfg.Signup.AdminPhone)
	s.state = service.NewAssignmentStateService(recordStore)
	s.submission = service.NewSubmissionService(s.state, s.storage)
	s.assignment = service.NewAssignmentService(recordStore, s.state)
	s.community = service.NewCommunityService(recordStore)
	s.leaderboard = service.NewLeaderboardService(recordStore, repos.user)
	s.session = service.NewSessionService(recordStore)
	s.hub = service.NewRefreshHub(s.state)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		signup:      controller.NewSignupController(s.signup, s.auth),
		assignment:  controller.NewAssignmentController(s.assignment),
		submission:  controller.NewSubmissionController(s.submission, s.state, s.assignment, repos.user),
		grade:       controller.NewGradeController(s.state),
		sync:        controller.NewSyncController(s.hub),
		community:   controller.NewCommunityController(s.community),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		session:     controller.NewSessionController(s.session),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		if cfg.Records.Backend == "redis" {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		// 记录存储不用 redis 时允许缺席
		logger.Log.Warn("Redis unavailable", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Store:  buildStore(cfg, db, rdb),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Store)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("reach-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
