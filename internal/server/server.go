package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"halloffame-backend/internal/auth"
	"halloffame-backend/internal/cache"
	"halloffame-backend/internal/config"
	"halloffame-backend/internal/handler"
	"halloffame-backend/internal/presence"
	"halloffame-backend/internal/storage"
)

// Server Fiber 서버 래퍼
type Server struct {
	app                  *fiber.App
	cfg                  *config.Config
	db                   *gorm.DB
	gate                 auth.AdminGate
	canvasHub            *handler.CanvasHub
	redisClient          *cache.RedisClient
	healthHandler        *handler.HealthHandler
	lookupHandler        *handler.LookupHandler
	hofHandler           *handler.HofHandler
	personHandler        *handler.PersonHandler
	personAdminHandler   *handler.PersonAdminHandler
	commentHandler       *handler.CommentHandler
	milestoneHandler     *handler.MilestoneHandler
	boardHandler         *handler.BoardHandler
	canvasMessageHandler *handler.CanvasMessageHandler
	canvasWSHandler      *handler.CanvasWSHandler
	adminTokenHandler    *handler.AdminTokenHandler
	storageHandler       *handler.StorageHandler
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Hall of Fame API",
		ServerHeader:          "Fiber",
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		Prefork:               false, // WebSocket과 호환성 문제로 비활성화
		BodyLimit:             2 * 1024 * 1024,
		DisableStartupMessage: false,
	})

	// 관리자 게이트 초기화
	gate := auth.NewStaticKeyGate(
		cfg.Admin.SharedSecret,
		cfg.Admin.JWTSecret,
		cfg.Admin.TokenExpiry,
	)

	// Redis 초기화 (선택적 — 없으면 캐시/presence 없이 동작)
	var redisClient *cache.RedisClient
	var presenceMgr *presence.Manager
	if cfg.Redis.Addr != "" {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("⚠️ Redis initialization failed: %v (snapshot cache disabled)", err)
			redisClient = nil
		} else {
			presenceMgr = presence.NewManager(redisClient.Raw())
		}
	} else {
		log.Println("ℹ️ Redis not configured (snapshot cache disabled)")
	}

	// S3 서비스 초기화 (선택적)
	var s3Service *storage.S3Service
	if cfg.S3.BucketName != "" && cfg.S3.AccessKeyID != "" {
		var err error
		s3Service, err = storage.NewS3Service(&cfg.S3)
		if err != nil {
			log.Printf("⚠️ S3 service initialization failed: %v (upload PAR disabled)", err)
		} else {
			log.Printf("✅ S3 service initialized (bucket: %s)", cfg.S3.BucketName)
		}
	} else {
		log.Println("ℹ️ S3 service not configured (upload PAR disabled)")
	}

	canvasHub := handler.NewCanvasHub(redisClient, presenceMgr)

	return &Server{
		app:                  app,
		cfg:                  cfg,
		db:                   db,
		gate:                 gate,
		canvasHub:            canvasHub,
		redisClient:          redisClient,
		healthHandler:        handler.NewHealthHandler(db, redisClient),
		lookupHandler:        handler.NewLookupHandler(db),
		hofHandler:           handler.NewHofHandler(db),
		personHandler:        handler.NewPersonHandler(db),
		personAdminHandler:   handler.NewPersonAdminHandler(db),
		commentHandler:       handler.NewCommentHandler(db),
		milestoneHandler:     handler.NewMilestoneHandler(db),
		boardHandler:         handler.NewBoardHandler(db),
		canvasMessageHandler: handler.NewCanvasMessageHandler(db, canvasHub),
		canvasWSHandler:      handler.NewCanvasWSHandler(db, canvasHub),
		adminTokenHandler:    handler.NewAdminTokenHandler(gate),
		storageHandler:       handler.NewStorageHandler(s3Service),
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 로깅
	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Singapore",
	}))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     s.cfg.CORS.AllowHeaders,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크 엔드포인트
	s.app.Get("/health", s.healthHandler.Check)
	s.app.Get("/health/live", s.healthHandler.Liveness)
	s.app.Get("/health/ready", s.healthHandler.Readiness)

	// Rate Limiter (관리자 자격 증명 엔드포인트용 - Brute Force 방지)
	adminLimiter := limiter.New(limiter.Config{
		Max:        10,              // 최대 10회
		Expiration: 1 * time.Minute, // 1분당
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	api := s.app.Group("/api")

	// 공개 조회 라우트
	api.Get("/schools", s.lookupHandler.GetSchools)
	api.Get("/categories", s.lookupHandler.GetCategories)
	api.Get("/achievement-types", s.lookupHandler.GetAchievementTypes)
	api.Get("/hof", s.hofHandler.GetDirectory)
	api.Get("/person/:id", s.personHandler.GetPerson)
	api.Get("/persons/:personId/comments", s.commentHandler.GetComments)
	api.Post("/persons/:personId/comments", s.commentHandler.CreateComment)
	api.Get("/milestones", s.milestoneHandler.GetMilestones)

	// 캔버스 보드 라우트
	api.Get("/boards", s.boardHandler.GetBoards)
	api.Post("/boards", s.boardHandler.CreateBoard)
	api.Post("/messages", s.canvasMessageHandler.CreateMessage)

	// 관리자 토큰 발급 (게이트 앞단이므로 rate limit)
	api.Post("/admin/token", adminLimiter, s.adminTokenHandler.IssueToken)

	// 관리자 쓰기 라우트 (공유 비밀값 또는 관리자 토큰)
	adminGate := auth.AdminMiddleware(s.gate)
	api.Post("/admin/persons/full", adminGate, s.personAdminHandler.CreateFull)
	api.Put("/admin/persons/:id/status", adminGate, s.personAdminHandler.SetStatus)
	api.Post("/admin/schools", adminGate, s.lookupHandler.CreateSchool)
	api.Post("/milestones", adminGate, s.milestoneHandler.CreateMilestone)
	api.Put("/milestones/:id", adminGate, s.milestoneHandler.UpdateMilestone)
	api.Delete("/milestones/:id", adminGate, s.milestoneHandler.DeleteMilestone)
	api.Post("/admin/upload-par", adminGate, s.storageHandler.IssueUploadPAR)

	// WebSocket 업그레이드 체크 미들웨어
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket 캔버스 룸 엔드포인트
	s.app.Get("/ws/canvas", websocket.New(s.canvasWSHandler.HandleWebSocket, websocket.Config{
		ReadBufferSize:  s.cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: s.cfg.WebSocket.WriteBufferSize,
	}))
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
		if s.redisClient != nil {
			s.redisClient.Close()
		}
	}()

	log.Printf("🚀 Hall of Fame API starting on %s", s.cfg.Server.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost%s/ws/canvas", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
