package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gormDB, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB, logger); err != nil {
		return nil, err
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	memberRepo := repository.NewBoardMemberRepository(gormDB)
	columnRepo := repository.NewColumnRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	labelRepo := repository.NewLabelRepository(gormDB)
	subtaskRepo := repository.NewSubtaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Handlers
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	userHandler := handler.NewUserHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardRepo, memberRepo, columnRepo, taskRepo, labelRepo, subtaskRepo, commentRepo, userRepo, logger)
	columnHandler := handler.NewColumnHandler(columnRepo, boardRepo, memberRepo, logger)
	memberHandler := handler.NewMemberHandler(boardRepo, memberRepo, userRepo)
	labelHandler := handler.NewLabelHandler(labelRepo, boardRepo, memberRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, columnRepo, boardRepo, labelRepo, subtaskRepo, commentRepo, userRepo, logger)
	subtaskHandler := handler.NewSubtaskHandler(subtaskRepo, taskRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, taskRepo, userRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.GET("/auth/me", authHandler.Me)

		// User routes
		authorized.GET("/users", userHandler.GetAll)
		authorized.GET("/users/search", userHandler.Search)

		// Board routes
		authorized.GET("/boards", boardHandler.List)
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes
		authorized.POST("/boards/:id/columns", columnHandler.Create)
		authorized.PUT("/boards/:id/columns/reorder", columnHandler.Reorder)
		authorized.PUT("/boards/:id/columns/:columnId", columnHandler.Update)
		authorized.DELETE("/boards/:id/columns/:columnId", columnHandler.Delete)

		// Member routes
		authorized.POST("/boards/:id/members", memberHandler.Add)
		authorized.DELETE("/boards/:id/members/:userId", memberHandler.Remove)

		// Label routes
		authorized.POST("/boards/:id/labels", labelHandler.Create)
		authorized.DELETE("/boards/:id/labels/:labelId", labelHandler.Delete)

		// Task routes
		authorized.GET("/tasks/my/assigned", taskHandler.MyAssigned)
		authorized.PUT("/tasks/reorder", taskHandler.Reorder)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.PUT("/tasks/:id/move", taskHandler.Move)
		authorized.POST("/tasks/:id/assignees", taskHandler.AddAssignee)
		authorized.DELETE("/tasks/:id/assignees/:userId", taskHandler.RemoveAssignee)
		authorized.POST("/tasks/:id/labels", taskHandler.AddLabel)
		authorized.DELETE("/tasks/:id/labels/:labelId", taskHandler.RemoveLabel)

		// Subtask routes
		authorized.POST("/tasks/:id/subtasks", subtaskHandler.Create)
		authorized.PUT("/tasks/:id/subtasks/:subtaskId", subtaskHandler.Update)
		authorized.DELETE("/tasks/:id/subtasks/:subtaskId", subtaskHandler.Delete)

		// Comment routes
		authorized.POST("/tasks/:id/comments", commentHandler.Create)
		authorized.DELETE("/tasks/:id/comments/:commentId", commentHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     gormDB,
		Config: cfg,
		Logger: logger,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}

	s.Logger.Info("server exited properly")
}
