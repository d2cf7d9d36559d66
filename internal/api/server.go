package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/gameroom/gameroom-api/docs"
	v1 "github.com/gameroom/gameroom-api/internal/api/handler/v1"
	"github.com/gameroom/gameroom-api/internal/api/middleware"
	"github.com/gameroom/gameroom-api/internal/config"
	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository"
	"github.com/gameroom/gameroom-api/internal/repository/dao"
	"github.com/gameroom/gameroom-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Availability owns the countdown timers and the ledger sweep; the caller
	// starts it with Run and stops it with Close.
	Availability *service.AvailabilityService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	transactionRepo := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	s.Availability = service.NewAvailabilityService(activityRepo, transactionRepo)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	activityHandler := s.initActivityHandler(db)
	transactionHandler := s.initTransactionHandler(db, transactionRepo, activityRepo)
	reportHandler := s.initReportHandler(transactionRepo)
	availabilityHandler := v1.NewAvailabilityHandler(s.Availability)
	s.MountHandlers(db, authHandler, userHandler, activityHandler, transactionHandler, reportHandler, availabilityHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	authSvc := service.NewAuthService(repo)
	handler := v1.NewUserHandler(svc, authSvc)

	return handler
}

func (s *Server) initActivityHandler(db *gorm.DB) *v1.ActivityHandler {
	activityDAO := dao.NewActivityDAO(db)
	repo := repository.NewActivityRepository(activityDAO)
	svc := service.NewActivityService(repo)
	handler := v1.NewActivityHandler(svc)

	return handler
}

func (s *Server) initTransactionHandler(db *gorm.DB, transactionRepo *repository.TransactionRepository, activityRepo *repository.ActivityRepository) *v1.TransactionHandler {
	svc := service.NewTransactionService(transactionRepo, activityRepo, s.Availability)
	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	reportSvc := service.NewReportService(transactionRepo)
	handler := v1.NewTransactionHandler(svc, reportSvc, userSvc)

	return handler
}

func (s *Server) initReportHandler(transactionRepo *repository.TransactionRepository) *v1.ReportHandler {
	svc := service.NewReportService(transactionRepo)
	handler := v1.NewReportHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	db *gorm.DB,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	activityHandler *v1.ActivityHandler,
	transactionHandler *v1.TransactionHandler,
	reportHandler *v1.ReportHandler,
	availabilityHandler *v1.AvailabilityHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	userLoader := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// The floor console: everyone signed in can see tiles, run timers and
	// ring up transactions.
	floor := s.Router.Group(basePath, verifyJWT)
	{
		floor.GET("/users/me", userHandler.HandleGetMe)

		floor.GET("/activities", activityHandler.HandleListActivities)
		floor.GET("/activities/:activityID", activityHandler.HandleGetActivity)

		floor.GET("/availability", availabilityHandler.HandleGetAvailability)
		floor.GET("/availability/stream", availabilityHandler.HandleWebSocket)
		floor.POST("/availability/:activityID/toggle", availabilityHandler.HandleToggle)
		floor.POST("/availability/:activityID/stop", availabilityHandler.HandleStop)
		floor.POST("/availability/:activityID/restart", availabilityHandler.HandleRestart)

		floor.GET("/transactions", transactionHandler.HandleListTransactions)
		floor.POST("/transactions", transactionHandler.HandleCreateTransaction)
		floor.POST("/transactions/:transactionID/refund", transactionHandler.HandleRefundTransaction)
	}

	// Reports and exports are for developers and admins.
	reports := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(userLoader, domain.RoleDeveloper, domain.RoleAdmin))
	{
		reports.GET("/reports/daily", reportHandler.HandleDailyReport)
		reports.GET("/reports/daily/export", reportHandler.HandleExportDailyReport)
		reports.GET("/reports/shift", reportHandler.HandleShiftReport)
		reports.GET("/transactions/export", transactionHandler.HandleExportTransactionsCSV)
	}

	// Catalog and user administration are admin-only.
	admin := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(userLoader, domain.RoleAdmin))
	{
		admin.POST("/activities", activityHandler.HandleCreateActivity)
		admin.PUT("/activities/:activityID", activityHandler.HandleUpdateActivity)
		admin.DELETE("/activities/:activityID", activityHandler.HandleDeleteActivity)

		admin.GET("/users", userHandler.HandleListUsers)
		admin.GET("/users/:userID", userHandler.HandleGetUser)
		admin.POST("/users", userHandler.HandleCreateUser)
		admin.PUT("/users/:userID", userHandler.HandleUpdateUser)
		admin.DELETE("/users/:userID", userHandler.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Game Room API"
	docs.SwaggerInfo.Description = "Management console API for the campus game room."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
