package v1

import (
	"net/http"

	"go-talentmatch-backend/config"
	"go-talentmatch-backend/internal/delivery/http/middleware"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	JobseekerUC    domain.JobSeekerUsecase
	EmployerUC     domain.EmployerUsecase
	VerificationUC domain.VerificationUsecase
	SnapshotUC     domain.SnapshotUsecase
	InterviewUC    domain.InterviewUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewJobseekerHandler(protected, deps.JobseekerUC)
		NewEmployerHandler(protected, deps.EmployerUC)
		NewSnapshotHandler(protected, deps.SnapshotUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewAdminHandler(protected, deps.VerificationUC)
	}

	return r
}
