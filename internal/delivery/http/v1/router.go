package v1

import (
	"net/http"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/security"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxBodyBytes = 1 << 20

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	JobUC       domain.JobUsecase
	EducationUC domain.EducationUsecase
	ProjectUC   domain.ProjectUsecase
	ServiceUC   domain.ServiceUsecase
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	Tokens      *auth.TokenService
	Redis       *goredis.Client // nil disables Redis-backed rate limiting
	Audit       *security.SecurityLogger
	Logger      *zap.Logger
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigins)) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("request_id", c.GetString(response.RequestIDKey)),
				zap.String("user_id", c.GetString(middleware.ContextUserID)),
			}
		},
	}))
	r.Use(ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, _ any) {
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		c.Abort()
	}))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.ErrorHandler(log))

	window := cfg.RateLimitWindow()
	global := middleware.NewRateLimiter(deps.Redis, middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window), deps.Audit)
	authLimit := middleware.NewRateLimiter(deps.Redis, middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window), deps.Audit)
	contactLimit := middleware.NewRateLimiter(deps.Redis, middleware.ContactRateLimitConfig(cfg.RateLimitAuthThreshold, window), deps.Audit)
	r.Use(global.Middleware())

	NewHealthHandler(r, deps.HealthUC)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	gate := middleware.NewGate(deps.Tokens, cfg.SignInPath, deps.Audit)
	root := r.Group("")
	protected := r.Group("", gate.Require())
	dashboard := r.Group("/dashboard", gate.Require())
	public := r.Group("/public")
	publicUser := public.Group("/users/:userId")

	NewAuthHandler(root, protected, deps.AuthUC, cfg.IsProduction(), cfg.SiteOwnerID, authLimit.Middleware())
	NewContactHandler(public, deps.ContactUC, contactLimit.Middleware())
	NewJobHandler(dashboard, public, publicUser, deps.JobUC, cfg.SiteOwnerID)
	NewEducationHandler(dashboard, public, publicUser, deps.EducationUC, cfg.SiteOwnerID)
	NewProjectHandler(dashboard, public, publicUser, deps.ProjectUC, cfg.SiteOwnerID)
	NewServiceHandler(dashboard, public, publicUser, deps.ServiceUC, cfg.SiteOwnerID)

	return r
}
