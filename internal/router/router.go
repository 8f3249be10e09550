package router

import (
	"fmt"
	"strings"

	"github.com/skillchain/skillchain-api/internal/cache"
	"github.com/skillchain/skillchain-api/internal/config"
	"github.com/skillchain/skillchain-api/internal/constants"
	adminhandlers "github.com/skillchain/skillchain-api/internal/http/handlers/admin"
	publichandlers "github.com/skillchain/skillchain-api/internal/http/handlers/public"
	"github.com/skillchain/skillchain-api/internal/logger"
	"github.com/skillchain/skillchain-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts",
	}
	resendRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:otp_send", redisPrefix),
		WindowSeconds: cfg.Security.ResendRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ResendRateLimit.MaxAttempts,
		Message:       "Too many OTP requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 健康检查不挂 /api 前缀，供负载均衡探活
	r.GET("/health", publicHandler.Health)

	api := r.Group("/api")
	{
		// 用户认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/verify-otp", publicHandler.VerifyOtp)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/resend-otp", RateLimitMiddleware(redisClient, resendRule, KeyByIPAndJSONField("userId")), publicHandler.ResendOtp)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, resendRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 用户接口（需鉴权）
		user := api.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
		}

		// 证书接口：查询公开（扫码验真无需登录），签发与更新需鉴权 + RBAC
		certificates := api.Group("/certificates")
		{
			certificates.GET("", publicHandler.ListCertificates)
			certificates.GET("/student/:apparId", publicHandler.ListStudentCertificates)
			certificates.GET("/:certificateId", publicHandler.GetCertificate)

			issue := certificates.Group("")
			issue.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
			issue.Use(RBACMiddleware(c.AuthzService))
			{
				issue.POST("", publicHandler.CreateCertificate)
				issue.PUT("/:certificateId", publicHandler.UpdateCertificate)
			}
		}

		// 管理接口（需鉴权 + RBAC，仅 admin 角色有通配策略）
		admin := api.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RBACMiddleware(c.AuthzService))
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	return r
}
