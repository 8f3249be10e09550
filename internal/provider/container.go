package provider

import (
	"github.com/skillchain/skillchain-api/internal/authz"
	"github.com/skillchain/skillchain-api/internal/cache"
	"github.com/skillchain/skillchain-api/internal/config"
	"github.com/skillchain/skillchain-api/internal/logger"
	"github.com/skillchain/skillchain-api/internal/models"
	"github.com/skillchain/skillchain-api/internal/queue"
	"github.com/skillchain/skillchain-api/internal/repository"
	"github.com/skillchain/skillchain-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	OtpRepo         repository.OtpRepository
	CertificateRepo repository.CertificateRepository
	StatsRepo       repository.StatsRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	CertificateService *service.CertificateService
	StatsService       *service.StatsService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OtpRepo = repository.NewOtpRepository(db)
	c.CertificateRepo = repository.NewCertificateRepository(db)
	c.StatsRepo = repository.NewStatsRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, models.DB, c.UserRepo, c.OtpRepo, c.EmailService, c.QueueClient)
	c.CertificateService = service.NewCertificateService(c.CertificateRepo)
	c.StatsService = service.NewStatsService(c.StatsRepo)
}
