package provider

import (
	"github.com/jagoron-news/internal/authz"
	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/queue"
	"github.com/jagoron-news/internal/repository"
	"github.com/jagoron-news/internal/service"
)

// Container wires repositories and services once per process
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	SectionRepo      repository.SectionRepository
	ArticleRepo      repository.ArticleRepository
	TaxonomyRepo     repository.TaxonomyRepository
	SpecialRepo      repository.SpecialRepository
	ReactionRepo     repository.ReactionRepository
	ReviewRepo       repository.ReviewRepository
	ShortURLRepo     repository.ShortURLRepository
	RedirectionRepo  repository.RedirectionRepository
	SiteRepo         repository.SiteRepository
	SeoRepo          repository.SeoRepository
	AuthorRepo       repository.AuthorRepository
	VideoRepo        repository.VideoRepository
	DashboardRepo    repository.DashboardRepository
	RoleAuditLogRepo repository.RoleAuditLogRepository

	// Core
	PathResolver    *service.PathResolver
	RelevanceRanker *service.RelevanceRanker

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	CaptchaService     *service.CaptchaService
	UploadService      *service.UploadService
	ArticleService     *service.ArticleService
	SectionService     *service.SectionService
	TaxonomyService    *service.TaxonomyService
	SpecialService     *service.SpecialService
	ReactionService    *service.ReactionService
	ReviewService      *service.ReviewService
	ShortURLService    *service.ShortURLService
	RedirectionService *service.RedirectionService
	SiteService        *service.SiteService
	SettingService     *service.SettingService
	SeoService         *service.SeoService
	SitemapService     *service.SitemapService
	AuthorService      *service.AuthorService
	VideoService       *service.VideoService
	DashboardService   *service.DashboardService
	RoleAuditService   *service.RoleAuditService
}

// NewContainer initializes cache, queue client, repositories and services
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.SectionRepo = repository.NewSectionRepository(db)
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.TaxonomyRepo = repository.NewTaxonomyRepository(db)
	c.SpecialRepo = repository.NewSpecialRepository(db)
	c.ReactionRepo = repository.NewReactionRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.ShortURLRepo = repository.NewShortURLRepository(db)
	c.RedirectionRepo = repository.NewRedirectionRepository(db)
	c.SiteRepo = repository.NewSiteRepository(db)
	c.SeoRepo = repository.NewSeoRepository(db)
	c.AuthorRepo = repository.NewAuthorRepository(db)
	c.VideoRepo = repository.NewVideoRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.RoleAuditLogRepo = repository.NewRoleAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapNewsroomRoles(); err != nil {
		logger.Errorw("provider_bootstrap_newsroom_roles_failed", "error", err)
		panic(err)
	}

	// nil clock reads time.Now in UTC
	var clock service.Clock

	c.PathResolver = service.NewPathResolver(c.SectionRepo, c.ArticleRepo, clock)
	c.RelevanceRanker = service.NewRelevanceRanker(c.ArticleRepo, clock)

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.ArticleService = service.NewArticleService(
		c.ArticleRepo,
		c.SectionRepo,
		c.TaxonomyRepo,
		c.SpecialRepo,
		c.RelevanceRanker,
		c.QueueClient,
		c.Config.Content,
		clock,
	)
	c.SectionService = service.NewSectionService(c.SectionRepo, c.QueueClient, c.Config.Content)
	c.TaxonomyService = service.NewTaxonomyService(c.TaxonomyRepo)
	c.SpecialService = service.NewSpecialService(c.SpecialRepo, c.ArticleRepo, c.QueueClient)
	c.ReactionService = service.NewReactionService(c.ReactionRepo, c.ArticleRepo, clock)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ArticleRepo, c.CaptchaService, clock)
	c.ShortURLService = service.NewShortURLService(c.ShortURLRepo)
	c.RedirectionService = service.NewRedirectionService(c.RedirectionRepo)
	c.SiteService = service.NewSiteService(c.SiteRepo, c.Config.Site)
	c.SettingService = service.NewSettingService(c.SiteRepo, c.Config.Site)
	c.SeoService = service.NewSeoService(c.SeoRepo, c.Config.Site)
	c.SitemapService = service.NewSitemapService(c.SectionRepo, c.ArticleRepo, c.TaxonomyRepo, c.SiteRepo, c.Config.Site, c.Config.Content, clock)
	c.AuthorService = service.NewAuthorService(c.AuthorRepo)
	c.VideoService = service.NewVideoService(c.VideoRepo, c.SectionRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.AdminRepo, clock)
	c.RoleAuditService = service.NewRoleAuditService(c.RoleAuditLogRepo)
}
