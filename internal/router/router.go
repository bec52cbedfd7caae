package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jagoron-news/internal/authz"
	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"
	adminhandlers "github.com/jagoron-news/internal/http/handlers/admin"
	publichandlers "github.com/jagoron-news/internal/http/handlers/public"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine: system routes, the public api, the staff api
// and the path resolver as the fallback for every other GET
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "jn"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	reviewRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:review", redisPrefix),
		WindowSeconds: cfg.Security.ReviewRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ReviewRateLimit.MaxAttempts,
		Message:       "too many comments",
	}
	reactRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:react", redisPrefix),
		WindowSeconds: cfg.Security.ReactRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ReactRateLimit.MaxAttempts,
		Message:       "too many reactions",
	}
	preview := PreviewPrincipalMiddleware(cfg.JWT.SecretKey, c.AdminRepo)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(RedirectionMiddleware(c.RedirectionService))

	r.Static("/"+constants.PathUploads, c.UploadService.Dir())
	r.GET("/"+constants.PathRobotsTxt, publicHandler.GetRobots)
	r.GET(constants.PathShortURLPrefix+":code", publicHandler.FollowShortURL)
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/page", preview, publicHandler.ResolvePage)
			public.GET("/home", publicHandler.GetHome)
			public.GET("/nav", publicHandler.GetNav)
			public.GET("/most-read", publicHandler.GetMostRead)
			public.GET("/tags/:slug/articles", publicHandler.GetTagArticles)
			public.GET("/search", publicHandler.Search)
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/default-pages/:link", publicHandler.GetDefaultPage)
			public.GET("/sitemaps/sections", publicHandler.GetSitemapSections)
			public.GET("/sitemaps/articles", publicHandler.GetSitemapArticles)
			public.GET("/sitemaps/topics", publicHandler.GetSitemapTopics)
			public.GET("/sitemaps/categories", publicHandler.GetSitemapCategories)
			public.GET("/sitemaps/google-news", publicHandler.GetGoogleNews)
			public.GET("/authors", publicHandler.GetAuthors)
			public.GET("/authors/:slug", publicHandler.GetAuthor)
			public.GET("/videos", publicHandler.GetVideos)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/articles/:id/reactions", publicHandler.GetReactions)
			public.POST("/articles/:id/reactions", RateLimitMiddleware(redisClient, reactRule, KeyByVisitorAndParam("id")), publicHandler.React)
			public.GET("/articles/:id/reviews", publicHandler.GetReviews)
			public.POST("/articles/:id/reviews", RateLimitMiddleware(redisClient, reviewRule, KeyByIP), publicHandler.SubmitReview)
			public.POST("/short-urls", publicHandler.CreateShortURL)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/month", adminHandler.GetDashboardMonth)
				authorized.GET("/dashboard/content", adminHandler.GetDashboardContent)

				authorized.GET("/articles", adminHandler.ListArticles)
				authorized.GET("/articles/:id", adminHandler.GetArticle)
				authorized.POST("/articles", adminHandler.CreateArticle)
				authorized.PUT("/articles/:id", adminHandler.UpdateArticle)
				authorized.DELETE("/articles/:id", adminHandler.DeleteArticle)

				authorized.GET("/sections", adminHandler.ListSections)
				authorized.GET("/sections/:id", adminHandler.GetSection)
				authorized.POST("/sections", adminHandler.CreateSection)
				authorized.PUT("/sections/:id", adminHandler.UpdateSection)
				authorized.DELETE("/sections/:id", adminHandler.DeleteSection)
				authorized.GET("/subsections", adminHandler.ListSubsections)
				authorized.GET("/subsections/:id", adminHandler.GetSubsection)
				authorized.POST("/subsections", adminHandler.CreateSubsection)
				authorized.PUT("/subsections/:id", adminHandler.UpdateSubsection)
				authorized.DELETE("/subsections/:id", adminHandler.DeleteSubsection)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/tags", adminHandler.ListTags)
				authorized.POST("/tags", adminHandler.CreateTag)
				authorized.PUT("/tags/:id", adminHandler.UpdateTag)
				authorized.DELETE("/tags/:id", adminHandler.DeleteTag)

				authorized.GET("/special-titles", adminHandler.ListSpecialTitles)
				authorized.POST("/special-titles", adminHandler.CreateSpecialTitle)
				authorized.PUT("/special-titles/:id", adminHandler.UpdateSpecialTitle)
				authorized.DELETE("/special-titles/:id", adminHandler.DeleteSpecialTitle)
				authorized.GET("/special-articles", adminHandler.ListSpecialArticles)
				authorized.POST("/special-articles", adminHandler.CreateSpecialArticle)
				authorized.PUT("/special-articles/:id", adminHandler.UpdateSpecialArticle)
				authorized.DELETE("/special-articles/:id", adminHandler.DeleteSpecialArticle)

				authorized.GET("/seo/:kind/:id", adminHandler.GetSeoOverride)
				authorized.PUT("/seo/:kind/:id", adminHandler.SaveSeoOverride)

				authorized.GET("/reviews", adminHandler.ListReviews)
				authorized.DELETE("/reviews/:id", adminHandler.DeleteReview)
				authorized.GET("/short-urls", adminHandler.ListShortURLs)
				authorized.DELETE("/short-urls/:id", adminHandler.DeleteShortURL)

				authorized.GET("/redirections", adminHandler.ListRedirections)
				authorized.POST("/redirections", adminHandler.CreateRedirection)
				authorized.PUT("/redirections/:id", adminHandler.UpdateRedirection)
				authorized.DELETE("/redirections/:id", adminHandler.DeleteRedirection)

				authorized.GET("/robots", adminHandler.ListRobots)
				authorized.POST("/robots", adminHandler.CreateRobots)
				authorized.PUT("/robots/:id", adminHandler.UpdateRobots)
				authorized.DELETE("/robots/:id", adminHandler.DeleteRobots)
				authorized.GET("/site-info", adminHandler.GetSiteInfo)
				authorized.PUT("/site-info", adminHandler.UpdateSiteInfo)
				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)
				authorized.GET("/default-pages", adminHandler.ListDefaultPages)
				authorized.POST("/default-pages", adminHandler.CreateDefaultPage)
				authorized.PUT("/default-pages/:id", adminHandler.UpdateDefaultPage)
				authorized.DELETE("/default-pages/:id", adminHandler.DeleteDefaultPage)

				authorized.GET("/author-categories", adminHandler.ListAuthorCategories)
				authorized.POST("/author-categories", adminHandler.CreateAuthorCategory)
				authorized.PUT("/author-categories/:id", adminHandler.UpdateAuthorCategory)
				authorized.DELETE("/author-categories/:id", adminHandler.DeleteAuthorCategory)
				authorized.POST("/author-roles", adminHandler.CreateAuthorRole)
				authorized.PUT("/author-roles/:id", adminHandler.UpdateAuthorRole)
				authorized.DELETE("/author-roles/:id", adminHandler.DeleteAuthorRole)
				authorized.GET("/authors", adminHandler.ListAuthors)
				authorized.POST("/authors", adminHandler.CreateAuthor)
				authorized.PUT("/authors/:id", adminHandler.UpdateAuthor)
				authorized.DELETE("/authors/:id", adminHandler.DeleteAuthor)

				authorized.GET("/videos", adminHandler.ListVideos)
				authorized.GET("/videos/:id", adminHandler.GetVideo)
				authorized.POST("/videos", adminHandler.CreateVideo)
				authorized.PUT("/videos/:id", adminHandler.UpdateVideo)
				authorized.DELETE("/videos/:id", adminHandler.DeleteVideo)

				authorized.POST("/upload", adminHandler.UploadFile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				authorized.GET("/authz/me", adminHandler.GetAdminMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// old section and article urls, canonical redirects and staff previews
	r.NoRoute(preview, publicHandler.ServePath)

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
