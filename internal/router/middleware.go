package router

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jagoron-news/internal/authz"
	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/repository"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const adminIsSuperContextKey = "admin_is_super"

// CORSMiddleware answers preflight requests and sets the allow headers
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-Request-ID",
			"X-Visitor-ID",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware reuses X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware writes one structured line per request
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// adminPrincipal authenticated staff account of a request
type adminPrincipal struct {
	AdminID  uint
	Username string
	IsSuper  bool
}

// authenticateAdmin verifies a bearer token against the admin's token version
// and revocation time. The cached auth state is preferred over the database.
func authenticateAdmin(c *gin.Context, secretKey string, adminRepo repository.AdminRepository) (*adminPrincipal, string) {
	if secretKey == "" {
		return nil, "jwt secret is not configured"
	}
	if adminRepo == nil {
		return nil, "invalid token"
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "authorization header is missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, "authorization header must be Bearer"
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &service.JWTClaims{}
	token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.AdminID == 0 {
		return nil, "invalid token"
	}

	if cached, hit, cacheErr := cache.GetAdminAuthState(c.Request.Context(), claims.AdminID); cacheErr == nil && hit && cached != nil {
		if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
			return nil, "token has been revoked"
		}
		return &adminPrincipal{AdminID: claims.AdminID, Username: claims.Username, IsSuper: cached.IsSuper}, ""
	}

	admin, err := adminRepo.GetByID(claims.AdminID)
	if err != nil || admin == nil {
		return nil, "invalid token"
	}
	if claims.TokenVersion != admin.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, admin.TokenInvalidBefore) {
		return nil, "token has been revoked"
	}
	_ = cache.SetAdminAuthState(c.Request.Context(), cache.BuildAdminAuthState(admin))
	return &adminPrincipal{AdminID: admin.ID, Username: admin.Username, IsSuper: admin.IsSuper}, ""
}

// JWTAuthMiddleware requires a valid staff token
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, msg := authenticateAdmin(c, secretKey, adminRepo)
		if principal == nil {
			response.Unauthorized(c, msg)
			c.Abort()
			return
		}
		c.Set(handlershared.ContextAdminID, principal.AdminID)
		c.Set(handlershared.ContextUsername, principal.Username)
		c.Set(adminIsSuperContextKey, principal.IsSuper)
		c.Next()
	}
}

// PreviewPrincipalMiddleware marks requests carrying a valid staff token as
// privileged so scheduled articles resolve for previews. Readers without a
// token, or with a bad one, pass through unprivileged.
func PreviewPrincipalMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if principal, _ := authenticateAdmin(c, secretKey, adminRepo); principal != nil {
			c.Set(handlershared.ContextPrivileged, true)
			c.Set(handlershared.ContextAdminID, principal.AdminID)
		}
		c.Next()
	}
}

// AdminRBACMiddleware enforces the casbin policy of the matched route
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}

		adminID, _ := c.Get(handlershared.ContextAdminID)
		id, ok := adminID.(uint)
		if !ok || id == 0 {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(id, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", id,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", id,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "permission denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// redirectionLookup finds an admin-managed redirect for a path
type redirectionLookup interface {
	Lookup(ctx context.Context, path string) (*service.RedirectTarget, error)
}

// RedirectionMiddleware answers GET and HEAD requests whose path matches an
// active redirection before any route runs
func RedirectionMiddleware(lookup redirectionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if lookup == nil || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.Next()
			return
		}
		target, err := lookup.Lookup(c.Request.Context(), c.Request.URL.Path)
		if err != nil {
			logger.Warnw("redirection_lookup_failed", "path", c.Request.URL.Path, "error", err)
			c.Next()
			return
		}
		if target == nil || target.Location == "" {
			c.Next()
			return
		}
		c.Redirect(target.StatusCode(), target.Location)
		c.Abort()
	}
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
