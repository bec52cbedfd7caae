package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const protectedSuperAdminUsername = "admin"

var adminUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

// AuthService admin authentication and staff accounts
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService creates the auth service
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// AdminInput admin account input; nil pointers leave fields unchanged on update
type AdminInput struct {
	Username    *string
	DisplayName *string
	Password    *string
	IsSuper     *bool
}

// HashPassword hashes with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a bcrypt hash with a password
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks the configured password policy
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims admin token claims
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an admin token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates and parses an admin token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Login checks credentials and issues a token
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.adminRepo.TouchLogin(admin.ID, now); err != nil {
		logger.Warnw("admin_touch_login_failed", "admin_id", admin.ID, "error", err)
	}
	admin.LastLoginAt = &now
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, token, expiresAt, nil
}

// ChangePassword replaces the password and revokes every issued token
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	return s.setPassword(admin, newPassword)
}

func (s *AuthService) setPassword(admin *models.Admin, password string) error {
	if err := s.ValidatePassword(password); err != nil {
		return err
	}
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	admin.PasswordHash = hashedPassword
	now := time.Now()
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return nil
}

// ListAdmins lists staff accounts
func (s *AuthService) ListAdmins() ([]models.Admin, error) {
	return s.adminRepo.List()
}

// GetAdmin loads one account
func (s *AuthService) GetAdmin(id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

// CreateAdmin creates a staff account
func (s *AuthService) CreateAdmin(input AdminInput) (*models.Admin, error) {
	if input.Username == nil || input.Password == nil {
		return nil, &ValidationError{Field: "username", Reason: "username and password are required"}
	}
	username, err := normalizeAdminUsername(*input.Username)
	if err != nil {
		return nil, err
	}
	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminExists
	}
	if err := s.ValidatePassword(*input.Password); err != nil {
		return nil, err
	}
	hash, err := s.HashPassword(*input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		DisplayName:  username,
		PasswordHash: hash,
		IsSuper:      input.IsSuper != nil && *input.IsSuper,
	}
	if input.DisplayName != nil && strings.TrimSpace(*input.DisplayName) != "" {
		admin.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if strings.EqualFold(username, protectedSuperAdminUsername) {
		admin.IsSuper = true
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// UpdateAdmin updates a staff account; a new password revokes its tokens
func (s *AuthService) UpdateAdmin(id uint, input AdminInput) (*models.Admin, error) {
	admin, err := s.GetAdmin(id)
	if err != nil {
		return nil, err
	}
	if input.Username != nil {
		username, err := normalizeAdminUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		if username != admin.Username {
			existing, err := s.adminRepo.GetByUsername(username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != admin.ID {
				return nil, ErrAdminExists
			}
			admin.Username = username
		}
	}
	if input.DisplayName != nil {
		admin.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.IsSuper != nil && !strings.EqualFold(admin.Username, protectedSuperAdminUsername) {
		admin.IsSuper = *input.IsSuper
	}
	if input.Password != nil && *input.Password != "" {
		if err := s.setPassword(admin, *input.Password); err != nil {
			return nil, err
		}
		return admin, nil
	}
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// DeleteAdmin removes a staff account other than the caller and the protected admin
func (s *AuthService) DeleteAdmin(id, currentAdminID uint) error {
	if id == currentAdminID {
		return ErrCannotDeleteSelf
	}
	admin, err := s.GetAdmin(id)
	if err != nil {
		return err
	}
	if strings.EqualFold(admin.Username, protectedSuperAdminUsername) {
		return ErrProtectedAdmin
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	return nil
}

func normalizeAdminUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if !adminUsernamePattern.MatchString(username) {
		return "", &ValidationError{Field: "username", Reason: "3-50 letters, digits, dot, underscore or hyphen"}
	}
	return username, nil
}
