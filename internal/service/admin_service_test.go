package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *repository.GormAdminRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{
			MinLength:     8,
			RequireLower:  true,
			RequireNumber: true,
		}},
	}
	repo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, repo), repo
}

func strPtr(v string) *string {
	return &v
}

func TestAuthLoginAndTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	admin, err := svc.CreateAdmin(AdminInput{Username: strPtr("reporter1"), Password: strPtr("secret123")})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if _, _, _, err := svc.Login("reporter1", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials, got %v", err)
	}
	logged, token, expiresAt, err := svc.Login(" reporter1 ", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != admin.ID || logged.LastLoginAt == nil || !expiresAt.After(time.Now()) {
		t.Fatalf("login result mismatch: %+v %v", logged, expiresAt)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "reporter1" || claims.TokenVersion != admin.TokenVersion {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("tampered token should be rejected")
	}
}

func TestAuthChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, repo := newAuthServiceForTest(t)
	admin, err := svc.CreateAdmin(AdminInput{Username: strPtr("editor"), Password: strPtr("secret123")})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "nope", "another123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "NOLOWER123"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("password without lowercase want ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "another123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	reloaded, err := repo.GetByID(admin.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.TokenVersion != admin.TokenVersion+1 || reloaded.TokenInvalidBefore == nil {
		t.Fatalf("password change should revoke tokens, got version=%d", reloaded.TokenVersion)
	}
}

func TestAuthAdminManagementRules(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	root, err := svc.CreateAdmin(AdminInput{Username: strPtr("admin"), Password: strPtr("secret123")})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if !root.IsSuper {
		t.Fatalf("the default admin is always super")
	}
	if _, err := svc.CreateAdmin(AdminInput{Username: strPtr("admin"), Password: strPtr("secret123")}); !errors.Is(err, ErrAdminExists) {
		t.Fatalf("duplicate username want ErrAdminExists, got %v", err)
	}
	var validation *ValidationError
	if _, err := svc.CreateAdmin(AdminInput{Username: strPtr("a b"), Password: strPtr("secret123")}); !errors.As(err, &validation) {
		t.Fatalf("bad username want ValidationError, got %v", err)
	}
	staff, err := svc.CreateAdmin(AdminInput{Username: strPtr("desk"), DisplayName: strPtr("ডেস্ক"), Password: strPtr("secret123")})
	if err != nil {
		t.Fatalf("create staff failed: %v", err)
	}

	if err := svc.DeleteAdmin(staff.ID, staff.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("self delete want ErrCannotDeleteSelf, got %v", err)
	}
	if err := svc.DeleteAdmin(root.ID, staff.ID); !errors.Is(err, ErrProtectedAdmin) {
		t.Fatalf("deleting the default admin want ErrProtectedAdmin, got %v", err)
	}
	if err := svc.DeleteAdmin(staff.ID, root.ID); err != nil {
		t.Fatalf("delete staff failed: %v", err)
	}
}

func TestDashboardMonthFillsEveryDay(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	reporter := &models.Admin{Username: "desk", DisplayName: "ডেস্ক", PasswordHash: "x"}
	if err := db.Create(reporter).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	section := seedSection(t, db, "জাতীয়", "national", 1)
	for i := 0; i < 3; i++ {
		seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", HeadingImage: "/h.jpg",
			CreatedByID: &reporter.ID, CreatedAt: time.Date(2026, 6, 2, 8, i, 0, 0, time.UTC)})
	}
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "may", CreatedByID: &reporter.ID,
		CreatedAt: time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC)})

	svc := NewDashboardService(repository.NewDashboardRepository(db), repository.NewAdminRepository(db), fixedClock(now))
	month, err := svc.GetMonth(context.Background(), DashboardMonthInput{ForceRefresh: true})
	if err != nil {
		t.Fatalf("dashboard month failed: %v", err)
	}
	if month.Month != "2026-06" || len(month.Points) != 30 {
		t.Fatalf("june want 30 points, got %s with %d", month.Month, len(month.Points))
	}
	day := month.Points[1]
	if day.Date != "2026-06-02" || day.Articles != 3 || day.HeadingImages != 3 || day.MainImages != 0 {
		t.Fatalf("day 2 mismatch: %+v", day)
	}
	if len(month.Reporters) != 1 || month.Reporters[0].Name != "ডেস্ক" || month.Reporters[0].Articles != 3 {
		t.Fatalf("reporter ranking mismatch: %+v", month.Reporters)
	}

	if _, err := svc.GetMonth(context.Background(), DashboardMonthInput{Year: 2026, Month: 13}); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("bad month want ErrDashboardRangeInvalid, got %v", err)
	}
}

func TestDashboardContentStatsViews(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "june", HeadingImage: "/h.jpg", MainImage: "/m.jpg",
		CreatedAt: time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)})
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "june end", CreatedAt: time.Date(2026, 6, 30, 8, 0, 0, 0, time.UTC)})
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "march", CreatedAt: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)})
	for _, at := range []time.Time{
		time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
	} {
		if err := db.Create(&models.VideoPost{SectionID: &section.ID, VideoTitle: "clip", YoutubeLink: "https://youtu.be/" + at.Format("0102"), CreatedAt: at}).Error; err != nil {
			t.Fatalf("create video failed: %v", err)
		}
	}
	svc := NewDashboardService(repository.NewDashboardRepository(db), repository.NewAdminRepository(db), fixedClock(now))
	ctx := context.Background()

	monthly, err := svc.GetContentStats(ctx, DashboardContentInput{View: "unknown", ForceRefresh: true})
	if err != nil {
		t.Fatalf("monthly stats failed: %v", err)
	}
	if monthly.View != DashboardViewMonthly || len(monthly.Labels) != 30 || monthly.Labels[1] != "2" {
		t.Fatalf("monthly labels mismatch: view=%s labels=%v", monthly.View, monthly.Labels)
	}
	if monthly.Articles[1] != 1 || monthly.Videos[1] != 1 || monthly.Images[1] != 2 || monthly.Videos[8] != 1 {
		t.Fatalf("monthly buckets mismatch: %+v", monthly)
	}

	weekly, err := svc.GetContentStats(ctx, DashboardContentInput{View: DashboardViewWeekly, ForceRefresh: true})
	if err != nil {
		t.Fatalf("weekly stats failed: %v", err)
	}
	if len(weekly.Labels) != 4 || weekly.Labels[0] != "Week 1 (01/06-07/06)" || weekly.Labels[3] != "Week 4 (22/06-30/06)" {
		t.Fatalf("weekly labels mismatch: %v", weekly.Labels)
	}
	if !reflect.DeepEqual(weekly.Articles, []int64{1, 0, 0, 1}) || !reflect.DeepEqual(weekly.Videos, []int64{1, 1, 0, 0}) {
		t.Fatalf("weekly buckets mismatch: %+v", weekly)
	}

	yearly, err := svc.GetContentStats(ctx, DashboardContentInput{View: DashboardViewYearly, Year: 2026, ForceRefresh: true})
	if err != nil {
		t.Fatalf("yearly stats failed: %v", err)
	}
	if len(yearly.Labels) != 12 || yearly.Labels[0] != "Jan" || yearly.Labels[11] != "Dec" {
		t.Fatalf("yearly labels mismatch: %v", yearly.Labels)
	}
	if yearly.Articles[2] != 1 || yearly.Videos[2] != 1 || yearly.Articles[5] != 2 || yearly.Videos[5] != 2 || yearly.Images[5] != 2 {
		t.Fatalf("yearly buckets mismatch: %+v", yearly)
	}

	if _, err := svc.GetContentStats(ctx, DashboardContentInput{View: DashboardViewWeekly, Year: 2026, Month: 13}); !errors.Is(err, ErrDashboardRangeInvalid) {
		t.Fatalf("bad month want ErrDashboardRangeInvalid, got %v", err)
	}
}

func TestRoleAuditRecordSkipsAnonymous(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewRoleAuditService(repository.NewRoleAuditLogRepository(db))

	if err := svc.Record(RoleAuditInput{Action: "role_grant"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	target := uint(9)
	if err := svc.Record(RoleAuditInput{
		OperatorAdminID:  1,
		OperatorUsername: "admin",
		TargetAdminID:    &target,
		Action:           "role_grant",
		Role:             "editor",
		Method:           "post",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	rows, total, err := svc.List(repository.RoleAuditLogListFilter{Page: 1, PageSize: 10, Role: "editor"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || rows[0].Method != "POST" || rows[0].OperatorUsername != "admin" {
		t.Fatalf("audit rows mismatch: %+v", rows)
	}
}
