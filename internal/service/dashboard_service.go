package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService newsroom statistics
type DashboardService struct {
	repo      repository.DashboardRepository
	adminRepo repository.AdminRepository
	clock     Clock
}

// NewDashboardService creates the dashboard service
func NewDashboardService(repo repository.DashboardRepository, adminRepo repository.AdminRepository, clock Clock) *DashboardService {
	return &DashboardService{repo: repo, adminRepo: adminRepo, clock: clock}
}

// DashboardMonthInput month selector; zero values mean the current month
type DashboardMonthInput struct {
	Year         int
	Month        int
	ForceRefresh bool
}

// DashboardOverviewResponse site totals
type DashboardOverviewResponse struct {
	ArticlesTotal     int64 `json:"articles_total"`
	ArticlesScheduled int64 `json:"articles_scheduled"`
	SectionsActive    int64 `json:"sections_active"`
	ReviewsTotal      int64 `json:"reviews_total"`
	ViewsTotal        int64 `json:"views_total"`
	ShortURLClicks    int64 `json:"short_url_clicks"`
}

// DashboardDailyPoint one day of the month
type DashboardDailyPoint struct {
	Date          string `json:"date"`
	Articles      int64  `json:"articles"`
	Videos        int64  `json:"videos"`
	HeadingImages int64  `json:"heading_images"`
	MainImages    int64  `json:"main_images"`
}

// DashboardReporterRanking articles per admin
type DashboardReporterRanking struct {
	AdminID  uint   `json:"admin_id"`
	Name     string `json:"name"`
	Articles int64  `json:"articles"`
}

// DashboardMonthResponse daily counts and top reporters of one month
type DashboardMonthResponse struct {
	Month     string                     `json:"month"`
	Points    []DashboardDailyPoint      `json:"points"`
	Reporters []DashboardReporterRanking `json:"reporters"`
}

// GetOverview returns site totals
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	cacheKey := "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(s.clock.now())
	if err != nil {
		return nil, err
	}
	response := &DashboardOverviewResponse{
		ArticlesTotal:     row.ArticlesTotal,
		ArticlesScheduled: row.ArticlesScheduled,
		SectionsActive:    row.SectionsActive,
		ReviewsTotal:      row.ReviewsTotal,
		ViewsTotal:        row.ViewsTotal,
		ShortURLClicks:    row.ShortURLClicks,
	}
	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// GetMonth returns per-day counts and the top reporters of a month
func (s *DashboardService) GetMonth(ctx context.Context, input DashboardMonthInput) (*DashboardMonthResponse, error) {
	startAt, endAt, err := resolveDashboardMonth(input, s.clock.now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:month:%s", startAt.Format("2006-01"))
	if !input.ForceRefresh {
		var cached DashboardMonthResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	dailyRows, err := s.repo.GetDailyArticleStats(startAt, endAt)
	if err != nil {
		return nil, err
	}
	dailyMap := make(map[string]repository.DashboardDailyRow, len(dailyRows))
	for _, item := range dailyRows {
		dailyMap[item.Day] = item
	}
	videoRows, err := s.repo.GetDailyVideoStats(startAt, endAt)
	if err != nil {
		return nil, err
	}
	videoMap := make(map[string]int64, len(videoRows))
	for _, item := range videoRows {
		videoMap[item.Day] = item.Videos
	}
	points := make([]DashboardDailyPoint, 0, 31)
	for cursor := startAt; cursor.Before(endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		item := dailyMap[day]
		points = append(points, DashboardDailyPoint{
			Date:          day,
			Articles:      item.Articles,
			Videos:        videoMap[day],
			HeadingImages: item.HeadingImages,
			MainImages:    item.MainImages,
		})
	}

	reporters, err := s.reporterRankings(startAt, endAt)
	if err != nil {
		return nil, err
	}

	response := &DashboardMonthResponse{
		Month:     startAt.Format("2006-01"),
		Points:    points,
		Reporters: reporters,
	}
	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

// Content stats views
const (
	DashboardViewWeekly  = "weekly"
	DashboardViewMonthly = "monthly"
	DashboardViewYearly  = "yearly"
)

// DashboardContentInput content stats selector; an unknown view means monthly
type DashboardContentInput struct {
	View         string
	Year         int
	Month        int
	ForceRefresh bool
}

// DashboardContentResponse labelled buckets of articles, videos and images
type DashboardContentResponse struct {
	View     string   `json:"view"`
	Labels   []string `json:"labels"`
	Articles []int64  `json:"articles"`
	Videos   []int64  `json:"videos"`
	Images   []int64  `json:"images"`
}

// GetContentStats returns content counts per week of a month, per day of a
// month, or per month of a year.
func (s *DashboardService) GetContentStats(ctx context.Context, input DashboardContentInput) (*DashboardContentResponse, error) {
	view := strings.ToLower(strings.TrimSpace(input.View))
	if view != DashboardViewWeekly && view != DashboardViewYearly {
		view = DashboardViewMonthly
	}
	monthInput := DashboardMonthInput{Year: input.Year, Month: input.Month}
	if view == DashboardViewYearly && input.Year != 0 && input.Month == 0 {
		monthInput.Month = 1
	}
	startAt, endAt, err := resolveDashboardMonth(monthInput, s.clock.now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:content:%s:%s", view, startAt.Format("2006-01"))
	if view == DashboardViewYearly {
		cacheKey = fmt.Sprintf("dashboard:content:%s:%d", view, startAt.Year())
	}
	if !input.ForceRefresh {
		var cached DashboardContentResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	response := &DashboardContentResponse{View: view}
	switch view {
	case DashboardViewWeekly:
		err = s.fillWeekly(response, startAt, endAt)
	case DashboardViewYearly:
		err = s.fillYearly(response, startAt.Year())
	default:
		err = s.fillDaily(response, startAt, endAt)
	}
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}

func (r *DashboardContentResponse) add(label string, row repository.DashboardContentRow) {
	r.Labels = append(r.Labels, label)
	r.Articles = append(r.Articles, row.Articles)
	r.Videos = append(r.Videos, row.Videos)
	r.Images = append(r.Images, row.Images)
}

// fillWeekly four weeks from the first of the month; the last one runs to the month end
func (s *DashboardService) fillWeekly(response *DashboardContentResponse, startAt, endAt time.Time) error {
	const weeks = 4
	for week := 0; week < weeks; week++ {
		from := startAt.AddDate(0, 0, 7*week)
		to := from.AddDate(0, 0, 7)
		if week == weeks-1 || to.After(endAt) {
			to = endAt
		}
		row, err := s.repo.GetContentStats(from, to)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("Week %d (%s-%s)", week+1, from.Format("02/01"), to.Add(-time.Second).Format("02/01"))
		response.add(label, row)
	}
	return nil
}

func (s *DashboardService) fillYearly(response *DashboardContentResponse, year int) error {
	for month := time.January; month <= time.December; month++ {
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		row, err := s.repo.GetContentStats(from, from.AddDate(0, 1, 0))
		if err != nil {
			return err
		}
		response.add(from.Format("Jan"), row)
	}
	return nil
}

func (s *DashboardService) fillDaily(response *DashboardContentResponse, startAt, endAt time.Time) error {
	articleRows, err := s.repo.GetDailyArticleStats(startAt, endAt)
	if err != nil {
		return err
	}
	videoRows, err := s.repo.GetDailyVideoStats(startAt, endAt)
	if err != nil {
		return err
	}
	byDay := make(map[string]repository.DashboardContentRow, len(articleRows)+len(videoRows))
	for _, item := range articleRows {
		row := byDay[item.Day]
		row.Articles = item.Articles
		row.Images = item.HeadingImages + item.MainImages
		byDay[item.Day] = row
	}
	for _, item := range videoRows {
		row := byDay[item.Day]
		row.Videos = item.Videos
		byDay[item.Day] = row
	}
	for cursor := startAt; cursor.Before(endAt); cursor = cursor.AddDate(0, 0, 1) {
		response.add(strconv.Itoa(cursor.Day()), byDay[cursor.Format("2006-01-02")])
	}
	return nil
}

func (s *DashboardService) reporterRankings(startAt, endAt time.Time) ([]DashboardReporterRanking, error) {
	rows, err := s.repo.GetReporterStats(startAt, endAt, constants.ReporterStatsMaxReporter)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AdminID)
	}
	admins, err := s.adminRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(admins))
	for _, admin := range admins {
		name := strings.TrimSpace(admin.DisplayName)
		if name == "" {
			name = admin.Username
		}
		names[admin.ID] = name
	}

	rankings := make([]DashboardReporterRanking, 0, len(rows))
	for _, row := range rows {
		name := names[row.AdminID]
		if name == "" {
			name = "-"
		}
		rankings = append(rankings, DashboardReporterRanking{
			AdminID:  row.AdminID,
			Name:     name,
			Articles: row.Articles,
		})
	}
	return rankings, nil
}

// resolveDashboardMonth returns [first day, first day of next month) in UTC
func resolveDashboardMonth(input DashboardMonthInput, now time.Time) (time.Time, time.Time, error) {
	year, month := input.Year, input.Month
	if year == 0 && month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	if year < 2000 || year > 9999 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrDashboardRangeInvalid
	}
	startAt := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return startAt, startAt.AddDate(0, 1, 0), nil
}
