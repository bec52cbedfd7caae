package admin

import (
	"strconv"
	"strings"

	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview site totals
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh, err := parseForceRefresh(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid force_refresh", nil)
		return
	}
	data, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondServiceError(c, err, "dashboard fetch failed")
		return
	}
	response.Success(c, data)
}

// GetDashboardMonth per-day publishing and reporter stats of ?year&month
func (h *Handler) GetDashboardMonth(c *gin.Context) {
	input, err := parseDashboardMonth(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	data, err := h.DashboardService.GetMonth(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "dashboard fetch failed")
		return
	}
	response.Success(c, data)
}

// GetDashboardContent article, video and image counts of ?view=weekly|monthly|yearly
func (h *Handler) GetDashboardContent(c *gin.Context) {
	month, err := parseDashboardMonth(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	data, err := h.DashboardService.GetContentStats(c.Request.Context(), service.DashboardContentInput{
		View:         c.Query("view"),
		Year:         month.Year,
		Month:        month.Month,
		ForceRefresh: month.ForceRefresh,
	})
	if err != nil {
		respondServiceError(c, err, "dashboard fetch failed")
		return
	}
	response.Success(c, data)
}

func parseForceRefresh(c *gin.Context) (bool, error) {
	raw := strings.TrimSpace(c.Query("force_refresh"))
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func parseDashboardMonth(c *gin.Context) (service.DashboardMonthInput, error) {
	forceRefresh, err := parseForceRefresh(c)
	if err != nil {
		return service.DashboardMonthInput{}, err
	}
	input := service.DashboardMonthInput{ForceRefresh: forceRefresh}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		if input.Year, err = strconv.Atoi(raw); err != nil {
			return service.DashboardMonthInput{}, err
		}
	}
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		if input.Month, err = strconv.Atoi(raw); err != nil {
			return service.DashboardMonthInput{}, err
		}
	}
	return input, nil
}
