// internal/handler/analytics/analytics_handler.go
package analytics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/internal/model/response/wrapper"
	service "github.com/dinerozz/parts-analytics-backend/internal/service/analytics_service"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 10 * time.Second

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func bindRange(c *gin.Context) (entity.RangeQuery, bool) {
	var q entity.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid range parameters: " + err.Error(), Success: false})
		return q, false
	}
	return q, true
}

func fail(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrValidation) {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}
	c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
}

// GetDashboard godoc
// @Summary      Dashboard analytics
// @Description  Daily traffic series, totals with period comparison, top products, categories and units
// @Tags         /api/v1/admin/analytics
// @Produce      json
// @Param        startDate  query     string  false  "Range start (RFC3339)"
// @Param        endDate    query     string  false  "Range end (RFC3339)"
// @Param        period     query     string  false  "last_7_days | last_30_days | last_90_days"
// @Param        days       query     int     false  "Days back from today (1-90, default 30)"
// @Success      200        {object}  wrapper.ResponseWrapper{data=entity.DashboardResponse}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      401        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /admin/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	q, ok := bindRange(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.service.Dashboard(ctx, q)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: resp, Success: true})
}

// GetTraffic godoc
// @Summary      Traffic analytics
// @Description  Page view series by day or hour, top pages and period comparison
// @Tags         /api/v1/admin/analytics
// @Produce      json
// @Param        startDate    query     string  false  "Range start (RFC3339)"
// @Param        endDate      query     string  false  "Range end (RFC3339)"
// @Param        period       query     string  false  "last_7_days | last_30_days | last_90_days"
// @Param        days         query     int     false  "Days back from today (1-90, default 30)"
// @Param        granularity  query     string  false  "day | hour"
// @Success      200          {object}  wrapper.ResponseWrapper{data=entity.TrafficResponse}
// @Failure      400          {object}  wrapper.ErrorWrapper
// @Failure      401          {object}  wrapper.ErrorWrapper
// @Failure      500          {object}  wrapper.ErrorWrapper
// @Router       /admin/analytics/traffic [get]
func (h *AnalyticsHandler) GetTraffic(c *gin.Context) {
	q, ok := bindRange(c)
	if !ok {
		return
	}

	granularity := c.DefaultQuery("granularity", "day")
	if granularity != "day" && granularity != "hour" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "granularity must be day or hour", Success: false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.service.Traffic(ctx, q, granularity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: resp, Success: true})
}

// GetProducts godoc
// @Summary      Product analytics
// @Description  Product view series, top products with catalog data, category rollup and period comparison
// @Tags         /api/v1/admin/analytics
// @Produce      json
// @Param        startDate  query     string  false  "Range start (RFC3339)"
// @Param        endDate    query     string  false  "Range end (RFC3339)"
// @Param        period     query     string  false  "last_7_days | last_30_days | last_90_days"
// @Param        days       query     int     false  "Days back from today (1-90, default 30)"
// @Param        limit      query     int     false  "Top products to return (default 10, max 100)"
// @Success      200        {object}  wrapper.ResponseWrapper{data=entity.ProductAnalyticsResponse}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      401        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /admin/analytics/products [get]
func (h *AnalyticsHandler) GetProducts(c *gin.Context) {
	q, ok := bindRange(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultTopLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid limit", Success: false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.service.ProductAnalytics(ctx, q, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: resp, Success: true})
}
