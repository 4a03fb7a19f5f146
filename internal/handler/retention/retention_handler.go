package retention

import (
	"net/http"

	"github.com/dinerozz/parts-analytics-backend/internal/model/response"
	"github.com/dinerozz/parts-analytics-backend/internal/model/response/wrapper"
	retentionService "github.com/dinerozz/parts-analytics-backend/internal/service/retention"
	"github.com/gin-gonic/gin"
)

type RetentionHandler struct {
	service retentionService.RetentionService
}

func NewRetentionHandler(service retentionService.RetentionService) *RetentionHandler {
	return &RetentionHandler{service: service}
}

// Purge godoc
// @Summary      Purge old events
// @Description  Deletes events older than the retention window (90 days by default). Safe to repeat.
// @Tags         /api/v1/admin/analytics
// @Produce      json
// @Success      200  {object}  response.Purge
// @Failure      401  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /admin/analytics/retention/purge [post]
func (h *RetentionHandler) Purge(c *gin.Context) {
	result, err := h.service.Purge(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, response.Purge{
		Success: true,
		Deleted: result.Deleted,
		Cutoff:  result.Cutoff,
	})
}
