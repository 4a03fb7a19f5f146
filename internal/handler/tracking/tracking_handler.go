package tracking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/internal/metrics"
	"github.com/dinerozz/parts-analytics-backend/internal/model/response"
	trackingService "github.com/dinerozz/parts-analytics-backend/internal/service/tracking"
	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	service trackingService.TrackingService
}

func NewTrackingHandler(service trackingService.TrackingService) *TrackingHandler {
	RegisterValidators()
	return &TrackingHandler{service: service}
}

// TrackEvent godoc
// @Summary      Record a storefront event
// @Description  Records a page view, click or product view. Repeated page views of the same page by the same session within 30 seconds are acknowledged but not stored.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body      entity.CreateEventRequest  true  "Event"
// @Success      201    {object}  response.TrackEvent
// @Success      200    {object}  response.TrackEvent
// @Failure      400    {object}  response.TrackEvent
// @Failure      500    {object}  response.TrackEvent
// @Router       /events [post]
func (h *TrackingHandler) TrackEvent(c *gin.Context) {
	var req entity.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr := bindError(err)
		metrics.RecordIngest("", metrics.ResultInvalid)
		c.JSON(http.StatusBadRequest, response.TrackEvent{
			Success: false,
			Error:   fmt.Sprintf("%s: %s", bindErr.Error(), err.Error()),
		})
		return
	}

	req.UserAgent = c.Request.UserAgent()
	req.IPAddress = c.ClientIP()

	result, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrValidation) || errors.Is(err, entity.ErrInvalidEventType) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.TrackEvent{Success: false, Error: err.Error()})
		return
	}

	if result.Duplicate {
		c.JSON(http.StatusOK, response.TrackEvent{Success: true, Duplicate: true})
		return
	}

	c.JSON(http.StatusCreated, response.TrackEvent{Success: true, EventID: result.EventID})
}
