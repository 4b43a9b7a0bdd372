package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type timelineHandler struct {
	timelineService portssvc.TimelineSvc
}

// RegisterTimelineRoutes registers product timeline routes.
func RegisterTimelineRoutes(rg *gin.RouterGroup, timelineService portssvc.TimelineSvc) {
	h := &timelineHandler{timelineService: timelineService}
	rg.GET("/products/:productID/timeline", h.getTimeline)
}

func (h *timelineHandler) getTimeline(c *gin.Context) {
	timeline, err := h.timelineService.BuildTimeline(c.Request.Context(), c.Param("productID"))
	if err != nil {
		writeServiceError(c, err, "build product timeline")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimelineResponse(timeline))
}
