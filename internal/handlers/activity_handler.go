package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"platelink/internal/services"
	"platelink/internal/utils"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// Feed returns the owner's lifetime search totals and recent events across
// all their vehicles, including removed ones.
func (h *ActivityHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultHistoryLimit)), 10, 64)

	activity, err := h.activityService.GetOwnerActivity(c.Request.Context(), userID, limit)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Activity retrieved successfully", activity)
}
