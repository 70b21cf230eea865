package handlers

import (
	"github.com/gin-gonic/gin"

	"platelink/internal/services"
	"platelink/internal/utils"
)

type ReferralHandler struct {
	referralService services.ReferralService
}

func NewReferralHandler(referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// Validate checks a code without redeeming it, for signup-form feedback.
func (h *ReferralHandler) Validate(c *gin.Context) {
	_, err := h.referralService.ValidateCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral code is valid", gin.H{"valid": true})
}

type applyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *ReferralHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request applyReferralRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.referralService.Apply(c.Request.Context(), userID, request.Code)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral applied successfully", result)
}

func (h *ReferralHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.referralService.GetStatus(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral status retrieved successfully", status)
}
