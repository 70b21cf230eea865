package handlers

import (
	"github.com/gin-gonic/gin"

	"platelink/internal/services"
	"platelink/internal/utils"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Register creates an owner account with its credit ledger and returns an
// access token.
func (h *AccountHandler) Register(c *gin.Context) {
	var input services.CreateOwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	profile, token, err := h.accountService.CreateOwner(c.Request.Context(), &input)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", gin.H{
		"profile": profile,
		"token":   token,
	})
}

type loginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func (h *AccountHandler) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	profile, token, err := h.accountService.Login(c.Request.Context(), request.Phone)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", gin.H{
		"profile": profile,
		"token":   token,
	})
}

func (h *AccountHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.accountService.GetOwner(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", profile)
}

func (h *AccountHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.UpdateContactProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.accountService.UpdateContactProfile(c.Request.Context(), userID, &input)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", user)
}
