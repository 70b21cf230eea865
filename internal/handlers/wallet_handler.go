package handlers

import (
	"github.com/gin-gonic/gin"

	"platelink/internal/services"
	"platelink/internal/utils"
)

type WalletHandler struct {
	ledgerService services.LedgerService
}

func NewWalletHandler(ledgerService services.LedgerService) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
	}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Balance retrieved successfully", gin.H{
		"balance":       account.Balance,
		"referral_code": account.ReferralCode,
	})
}

func (h *WalletHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	entries, meta, err := h.ledgerService.History(c.Request.Context(), userID, params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Ledger history retrieved successfully", entries, &utils.Meta{Pagination: meta})
}
