package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"platelink/internal/services"
	"platelink/internal/utils"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search looks up a plate and returns the masked owner summary. Works for
// anonymous callers; an authenticated searcher is attributed on the owner's
// activity feed.
func (h *SearchHandler) Search(c *gin.Context) {
	rawPlate := c.Query("plate")
	if rawPlate == "" {
		utils.BadRequestResponse(c, "Query parameter 'plate' is required")
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), optionalUserID(c), rawPlate)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Search completed", result)
}

// Reveal charges the searcher one credit and discloses the owner's enabled
// contact channels. Clients may pass an Idempotency-Key header to make
// retries free; without one each call is a fresh charge.
func (h *SearchHandler) Reveal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		idempotencyKey = uuid.New().String()
	}

	contact, err := h.searchService.Reveal(c.Request.Context(), userID, vehicleID, idempotencyKey)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Contact revealed", contact)
}
