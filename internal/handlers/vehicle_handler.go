package handlers

import (
	"github.com/gin-gonic/gin"

	"platelink/internal/models"
	"platelink/internal/services"
	"platelink/internal/utils"
)

type VehicleHandler struct {
	registryService services.RegistryService
	activityService services.ActivityService
}

func NewVehicleHandler(registryService services.RegistryService, activityService services.ActivityService) *VehicleHandler {
	return &VehicleHandler{
		registryService: registryService,
		activityService: activityService,
	}
}

type registerVehicleRequest struct {
	Plate         string               `json:"plate" binding:"required"`
	WheelCategory models.WheelCategory `json:"wheel_category" binding:"required"`
}

func (h *VehicleHandler) Register(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request registerVehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.registryService.RegisterVehicle(c.Request.Context(), userID, request.Plate, request.WheelCategory)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle registered successfully", vehicle)
}

func (h *VehicleHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicles, err := h.registryService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", vehicles, &utils.Meta{Count: len(vehicles)})
}

func (h *VehicleHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.registryService.FindByID(c.Request.Context(), vehicleID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	if vehicle.OwnerID != userID {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.registryService.RemoveVehicle(c.Request.Context(), userID, vehicleID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle removed successfully", nil)
}

func (h *VehicleHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	stats, err := h.activityService.GetVehicleStats(c.Request.Context(), userID, vehicleID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle stats retrieved successfully", stats)
}
