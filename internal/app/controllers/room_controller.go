package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/middleware"
)

// RoomController handles the room inventory
type RoomController struct {
	occupancyService services.OccupancyService
}

// NewRoomController creates a new RoomController
func NewRoomController(occupancyService services.OccupancyService) *RoomController {
	return &RoomController{occupancyService: occupancyService}
}

// ListRooms lists rooms with their current occupancy
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.RoomOccupancy}
// @Router /rooms [get]
func (c *RoomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.occupancyService.ListRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if rooms == nil {
		rooms = []*models.RoomOccupancy{}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rooms, ""))
}

// CreateRoom registers a room
// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 409 {object} dto.ErrorResponse "Room already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.occupancyService.CreateRoom(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Room created"))
}
