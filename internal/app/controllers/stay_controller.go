package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/dormitory/internal/app/models"
	"github.com/yigit/dormitory/internal/app/models/dto"
	"github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/middleware"
)

// StayController handles check-in and check-out
type StayController struct {
	occupancyService services.OccupancyService
}

// NewStayController creates a new StayController
func NewStayController(occupancyService services.OccupancyService) *StayController {
	return &StayController{occupancyService: occupancyService}
}

// ListOpenStays lists everyone currently living in the dormitory
// @Summary Open stays
// @Tags stays
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.OpenStay}
// @Router /stays [get]
func (c *StayController) ListOpenStays(ctx *gin.Context) {
	stays, err := c.occupancyService.ListOpenStays(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if stays == nil {
		stays = []*models.OpenStay{}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stays, ""))
}

// CheckIn opens a stay
// @Summary Check in
// @Tags stays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckInRequest true "Check-in"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 404 {object} dto.ErrorResponse "Student or room not found"
// @Failure 409 {object} dto.ErrorResponse "Room full or student already checked in"
// @Router /stays [post]
func (c *StayController) CheckIn(ctx *gin.Context) {
	var req dto.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	id, err := c.occupancyService.CheckIn(ctx.Request.Context(), req.StudentID, req.RoomID, req.CheckinDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}, "Checked in"))
}

// CheckOut closes an open stay
// @Summary Check out
// @Tags stays
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Stay ID"
// @Param request body dto.CheckOutRequest false "Check-out"
// @Success 200 {object} dto.APIResponse{data=models.Stay}
// @Failure 404 {object} dto.ErrorResponse "No open stay with this ID"
// @Router /stays/{id}/checkout [post]
func (c *StayController) CheckOut(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Stay")
	if !ok {
		return
	}

	var req dto.CheckOutRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	if err := c.occupancyService.CheckOut(ctx.Request.Context(), id, req.CheckoutDate, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stay, err := c.occupancyService.GetStay(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stay, "Checked out"))
}
