package dto

import "github.com/yigit/dormitory/internal/app/models"

// CreateRoomRequest registers a room; status defaults to free
type CreateRoomRequest struct {
	Building   string `json:"building" binding:"required"`
	Floor      *int   `json:"floor" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
	TotalBeds  int    `json:"totalBeds" binding:"required,min=1"`
	Status     string `json:"status" binding:"omitempty,oneof=free partial full repair"`
}

// ToModel maps the request onto a new room
func (r CreateRoomRequest) ToModel() *models.Room {
	room := &models.Room{
		Building:   r.Building,
		RoomNumber: r.RoomNumber,
		TotalBeds:  r.TotalBeds,
		Status:     models.RoomStatus(r.Status),
	}
	if r.Floor != nil {
		room.Floor = *r.Floor
	}
	return room
}
