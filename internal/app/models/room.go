package models

// RoomStatus is set manually and never derived from occupancy
type RoomStatus string

const (
	RoomStatusFree    RoomStatus = "free"
	RoomStatusPartial RoomStatus = "partial"
	RoomStatusFull    RoomStatus = "full"
	RoomStatusRepair  RoomStatus = "repair"
)

// Valid reports whether s is one of the stored statuses
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusFree, RoomStatusPartial, RoomStatusFull, RoomStatusRepair:
		return true
	}
	return false
}

// Room defines the room model based on the 'rooms' table
type Room struct {
	ID         int64      `json:"id" db:"id"`
	Building   string     `json:"building" db:"building"`
	Floor      int        `json:"floor" db:"floor"`
	RoomNumber string     `json:"roomNumber" db:"room_number"`
	TotalBeds  int        `json:"totalBeds" db:"total_beds"`
	Status     RoomStatus `json:"status" db:"status"`
}

// RoomOccupancy is a room annotated with its live count of open stays
type RoomOccupancy struct {
	Room
	Occupied int `json:"occupied"`
}

// FreeBeds is never negative even when occupancy exceeds capacity
func (r RoomOccupancy) FreeBeds() int {
	if free := r.TotalBeds - r.Occupied; free > 0 {
		return free
	}
	return 0
}
