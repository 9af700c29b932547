package models

// Stay defines one occupancy record based on the 'stays' table.
// A stay is open while CheckoutDate is nil.
type Stay struct {
	ID             int64   `json:"id" db:"id"`
	StudentID      int64   `json:"studentId" db:"student_id"`
	RoomID         int64   `json:"roomId" db:"room_id"`
	CheckinDate    string  `json:"checkinDate" db:"checkin_date"`
	CheckoutDate   *string `json:"checkoutDate,omitempty" db:"checkout_date"`
	CheckoutReason *string `json:"checkoutReason,omitempty" db:"checkout_reason"`
}

// IsOpen reports whether the stay has not been checked out
func (s *Stay) IsOpen() bool {
	return s.CheckoutDate == nil
}

// OpenStay is an open stay joined with the student and room it links
type OpenStay struct {
	StayID      int64  `json:"stayId"`
	StudentID   int64  `json:"studentId"`
	StudentName string `json:"studentName"`
	RoomID      int64  `json:"roomId"`
	Building    string `json:"building"`
	RoomNumber  string `json:"roomNumber"`
	CheckinDate string `json:"checkinDate"`
}
