package dto

// CheckInRequest opens a stay; an empty date means today
type CheckInRequest struct {
	StudentID   int64  `json:"studentId" binding:"required,min=1"`
	RoomID      int64  `json:"roomId" binding:"required,min=1"`
	CheckinDate string `json:"checkinDate" binding:"omitempty,datetime=2006-01-02"`
}

// CheckOutRequest closes a stay; an empty date means today
type CheckOutRequest struct {
	CheckoutDate string `json:"checkoutDate" binding:"omitempty,datetime=2006-01-02"`
	Reason       string `json:"reason"`
}
