package forms

type AllocateRoomForm struct {
	RoomNumber string `json:"room_number" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
	Floor      string `json:"floor" binding:"omitempty"`
}

type RoomForm struct {
	RoomNumber    string `json:"room_number" binding:"required,max=20"`
	Building      string `json:"building" binding:"omitempty,max=100"`
	Floor         string `json:"floor" binding:"omitempty,max=20"`
	Capacity      int    `json:"capacity" binding:"required,min=1,max=500"`
	LayoutPattern string `json:"layout_pattern" binding:"omitempty,oneof=sequential alternate"`
	IsAvailable   *bool  `json:"is_available" binding:"omitempty"`
}

type AllocateSeatingForm struct {
	Exam       string             `json:"exam" binding:"required"`
	ExamType   string             `json:"exam_type" binding:"omitempty,examType"`
	Date       string             `json:"date" binding:"omitempty"`
	Session    string             `json:"session" binding:"omitempty,session"`
	Department string             `json:"department" binding:"omitempty"`
	Year       int                `json:"year" binding:"omitempty,min=1,max=4"`
	Rooms      []AllocateRoomForm `json:"rooms" binding:"omitempty,dive"`
}
