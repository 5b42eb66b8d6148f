package forms

type HallTicketForm struct {
	Student string `json:"student" binding:"required"`
	Exam    string `json:"exam" binding:"required"`
}

type BulkHallTicketsForm struct {
	Exam       string `json:"exam" binding:"required"`
	Department string `json:"department" binding:"omitempty"`
	Year       int    `json:"year" binding:"omitempty,min=1,max=4"`
}
