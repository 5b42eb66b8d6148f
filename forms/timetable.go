package forms

type TimetableSlotForm struct {
	Day         string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	Period      int    `json:"period" binding:"required,min=1,max=10"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Subject     string `json:"subject" binding:"omitempty"`
	SubjectName string `json:"subject_name" binding:"required,max=100"`
	SubjectCode string `json:"subject_code" binding:"omitempty,max=20"`
	Faculty     string `json:"faculty" binding:"omitempty,max=100"`
	Room        string `json:"room" binding:"omitempty,max=20"`
	Type        string `json:"type" binding:"omitempty,oneof=Lecture Lab Tutorial Break Free"`
}

type TimetableForm struct {
	Department string              `json:"department" binding:"required"`
	Year       int                 `json:"year" binding:"required,min=1,max=4"`
	Semester   int                 `json:"semester" binding:"omitempty,min=1,max=8"`
	Section    string              `json:"section" binding:"omitempty,max=5"`
	Slots      []TimetableSlotForm `json:"slots" binding:"required,min=1,dive"`
}
