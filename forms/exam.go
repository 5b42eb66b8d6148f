package forms

import (
	"github.com/go-playground/validator/v10"
)

type ExamForm struct {
	CourseName string   `json:"course_name" binding:"required,min=1,max=100"`
	CourseCode string   `json:"course_code" binding:"required,min=1,max=20"`
	Date       string   `json:"date" binding:"required"`
	StartTime  string   `json:"start_time" binding:"required"`
	EndTime    string   `json:"end_time" binding:"required"`
	Duration   int      `json:"duration" binding:"required,min=30,max=300"` // Minutes
	ExamType   string   `json:"exam_type" binding:"required,examType"`
	Session    string   `json:"session" binding:"omitempty,session"`
	Department string   `json:"department" binding:"required"`
	Semester   string   `json:"semester" binding:"required"`
	Year       int      `json:"year" binding:"omitempty,min=1,max=4"`
	Batches    []string `json:"batches" binding:"omitempty"`
}

type ScheduleForm struct {
	Year        int      `json:"year" binding:"required,min=1,max=4"`
	ExamType    string   `json:"exam_type" binding:"required,examType"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Holidays    []string `json:"holidays" binding:"omitempty"`
	Departments []string `json:"departments" binding:"omitempty"`
}

var ExamType validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().Interface() {
	case "Internal", "Semester", "Midterm", "Final", "Lab":
		return true
	}
	return false
}
