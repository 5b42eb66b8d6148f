package forms

import (
	"github.com/go-playground/validator/v10"
)

type AssignmentForm struct {
	Exam        string `json:"exam" binding:"required"`
	Room        string `json:"room" binding:"required"`
	Invigilator string `json:"invigilator" binding:"required"`
	Date        string `json:"date" binding:"required"` // 2006-01-02
	Session     string `json:"session" binding:"required,session"`
	Remarks     string `json:"remarks" binding:"omitempty,max=300"`
}

type AssignmentStatusForm struct {
	Status  string `json:"status" binding:"required,assignmentStatus"`
	Remarks string `json:"remarks" binding:"omitempty,max=300"`
}

var Session validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == "FN" {
		return true
	}
	if fl.Field().Interface() == "AN" {
		return true
	}
	return false
}

var AssignmentStatus validator.Func = func(fl validator.FieldLevel) bool {
	status := fl.Field().Interface()
	return status == "Confirmed" || status == "Completed"
}
