package forms

import (
	"github.com/go-playground/validator/v10"
)

type EventForm struct {
	Title       string   `json:"title" binding:"required,min=1,max=100"`
	Description string   `json:"description" binding:"required,min=1,max=2000"`
	Category    string   `json:"category" binding:"required,oneof=Technical Cultural Sports"`
	Date        string   `json:"date" binding:"required"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	Venue       string   `json:"venue" binding:"required,max=100"`
	Attachments []string `json:"attachments" binding:"omitempty"`
}

type EventStatusForm struct {
	Status   string `json:"status" binding:"required,eventStatus"`
	Comments string `json:"comments" binding:"required_if=Status ChangesRequested,max=500"`
}

var EventStatus validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().Interface() {
	case "Approved", "Rejected", "ChangesRequested":
		return true
	}
	return false
}
