package forms

import (
	"github.com/go-playground/validator/v10"
)

type RegistrationRequestForm struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=100"`
	Role             string `json:"role" binding:"required,approvalRole"`
	ClubName         string `json:"club_name" binding:"required_if=Role ClubCoordinator"`
	StaffDepartment  string `json:"staff_department" binding:"required_if=Role Staff"`
	StaffDesignation string `json:"staff_designation" binding:"omitempty,max=100"`
}

type ReviewRequestForm struct {
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// Roles that register through the approval workflow. Students and admins
// never do
var ApprovalRole validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().Interface() {
	case "SeatingManager", "ClubCoordinator", "Staff":
		return true
	}
	return false
}
