package server

import (
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func InitValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("session", forms.Session)
		v.RegisterValidation("examType", forms.ExamType)
		v.RegisterValidation("assignmentStatus", forms.AssignmentStatus)
		v.RegisterValidation("eventStatus", forms.EventStatus)
		v.RegisterValidation("approvalRole", forms.ApprovalRole)
	}
}
