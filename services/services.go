package services

import (
	"github.com/MLR-commits/Intranet_BAcademic/aws_s3"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"github.com/MLR-commits/Intranet_BAcademic/stack"
	"go.uber.org/zap"
)

// Models
var userModel = models.NewUserModel()
var notificationModel = models.NewNotificationModel()
var assignmentModel = models.NewAssignmentModel()
var examModel = models.NewExamModel()
var roomModel = models.NewRoomModel()
var seatingModel = models.NewSeatingModel()
var placementModel = models.NewPlacementModel()
var registrationRequestModel = models.NewRegistrationRequestModel()
var eventModel = models.NewEventModel()
var resultModel = models.NewResultModel()
var timetableModel = models.NewTimetableModel()
var careerApprovalModel = models.NewCareerApprovalModel()
var hallTicketModel = models.NewHallTicketModel()
var subjectModel = models.NewSubjectModel()
var departmentModel = models.NewDepartmentModel()

// Packages
var nats = stack.NewNats()
var aws = aws_s3.NewAWSS3()

// Settings
var settingsData = settings.GetSettings()

// Logger
var logger, _ = zap.NewProduction()

// notify publishes a domain event for the realtime gateway to fan out.
// Room empty = broadcast
func notify(payload res.NotifyAcademic) {
	if err := nats.PublishEncode(res.NOTIFY_SUBJECT, payload); err != nil {
		logger.Error(
			"Could not publish event",
			zap.String("event", payload.Event),
			zap.Error(err),
		)
	}
}
