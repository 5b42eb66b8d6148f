package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var assignmentService *AssignmentService

type AssignmentService struct{}

// NewAssignment books an invigilator into a room for an exam session.
// The (exam, room, date, session) unique index is the only guard against
// two concurrent requests double-booking the room; a duplicate-key error
// surfaces as 409
// assignmentInsertError maps an insert failure to its HTTP error. A
// duplicate key on the (exam, room, date, session) index means the slot is
// already booked
func assignmentInsertError(err error) *res.ErrorRes {
	if mongo.IsDuplicateKeyError(err) {
		return &res.ErrorRes{
			Err:        fmt.Errorf("la sala ya está reservada para este examen, fecha y sesión"),
			StatusCode: http.StatusConflict,
		}
	}
	return &res.ErrorRes{
		Err:        err,
		StatusCode: http.StatusServiceUnavailable,
	}
}

func (a *AssignmentService) NewAssignment(
	assignment *forms.AssignmentForm,
	claims *Claims,
) (*models.Assignment, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(assignment.Exam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjRoom, err := primitive.ObjectIDFromHex(assignment.Room)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjInvigilator, err := primitive.ObjectIDFromHex(assignment.Invigilator)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	date, err := time.Parse("2006-01-02", assignment.Date)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	// Referenced docs must exist
	var exam *models.Exam
	if err := examModel.GetByID(idObjExam).Decode(&exam); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el examen indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	var room *models.Room
	if err := roomModel.GetByID(idObjRoom).Decode(&room); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la sala indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	var invigilator *models.User
	if err := userModel.GetByID(idObjInvigilator).Decode(&invigilator); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el invigilador indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	if invigilator.Role != models.STAFF {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("el invigilador debe ser staff"),
			StatusCode: http.StatusBadRequest,
		}
	}

	modelAssignment := models.NewModelAssignment(
		idObjExam,
		idObjRoom,
		idObjInvigilator,
		idObjUser,
		date,
		assignment.Session,
		assignment.Remarks,
	)
	inserted, err := assignmentModel.NewDocument(modelAssignment)
	if err != nil {
		return nil, assignmentInsertError(err)
	}
	modelAssignment.ID = inserted.InsertedID.(primitive.ObjectID)
	// Tell the invigilator
	NewNotificationService().NotifyUser(
		idObjInvigilator,
		"Nueva invigilación asignada",
		fmt.Sprintf(
			"Has sido asignado a la sala %s el %s (%s)",
			room.RoomNumber,
			assignment.Date,
			assignment.Session,
		),
		res.EXAM,
	)
	return modelAssignment, nil
}

// GetSchedule lists the assignments of an invigilator, optionally filtered
// by date and session. Backed by the (invigilator, date, session) index
func (a *AssignmentService) GetSchedule(
	idInvigilator,
	date,
	session string,
) ([]models.AssignmentWLookup, *res.ErrorRes) {
	idObjInvigilator, err := primitive.ObjectIDFromHex(idInvigilator)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	match := bson.M{"invigilator": idObjInvigilator}
	if date != "" {
		timeDate, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		match["date"] = bson.M{
			"$gte": primitive.NewDateTimeFromTime(timeDate),
			"$lt":  primitive.NewDateTimeFromTime(timeDate.AddDate(0, 0, 1)),
		}
	}
	if session != "" {
		match["session"] = session
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.M{"date": 1, "session": 1}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.EXAMS_COLLECTION,
			"localField":   "exam",
			"foreignField": "_id",
			"as":           "exam",
		}}},
		bson.D{{Key: "$unwind", Value: "$exam"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.ROOMS_COLLECTION,
			"localField":   "room",
			"foreignField": "_id",
			"as":           "room",
		}}},
		bson.D{{Key: "$unwind", Value: "$room"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.USERS_COLLECTION,
			"localField":   "invigilator",
			"foreignField": "_id",
			"as":           "invigilator",
			"pipeline": bson.A{bson.M{
				"$project": bson.M{
					"name":  1,
					"email": 1,
					"role":  1,
				},
			}},
		}}},
		bson.D{{Key: "$unwind", Value: "$invigilator"}},
	}
	cursor, err := assignmentModel.Aggreagate(pipeline)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var assignments []models.AssignmentWLookup
	if err := cursor.All(db.Ctx, &assignments); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return assignments, nil
}

// UpdateStatus advances the Assigned -> Confirmed -> Completed lifecycle.
// Only the assigned invigilator confirms; admins can complete
func (a *AssignmentService) UpdateStatus(
	idAssignment string,
	status *forms.AssignmentStatusForm,
	claims *Claims,
) *res.ErrorRes {
	idObjAssignment, err := primitive.ObjectIDFromHex(idAssignment)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var assignment *models.Assignment
	cursor := assignmentModel.GetByID(idObjAssignment)
	if err := cursor.Decode(&assignment); err != nil {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe la asignación indicada"),
			StatusCode: http.StatusNotFound,
		}
	}

	if status.Status == models.ASSIGNMENT_CONFIRMED {
		if assignment.Status != models.ASSIGNMENT_ASSIGNED {
			return &res.ErrorRes{
				Err:        fmt.Errorf("la asignación no está pendiente de confirmación"),
				StatusCode: http.StatusBadRequest,
			}
		}
		if assignment.Invigilator.Hex() != claims.ID {
			return &res.ErrorRes{
				Err:        fmt.Errorf("solo el invigilador asignado puede confirmar"),
				StatusCode: http.StatusUnauthorized,
			}
		}
	}
	if status.Status == models.ASSIGNMENT_COMPLETED {
		if assignment.Status != models.ASSIGNMENT_CONFIRMED {
			return &res.ErrorRes{
				Err:        fmt.Errorf("la asignación no está confirmada"),
				StatusCode: http.StatusBadRequest,
			}
		}
		if claims.UserType != models.ADMIN {
			return &res.ErrorRes{
				Err:        fmt.Errorf("solo un administrador puede completar la asignación"),
				StatusCode: http.StatusUnauthorized,
			}
		}
	}

	update := bson.M{
		"status":     status.Status,
		"updated_at": primitive.NewDateTimeFromTime(time.Now()),
	}
	if status.Remarks != "" {
		update["remarks"] = status.Remarks
	}
	_, err = assignmentModel.Use().UpdateByID(db.Ctx, idObjAssignment, bson.D{{
		Key:   "$set",
		Value: update,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func NewAssignmentService() *AssignmentService {
	if assignmentService == nil {
		assignmentService = &AssignmentService{}
	}
	return assignmentService
}
