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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var eventService *EventService

type EventService struct{}

// GetEvents lists events. Coordinators see their own proposals, students
// only approved events, admins everything
func (e *EventService) GetEvents(status string, claims *Claims) ([]models.Event, *res.ErrorRes) {
	filter := bson.D{}
	switch claims.UserType {
	case models.CLUB_COORDINATOR:
		idObjCoordinator, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		filter = append(filter, bson.E{Key: "coordinator", Value: idObjCoordinator})
	case models.STUDENT:
		filter = append(filter, bson.E{Key: "status", Value: models.EVENT_APPROVED})
	}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	cursor, err := eventModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "date",
		Value: 1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var events []models.Event
	if err := cursor.All(db.Ctx, &events); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return events, nil
}

// Propose files a club event proposal for admin review
func (e *EventService) Propose(event *forms.EventForm, claims *Claims) (*models.Event, *res.ErrorRes) {
	idObjCoordinator, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var coordinator *models.User
	if err := userModel.GetByID(idObjCoordinator).Decode(&coordinator); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el usuario"),
			StatusCode: http.StatusNotFound,
		}
	}
	date, err := time.Parse("2006-01-02", event.Date)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	model := &models.Event{
		Title:       event.Title,
		Description: event.Description,
		Category:    event.Category,
		Date:        primitive.NewDateTimeFromTime(date),
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		Venue:       event.Venue,
		Coordinator: idObjCoordinator,
		ClubName:    coordinator.ClubName,
		Status:      models.EVENT_PENDING,
		Attachments: event.Attachments,
		Created:     primitive.NewDateTimeFromTime(time.Now()),
	}
	inserted, err := eventModel.NewDocument(model)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)

	NewNotificationService().NotifyRole(
		models.ADMIN,
		"Nueva propuesta de evento",
		fmt.Sprintf("%s propone el evento %s", model.ClubName, model.Title),
		res.EVENT,
	)
	return model, nil
}

// UpdateStatus records the admin decision and pushes it to the coordinator.
// Approved events are announced to students
func (e *EventService) UpdateStatus(
	idEvent string,
	status *forms.EventStatusForm,
	claims *Claims,
) (*models.Event, *res.ErrorRes) {
	idObjEvent, err := primitive.ObjectIDFromHex(idEvent)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var event *models.Event
	if err := eventModel.GetByID(idObjEvent).Decode(&event); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el evento indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	if event.Status == models.EVENT_APPROVED && status.Status == models.EVENT_APPROVED {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("el evento ya fue aprobado"),
			StatusCode: http.StatusBadRequest,
		}
	}

	_, err = eventModel.Use().UpdateByID(db.Ctx, idObjEvent, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":         status.Status,
			"admin_comments": status.Comments,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := eventModel.GetByID(idObjEvent).Decode(&event); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.EVENT_STATUS_UPDATED,
		Room:  fmt.Sprintf("user:%s", event.Coordinator.Hex()),
		Data:  event,
	})
	var statusMessage string
	switch status.Status {
	case models.EVENT_APPROVED:
		statusMessage = "fue aprobado"
	case models.EVENT_REJECTED:
		statusMessage = "fue rechazado"
	default:
		statusMessage = "requiere cambios"
	}
	NewNotificationService().NotifyUser(
		event.Coordinator,
		"Propuesta de evento revisada",
		fmt.Sprintf("Tu evento %s %s", event.Title, statusMessage),
		res.EVENT,
	)
	if status.Status == models.EVENT_APPROVED {
		NewNotificationService().NotifyRole(
			models.STUDENT,
			"Nuevo evento de club",
			fmt.Sprintf("El evento %s de %s fue aprobado", event.Title, event.ClubName),
			res.EVENT,
		)
	}
	return event, nil
}

func NewEventService() *EventService {
	if eventService == nil {
		eventService = &EventService{}
	}
	return eventService
}
