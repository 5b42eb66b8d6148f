package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/funct"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var timetableService *TimetableService

type TimetableService struct{}

func timetableSlots(slots []forms.TimetableSlotForm) ([]models.TimetableSlot, error) {
	return funct.Map(slots, func(slot forms.TimetableSlotForm) (models.TimetableSlot, error) {
		model := models.TimetableSlot{
			Day:         slot.Day,
			Period:      slot.Period,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			SubjectName: slot.SubjectName,
			SubjectCode: slot.SubjectCode,
			Faculty:     slot.Faculty,
			Room:        slot.Room,
			Type:        slot.Type,
		}
		if model.Type == "" {
			model.Type = "Lecture"
		}
		if slot.Subject != "" {
			idObjSubject, err := primitive.ObjectIDFromHex(slot.Subject)
			if err != nil {
				return models.TimetableSlot{}, err
			}
			model.Subject = idObjSubject
		}
		return model, nil
	})
}

// NewTimetable creates the active class timetable of a section. The prior
// active timetable is retired
func (t *TimetableService) NewTimetable(
	timetable *forms.TimetableForm,
	claims *Claims,
) (*models.Timetable, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	slots, err := timetableSlots(timetable.Slots)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	section := timetable.Section
	if section == "" {
		section = "A"
	}
	// Retire any active timetable of the same section
	_, err = timetableModel.Use().UpdateMany(
		db.Ctx,
		bson.D{
			{Key: "department", Value: timetable.Department},
			{Key: "year", Value: timetable.Year},
			{Key: "section", Value: section},
			{Key: "is_active", Value: true},
		},
		bson.D{{Key: "$set", Value: bson.M{"is_active": false}}},
	)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	model := &models.Timetable{
		Department:    timetable.Department,
		Year:          timetable.Year,
		Semester:      timetable.Semester,
		Section:       section,
		EffectiveFrom: primitive.NewDateTimeFromTime(time.Now()),
		IsActive:      true,
		CreatedBy:     idObjUser,
		Slots:         slots,
		Date:          primitive.NewDateTimeFromTime(time.Now()),
	}
	inserted, err := timetableModel.NewDocument(model)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)
	return model, nil
}

func (t *TimetableService) UpdateTimetable(
	idTimetable string,
	timetable *forms.TimetableForm,
) (*models.Timetable, *res.ErrorRes) {
	idObjTimetable, err := primitive.ObjectIDFromHex(idTimetable)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	slots, err := timetableSlots(timetable.Slots)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	update := bson.M{
		"department": timetable.Department,
		"year":       timetable.Year,
		"slots":      slots,
	}
	if timetable.Semester != 0 {
		update["semester"] = timetable.Semester
	}
	if timetable.Section != "" {
		update["section"] = timetable.Section
	}
	result, err := timetableModel.Use().UpdateByID(db.Ctx, idObjTimetable, bson.D{{
		Key:   "$set",
		Value: update,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.MatchedCount == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el horario indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	var updated *models.Timetable
	if err := timetableModel.GetByID(idObjTimetable).Decode(&updated); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return updated, nil
}

func (t *TimetableService) DeleteTimetable(idTimetable string) *res.ErrorRes {
	idObjTimetable, err := primitive.ObjectIDFromHex(idTimetable)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	result, err := timetableModel.Use().DeleteOne(db.Ctx, bson.D{{
		Key:   "_id",
		Value: idObjTimetable,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.DeletedCount == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe el horario indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

func (t *TimetableService) GetTimetables(department, section string, year int) ([]models.Timetable, *res.ErrorRes) {
	filter := bson.D{}
	if department != "" {
		filter = append(filter, bson.E{Key: "department", Value: department})
	}
	if section != "" {
		filter = append(filter, bson.E{Key: "section", Value: section})
	}
	if year != 0 {
		filter = append(filter, bson.E{Key: "year", Value: year})
	}
	cursor, err := timetableModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "date",
		Value: -1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var timetables []models.Timetable
	if err := cursor.All(db.Ctx, &timetables); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return timetables, nil
}

// GetActiveTimetable returns the latest active timetable of a section
func (t *TimetableService) GetActiveTimetable(department, section string, year int) (*models.Timetable, *res.ErrorRes) {
	filter := bson.D{
		{Key: "department", Value: department},
		{Key: "year", Value: year},
		{Key: "is_active", Value: true},
	}
	if section != "" {
		filter = append(filter, bson.E{Key: "section", Value: section})
	}
	cursor := timetableModel.Use().FindOne(
		db.Ctx,
		filter,
		options.FindOne().SetSort(bson.D{{Key: "effective_from", Value: -1}}),
	)
	var timetable *models.Timetable
	if err := cursor.Decode(&timetable); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe un horario activo para la sección"),
			StatusCode: http.StatusNotFound,
		}
	}
	return timetable, nil
}

func NewTimetableService() *TimetableService {
	if timetableService == nil {
		timetableService = &TimetableService{}
	}
	return timetableService
}
