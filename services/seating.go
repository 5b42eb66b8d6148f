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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var seatingService *SeatingService

type SeatingService struct{}

// isRoomAvailable reports whether a room is free of published seating for
// any other exam on the same date and session
func (s *SeatingService) isRoomAvailable(
	roomNumber string,
	date time.Time,
	session string,
	idExcludeExam primitive.ObjectID,
) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	filter := bson.D{
		{Key: "date", Value: bson.M{
			"$gte": primitive.NewDateTimeFromTime(dayStart),
			"$lt":  primitive.NewDateTimeFromTime(dayStart.AddDate(0, 0, 1)),
		}},
		{Key: "session", Value: session},
		{Key: "seating_published", Value: true},
		{Key: "_id", Value: bson.M{"$ne": idExcludeExam}},
	}
	cursor, err := examModel.GetAll(filter, options.Find())
	if err != nil {
		return false, err
	}
	var conflicting []models.Exam
	if err := cursor.All(db.Ctx, &conflicting); err != nil {
		return false, err
	}

	for _, exam := range conflicting {
		var seating *models.Seating
		cursor := seatingModel.GetOne(bson.D{
			{Key: "exam", Value: exam.ID},
			{Key: "room_number", Value: roomNumber},
		})
		if err := cursor.Decode(&seating); err == nil {
			return false, nil
		}
	}
	return true, nil
}

// AvailableRooms lists every available room not booked for another exam on
// the given date and session
func (s *SeatingService) AvailableRooms(
	date time.Time,
	session string,
	idExcludeExam primitive.ObjectID,
) ([]models.Room, *res.ErrorRes) {
	cursor, err := roomModel.GetAll(bson.D{{
		Key:   "is_available",
		Value: true,
	}}, options.Find().SetSort(bson.D{{
		Key:   "room_number",
		Value: 1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var rooms []models.Room
	if err := cursor.All(db.Ctx, &rooms); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	var available []models.Room
	for _, room := range rooms {
		free, err := s.isRoomAvailable(room.RoomNumber, date, session, idExcludeExam)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		if free {
			available = append(available, room)
		}
	}
	return available, nil
}

// Allocate runs the allocator for an exam and publishes the result. Prior
// seating for the exam is replaced wholesale
func (s *SeatingService) Allocate(
	allocate *forms.AllocateSeatingForm,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(allocate.Exam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var exam *models.Exam
	if err := examModel.GetByID(idObjExam).Decode(&exam); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el examen indicado"),
			StatusCode: http.StatusNotFound,
		}
	}

	examType := allocate.ExamType
	if examType == "" {
		examType = exam.ExamType
	}
	session := allocate.Session
	if session == "" {
		session = exam.Session
	}
	date := exam.Date.Time()
	if allocate.Date != "" {
		date, err = time.Parse("2006-01-02", allocate.Date)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
	}

	// Students sitting this exam
	studentFilter := bson.D{{
		Key:   "role",
		Value: models.STUDENT,
	}}
	department := allocate.Department
	if department == "" {
		department = exam.Department
	}
	if department != "" {
		studentFilter = append(studentFilter, bson.E{Key: "department", Value: department})
	}
	if allocate.Year != 0 {
		studentFilter = append(studentFilter, bson.E{Key: "year", Value: allocate.Year})
	}
	cursor, err := userModel.GetAll(studentFilter, options.Find())
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var students []models.User
	if err := cursor.All(db.Ctx, &students); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if len(students) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no hay estudiantes para este examen"),
			StatusCode: http.StatusBadRequest,
		}
	}

	// Rooms: explicit list or every free room
	var rooms []models.Room
	if len(allocate.Rooms) > 0 {
		roomNumbers, _ := funct.Map(allocate.Rooms, func(room forms.AllocateRoomForm) (string, error) {
			return room.RoomNumber, nil
		})
		cursor, err := roomModel.GetAll(bson.D{
			{Key: "room_number", Value: bson.M{"$in": roomNumbers}},
			{Key: "is_available", Value: true},
		}, options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}}))
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		if err := cursor.All(db.Ctx, &rooms); err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		if len(rooms) == 0 {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("ninguna de las salas indicadas existe o está disponible"),
				StatusCode: http.StatusBadRequest,
			}
		}
	} else {
		available, errRes := s.AvailableRooms(date, session, idObjExam)
		if errRes != nil {
			return nil, errRes
		}
		if len(available) == 0 {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("no hay salas disponibles para esta fecha y sesión"),
				StatusCode: http.StatusBadRequest,
			}
		}
		rooms = available
	}
	// No room may be booked by another published seating
	for _, room := range rooms {
		free, err := s.isRoomAvailable(room.RoomNumber, date, session, idObjExam)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		if !free {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("la sala %s ya está reservada para otro examen", room.RoomNumber),
				StatusCode: http.StatusConflict,
			}
		}
	}

	allocStudents, _ := funct.Map(students, func(student models.User) (AllocStudent, error) {
		return AllocStudent{
			ID:         student.ID,
			Department: student.Department,
		}, nil
	})
	allocRooms, _ := funct.Map(rooms, func(room models.Room) (AllocRoom, error) {
		return AllocRoom{
			RoomNumber: room.RoomNumber,
			Capacity:   room.Capacity,
			Floor:      room.Floor,
			Building:   room.Building,
		}, nil
	})

	var allocations []Allocation
	var remainder []AllocStudent
	var summary AllocSummary
	seed := time.Now().UnixNano()
	if examType == models.EXAM_INTERNAL {
		allocations, remainder, summary = AllocateInternalExam(allocStudents, allocRooms, seed)
	} else {
		allocations, remainder, summary = AllocateSemesterExam(allocStudents, allocRooms, seed)
	}

	// Replace prior seating for the exam
	_, err = seatingModel.Use().DeleteMany(db.Ctx, bson.D{{
		Key:   "exam",
		Value: idObjExam,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	records, _ := funct.Map(allocations, func(allocation Allocation) (interface{}, error) {
		return models.Seating{
			Exam:       idObjExam,
			Student:    allocation.Student,
			RoomNumber: allocation.RoomNumber,
			SeatNumber: allocation.SeatNumber,
			Floor:      allocation.Floor,
			Building:   allocation.Building,
			Department: allocation.Department,
			Date:       now,
		}, nil
	})
	if _, err := seatingModel.Use().InsertMany(db.Ctx, records); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = examModel.Use().UpdateByID(db.Ctx, idObjExam, bson.D{{
		Key:   "$set",
		Value: bson.M{"seating_published": true},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.SEATING_ALLOCATED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data: map[string]interface{}{
			"exam": allocate.Exam,
		},
	})
	NewNotificationService().NotifyRole(
		models.STUDENT,
		"Asignación de asientos publicada",
		fmt.Sprintf("La asignación de asientos para %s ya está disponible", exam.CourseName),
		res.SEATING,
	)

	return map[string]interface{}{
		"message": fmt.Sprintf(
			"%d estudiantes asignados en %d salas",
			summary.TotalAllocated,
			summary.RoomsUsed,
		),
		"summary":     summary,
		"unallocated": len(remainder),
	}, nil
}

// GetSeating returns the seating chart of an exam with student lookups
func (s *SeatingService) GetSeating(idExam string) ([]models.SeatingWLookup, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(idExam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"exam": idObjExam}}},
		bson.D{{Key: "$sort", Value: bson.M{"room_number": 1, "seat_number": 1}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.USERS_COLLECTION,
			"localField":   "student",
			"foreignField": "_id",
			"as":           "student",
			"pipeline": bson.A{bson.M{
				"$project": bson.M{
					"name":        1,
					"roll_number": 1,
				},
			}},
		}}},
		bson.D{{Key: "$unwind", Value: "$student"}},
	}
	cursor, err := seatingModel.Aggreagate(pipeline)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var seatings []models.SeatingWLookup
	if err := cursor.All(db.Ctx, &seatings); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return seatings, nil
}

// GetRooms lists every registered room sorted by number
func (s *SeatingService) GetRooms() ([]models.Room, *res.ErrorRes) {
	cursor, err := roomModel.GetAll(bson.D{}, options.Find().SetSort(bson.D{{
		Key:   "room_number",
		Value: 1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var rooms []models.Room
	if err := cursor.All(db.Ctx, &rooms); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return rooms, nil
}

func (s *SeatingService) NewRoom(room *forms.RoomForm) (*models.Room, *res.ErrorRes) {
	layout := room.LayoutPattern
	if layout == "" {
		layout = "sequential"
	}
	available := true
	if room.IsAvailable != nil {
		available = *room.IsAvailable
	}
	model := &models.Room{
		RoomNumber:    room.RoomNumber,
		Building:      room.Building,
		Floor:         room.Floor,
		Capacity:      room.Capacity,
		LayoutPattern: layout,
		IsAvailable:   available,
	}
	inserted, err := roomModel.NewDocument(model)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("ya existe la sala %s", room.RoomNumber),
				StatusCode: http.StatusBadRequest,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)
	return model, nil
}

func (s *SeatingService) UpdateRoom(idRoom string, room *forms.RoomForm) (*models.Room, *res.ErrorRes) {
	idObjRoom, err := primitive.ObjectIDFromHex(idRoom)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	set := bson.M{
		"room_number": room.RoomNumber,
		"building":    room.Building,
		"floor":       room.Floor,
		"capacity":    room.Capacity,
	}
	if room.LayoutPattern != "" {
		set["layout_pattern"] = room.LayoutPattern
	}
	if room.IsAvailable != nil {
		set["is_available"] = *room.IsAvailable
	}
	result, err := roomModel.Use().UpdateByID(db.Ctx, idObjRoom, bson.D{{
		Key:   "$set",
		Value: set,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.MatchedCount == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la sala indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	var updated *models.Room
	if err := roomModel.GetByID(idObjRoom).Decode(&updated); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return updated, nil
}

func NewSeatingService() *SeatingService {
	if seatingService == nil {
		seatingService = &SeatingService{}
	}
	return seatingService
}
