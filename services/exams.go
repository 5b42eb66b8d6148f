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

var examService *ExamService

type ExamService struct{}

func (e *ExamService) GetExam(idExam string) (*models.Exam, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(idExam)
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
	return exam, nil
}

// GetExams lists exams, optionally filtered by department, year and type
func (e *ExamService) GetExams(department, examType string, year int) ([]models.Exam, *res.ErrorRes) {
	filter := bson.D{}
	if department != "" {
		filter = append(filter, bson.E{Key: "department", Value: department})
	}
	if examType != "" {
		filter = append(filter, bson.E{Key: "exam_type", Value: examType})
	}
	if year != 0 {
		filter = append(filter, bson.E{Key: "year", Value: year})
	}
	cursor, err := examModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "date",
		Value: 1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var exams []models.Exam
	if err := cursor.All(db.Ctx, &exams); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return exams, nil
}

// GetStudentExams lists the exams of the student's own department
func (e *ExamService) GetStudentExams(claims *Claims) ([]models.Exam, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var student *models.User
	if err := userModel.GetByID(idObjUser).Decode(&student); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el usuario"),
			StatusCode: http.StatusNotFound,
		}
	}
	return e.GetExams(student.Department, "", 0)
}

func (e *ExamService) NewExam(exam *forms.ExamForm, claims *Claims) (*models.Exam, *res.ErrorRes) {
	date, err := time.Parse("2006-01-02", exam.Date)
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
	model := models.NewModelExam(exam, date, idObjUser)
	inserted, err := examModel.NewDocument(model)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)
	return model, nil
}

// GenerateSchedule runs the constraint scheduler over the subjects of a
// year without persisting anything. The caller reviews the result and
// releases it afterwards
func (e *ExamService) GenerateSchedule(schedule *forms.ScheduleForm) (*ScheduleResult, *res.ErrorRes) {
	start, err := time.Parse("2006-01-02", schedule.StartDate)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	end, err := time.Parse("2006-01-02", schedule.EndDate)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var holidays []time.Time
	for _, holiday := range schedule.Holidays {
		day, err := time.Parse("2006-01-02", holiday)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("feriado inválido: %s", holiday),
				StatusCode: http.StatusBadRequest,
			}
		}
		holidays = append(holidays, day)
	}

	filter := bson.D{{Key: "year", Value: schedule.Year}}
	if len(schedule.Departments) > 0 {
		filter = append(filter, bson.E{
			Key:   "department",
			Value: bson.M{"$in": schedule.Departments},
		})
	}
	cursor, err := subjectModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "subject_type",
		Value: -1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var subjects []models.Subject
	if err := cursor.All(db.Ctx, &subjects); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	result := ScheduleExams(subjects, schedule.ExamType, start, end, holidays)
	return &result, nil
}

// ReleaseSchedule generates the timetable and persists one exam per entry,
// then announces the release to students. Schedules carrying ERROR
// violations are rejected
func (e *ExamService) ReleaseSchedule(
	schedule *forms.ScheduleForm,
	claims *Claims,
) (*ScheduleResult, *res.ErrorRes) {
	result, errRes := e.GenerateSchedule(schedule)
	if errRes != nil {
		return nil, errRes
	}
	if !result.Success {
		return result, &res.ErrorRes{
			Err:        fmt.Errorf("el horario generado contiene errores, amplíe el rango de fechas"),
			StatusCode: http.StatusConflict,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	var exams []interface{}
	for _, entry := range result.Timetable {
		start, end, duration := ExamWindow(schedule.ExamType, entry.Session)
		exams = append(exams, models.Exam{
			CourseName: entry.SubjectName,
			CourseCode: entry.SubjectCode,
			Date:       entry.Date,
			StartTime:  start,
			EndTime:    end,
			Duration:   duration,
			ExamType:   schedule.ExamType,
			Session:    entry.Session,
			Department: entry.Department,
			Year:       schedule.Year,
			Violations: result.Violations,
			CreatedBy:  idObjUser,
			Created:    now,
		})
	}
	if _, err := examModel.Use().InsertMany(db.Ctx, exams); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.EXAM_SCHEDULE_RELEASED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data: map[string]interface{}{
			"exam_type": schedule.ExamType,
			"year":      schedule.Year,
		},
	})
	NewNotificationService().NotifyRole(
		models.STUDENT,
		"Horario de exámenes publicado",
		fmt.Sprintf(
			"El horario de exámenes %s para el año %d ya está disponible",
			schedule.ExamType,
			schedule.Year,
		),
		res.EXAM,
	)
	return result, nil
}

func NewExamService() *ExamService {
	if examService == nil {
		examService = &ExamService{}
	}
	return examService
}
