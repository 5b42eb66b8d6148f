package models

import (
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EXAMS_COLLECTION = "exams"

// Exam types
const (
	EXAM_INTERNAL = "Internal"
	EXAM_SEMESTER = "Semester"
)

// Subject weight for schedule gap constraints
const (
	SUBJECT_HEAVY    = "HEAVY"
	SUBJECT_NONMAJOR = "NONMAJOR"
)

var examModel *ExamModel

type TimetableEntry struct {
	Date        primitive.DateTime `json:"date" bson:"date"`
	Session     string             `json:"session" bson:"session"`
	SubjectCode string             `json:"subject_code" bson:"subject_code"`
	SubjectName string             `json:"subject_name" bson:"subject_name"`
	Department  string             `json:"department" bson:"department"`
}

type ScheduleViolation struct {
	Message  string `json:"message" bson:"message"`
	Severity string `json:"severity" bson:"severity"` // WARNING | ERROR
}

type Exam struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CourseName string             `json:"course_name" bson:"course_name"`
	CourseCode string             `json:"course_code" bson:"course_code"`
	Date       primitive.DateTime `json:"date" bson:"date"`
	StartTime  string             `json:"start_time" bson:"start_time"`
	EndTime    string             `json:"end_time" bson:"end_time"`
	Duration   int                `json:"duration" bson:"duration"` // Minutes
	ExamType   string             `json:"exam_type" bson:"exam_type"`
	Session    string             `json:"session" bson:"session"`
	Department string             `json:"department" bson:"department"`
	Semester   string             `json:"semester" bson:"semester"`
	Year       int                `json:"year,omitempty" bson:"year,omitempty"`
	Batches    []string           `json:"batches,omitempty" bson:"batches,omitempty"`
	// Generated schedule
	Timetable  []TimetableEntry    `json:"timetable,omitempty" bson:"timetable,omitempty"`
	Violations []ScheduleViolation `json:"schedule_violations,omitempty" bson:"schedule_violations,omitempty"`
	// Lifecycle flags
	HallTicketsGenerated  bool               `json:"hall_tickets_generated" bson:"hall_tickets_generated"`
	HallTicketsAuthorized bool               `json:"hall_tickets_authorized" bson:"hall_tickets_authorized"`
	SeatingPublished      bool               `json:"seating_published" bson:"seating_published"`
	CreatedBy             primitive.ObjectID `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Created               primitive.DateTime `json:"created_at" bson:"created_at"`
}

type ExamModel struct {
	CollectionName string
}

func (exam *ExamModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(exam.CollectionName)
}

func (exam *ExamModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := exam.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (exam *ExamModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := exam.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (exam *ExamModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := exam.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (exam *ExamModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := exam.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (exam *ExamModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := exam.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewModelExam(exam *forms.ExamForm, date time.Time, createdBy primitive.ObjectID) *Exam {
	return &Exam{
		CourseName: exam.CourseName,
		CourseCode: exam.CourseCode,
		Date:       primitive.NewDateTimeFromTime(date),
		StartTime:  exam.StartTime,
		EndTime:    exam.EndTime,
		Duration:   exam.Duration,
		ExamType:   exam.ExamType,
		Session:    exam.Session,
		Department: exam.Department,
		Semester:   exam.Semester,
		Year:       exam.Year,
		Batches:    exam.Batches,
		CreatedBy:  createdBy,
		Created:    primitive.NewDateTimeFromTime(time.Now()),
	}
}

func init() {
	collection := DbConnect.GetCollection(EXAMS_COLLECTION)
	_, err := collection.Indexes().CreateMany(db.Ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "department", Value: 1},
				{Key: "date", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "year", Value: 1},
				{Key: "exam_type", Value: 1},
			},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewExamModel() Collection {
	if examModel == nil {
		examModel = &ExamModel{
			CollectionName: EXAMS_COLLECTION,
		}
	}
	return examModel
}
