package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TIMETABLES_COLLECTION = "timetables"

var timetableModel *TimetableModel

type TimetableSlot struct {
	Day         string             `json:"day" bson:"day"`
	Period      int                `json:"period" bson:"period"` // 1..10
	StartTime   string             `json:"start_time" bson:"start_time"`
	EndTime     string             `json:"end_time" bson:"end_time"`
	Subject     primitive.ObjectID `json:"subject,omitempty" bson:"subject,omitempty"`
	SubjectName string             `json:"subject_name" bson:"subject_name"`
	SubjectCode string             `json:"subject_code,omitempty" bson:"subject_code,omitempty"`
	Faculty     string             `json:"faculty,omitempty" bson:"faculty,omitempty"`
	Room        string             `json:"room,omitempty" bson:"room,omitempty"`
	Type        string             `json:"type" bson:"type"` // Lecture, Lab, Tutorial, Break, Free
}

type Timetable struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Department    string             `json:"department" bson:"department"`
	Year          int                `json:"year" bson:"year"`
	Semester      int                `json:"semester,omitempty" bson:"semester,omitempty"`
	Section       string             `json:"section" bson:"section"`
	EffectiveFrom primitive.DateTime `json:"effective_from" bson:"effective_from"`
	IsActive      bool               `json:"is_active" bson:"is_active"`
	CreatedBy     primitive.ObjectID `json:"created_by" bson:"created_by"`
	Slots         []TimetableSlot    `json:"slots" bson:"slots"`
	Date          primitive.DateTime `json:"date" bson:"date"`
}

type TimetableModel struct {
	CollectionName string
}

func (timetable *TimetableModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(timetable.CollectionName)
}

func (timetable *TimetableModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := timetable.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (timetable *TimetableModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := timetable.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (timetable *TimetableModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := timetable.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (timetable *TimetableModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := timetable.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (timetable *TimetableModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := timetable.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(TIMETABLES_COLLECTION)
	_, err := collection.Indexes().CreateOne(db.Ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "department", Value: 1},
			{Key: "year", Value: 1},
			{Key: "section", Value: 1},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewTimetableModel() Collection {
	if timetableModel == nil {
		timetableModel = &TimetableModel{
			CollectionName: TIMETABLES_COLLECTION,
		}
	}
	return timetableModel
}
