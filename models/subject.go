package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SUBJECTS_COLLECTION = "subjects"

var subjectModel *SubjectModel

type Subject struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Code        string             `json:"code" bson:"code"`
	Name        string             `json:"name" bson:"name"`
	Department  string             `json:"department" bson:"department"`
	Year        int                `json:"year" bson:"year"`
	Semester    int                `json:"semester,omitempty" bson:"semester,omitempty"`
	SubjectType string             `json:"subject_type" bson:"subject_type"` // HEAVY | NONMAJOR
	Credits     int                `json:"credits,omitempty" bson:"credits,omitempty"`
}

type SubjectModel struct {
	CollectionName string
}

func (subject *SubjectModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(subject.CollectionName)
}

func (subject *SubjectModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := subject.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (subject *SubjectModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := subject.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (subject *SubjectModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := subject.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (subject *SubjectModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := subject.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (subject *SubjectModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := subject.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewSubjectModel() Collection {
	if subjectModel == nil {
		subjectModel = &SubjectModel{
			CollectionName: SUBJECTS_COLLECTION,
		}
	}
	return subjectModel
}
