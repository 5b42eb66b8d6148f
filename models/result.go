package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RESULTS_COLLECTION = "results"

// Result status
const (
	RESULT_PASS       = "Pass"
	RESULT_FAIL       = "Fail"
	RESULT_SELECTED   = "Selected"
	RESULT_REJECTED   = "Rejected"
	RESULT_WAITLISTED = "Waitlisted"
	RESULT_PENDING    = "Pending"
)

var resultModel *ResultModel

type Result struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BatchID     string             `json:"batch_id" bson:"batch_id"`
	StudentID   string             `json:"student_id" bson:"student_id"`
	StudentName string             `json:"student_name" bson:"student_name"`
	Department  string             `json:"department" bson:"department"`
	ExamType    string             `json:"exam_type" bson:"exam_type"` // Exam | Placement | Other
	Title       string             `json:"title" bson:"title"`
	Score       string             `json:"score" bson:"score"`
	Status      string             `json:"status" bson:"status"`
	Remarks     string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Published   bool               `json:"published" bson:"published"`
	PublishedAt primitive.DateTime `json:"published_at,omitempty" bson:"published_at,omitempty"`
	UploadedBy  primitive.ObjectID `json:"uploaded_by,omitempty" bson:"uploaded_by,omitempty"`
	Date        primitive.DateTime `json:"date" bson:"date"`
}

type ResultModel struct {
	CollectionName string
}

func (result *ResultModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(result.CollectionName)
}

func (result *ResultModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := result.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (result *ResultModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := result.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (result *ResultModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := result.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (result *ResultModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := result.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (result *ResultModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	inserted, err := result.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

func init() {
	collection := DbConnect.GetCollection(RESULTS_COLLECTION)
	_, err := collection.Indexes().CreateMany(db.Ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "batch_id", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "student_id", Value: 1},
				{Key: "published", Value: 1},
			},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewResultModel() Collection {
	if resultModel == nil {
		resultModel = &ResultModel{
			CollectionName: RESULTS_COLLECTION,
		}
	}
	return resultModel
}
