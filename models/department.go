package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DEPARTMENTS_COLLECTION = "departments"

var departmentModel *DepartmentModel

type Department struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Code  string             `json:"code" bson:"code"`
	Head  string             `json:"head,omitempty" bson:"head,omitempty"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
}

type DepartmentModel struct {
	CollectionName string
}

func (department *DepartmentModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(department.CollectionName)
}

func (department *DepartmentModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := department.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (department *DepartmentModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := department.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (department *DepartmentModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := department.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (department *DepartmentModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := department.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (department *DepartmentModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := department.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewDepartmentModel() Collection {
	if departmentModel == nil {
		departmentModel = &DepartmentModel{
			CollectionName: DEPARTMENTS_COLLECTION,
		}
	}
	return departmentModel
}
