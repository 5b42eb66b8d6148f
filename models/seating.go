package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SEATINGS_COLLECTION = "seatings"

var seatingModel *SeatingModel

type Seating struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Exam       primitive.ObjectID `json:"exam" bson:"exam"`
	Student    primitive.ObjectID `json:"student" bson:"student"`
	RoomNumber string             `json:"room_number" bson:"room_number"`
	SeatNumber string             `json:"seat_number" bson:"seat_number"`
	Floor      string             `json:"floor,omitempty" bson:"floor,omitempty"`
	Building   string             `json:"building,omitempty" bson:"building,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	Date       primitive.DateTime `json:"date" bson:"date"`
}

type SeatingWLookup struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Exam       primitive.ObjectID `json:"exam" bson:"exam"`
	Student    SimpleUser         `json:"student" bson:"student"`
	RoomNumber string             `json:"room_number" bson:"room_number"`
	SeatNumber string             `json:"seat_number" bson:"seat_number"`
	Floor      string             `json:"floor,omitempty" bson:"floor,omitempty"`
	Building   string             `json:"building,omitempty" bson:"building,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
}

type SeatingModel struct {
	CollectionName string
}

func (seating *SeatingModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(seating.CollectionName)
}

func (seating *SeatingModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := seating.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (seating *SeatingModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := seating.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (seating *SeatingModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := seating.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (seating *SeatingModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := seating.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (seating *SeatingModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := seating.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewSeatingModel() Collection {
	if seatingModel == nil {
		seatingModel = &SeatingModel{
			CollectionName: SEATINGS_COLLECTION,
		}
	}
	return seatingModel
}
