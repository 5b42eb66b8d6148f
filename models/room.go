package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ROOMS_COLLECTION = "rooms"

var roomModel *RoomModel

type Room struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	RoomNumber    string             `json:"room_number" bson:"room_number"`
	Building      string             `json:"building,omitempty" bson:"building,omitempty"`
	Floor         string             `json:"floor,omitempty" bson:"floor,omitempty"`
	Capacity      int                `json:"capacity" bson:"capacity"`
	LayoutPattern string             `json:"layout_pattern" bson:"layout_pattern"`
	IsAvailable   bool               `json:"is_available" bson:"is_available"`
}

type RoomModel struct {
	CollectionName string
}

func (room *RoomModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(room.CollectionName)
}

func (room *RoomModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := room.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (room *RoomModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := room.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (room *RoomModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := room.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (room *RoomModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := room.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (room *RoomModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := room.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(ROOMS_COLLECTION)
	_, err := collection.Indexes().CreateOne(db.Ctx, mongo.IndexModel{
		Keys: bson.D{{
			Key:   "room_number",
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		panic(err)
	}
}

func NewRoomModel() Collection {
	if roomModel == nil {
		roomModel = &RoomModel{
			CollectionName: ROOMS_COLLECTION,
		}
	}
	return roomModel
}
