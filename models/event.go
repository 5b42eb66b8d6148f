package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EVENTS_COLLECTION = "events"

// Event proposal status
const (
	EVENT_PENDING           = "Pending"
	EVENT_APPROVED          = "Approved"
	EVENT_REJECTED          = "Rejected"
	EVENT_CHANGES_REQUESTED = "ChangesRequested"
)

var eventModel *EventModel

type Event struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	Category      string             `json:"category" bson:"category"` // Technical, Cultural, Sports
	Date          primitive.DateTime `json:"date" bson:"date"`
	StartTime     string             `json:"start_time" bson:"start_time"`
	EndTime       string             `json:"end_time" bson:"end_time"`
	Venue         string             `json:"venue" bson:"venue"`
	Coordinator   primitive.ObjectID `json:"coordinator" bson:"coordinator"`
	ClubName      string             `json:"club_name" bson:"club_name"`
	Status        string             `json:"status" bson:"status"`
	AdminComments string             `json:"admin_comments,omitempty" bson:"admin_comments,omitempty"`
	Attachments   []string           `json:"attachments,omitempty" bson:"attachments,omitempty"` // S3 keys
	Created       primitive.DateTime `json:"created_at" bson:"created_at"`
}

type EventModel struct {
	CollectionName string
}

func (event *EventModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(event.CollectionName)
}

func (event *EventModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := event.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (event *EventModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := event.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (event *EventModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := event.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (event *EventModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := event.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (event *EventModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := event.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewEventModel() Collection {
	if eventModel == nil {
		eventModel = &EventModel{
			CollectionName: EVENTS_COLLECTION,
		}
	}
	return eventModel
}
