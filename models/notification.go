package models

import (
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NOTIFICATIONS_COLLECTION = "notifications"

var notificationModel *NotificationModel

// Notification is either user-scoped (User set) or a role broadcast
// (User nil, RecipientRole set). Role broadcasts track per-user reads in
// ReadBy instead of the Read flag
type Notification struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	User          primitive.ObjectID   `json:"user,omitempty" bson:"user,omitempty"`
	RecipientRole string               `json:"recipient_role,omitempty" bson:"recipient_role,omitempty"`
	Title         string               `json:"title,omitempty" bson:"title,omitempty"`
	Message       string               `json:"message" bson:"message"`
	Type          string               `json:"type" bson:"type"`
	Read          bool                 `json:"read" bson:"read"`
	ReadBy        []primitive.ObjectID `json:"read_by,omitempty" bson:"read_by,omitempty"`
	Date          primitive.DateTime   `json:"date" bson:"date"`
}

type NotificationModel struct {
	CollectionName string
}

func (notification *NotificationModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(notification.CollectionName)
}

func (notification *NotificationModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := notification.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (notification *NotificationModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := notification.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (notification *NotificationModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := notification.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (notification *NotificationModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := notification.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (notification *NotificationModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := notification.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewModelNotification(
	idUser primitive.ObjectID,
	role,
	title,
	message,
	notificationType string,
) *Notification {
	return &Notification{
		User:          idUser,
		RecipientRole: role,
		Title:         title,
		Message:       message,
		Type:          notificationType,
		Date:          primitive.NewDateTimeFromTime(time.Now()),
	}
}

func init() {
	collections, err := DbConnect.GetCollections()
	if err != nil {
		panic(err)
	}
	for _, collection := range collections {
		if collection == NOTIFICATIONS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"message",
			"type",
			"date",
		},
		"properties": bson.M{
			"user":           bson.M{"bsonType": "objectId"},
			"recipient_role": bson.M{"bsonType": "string"},
			"title":          bson.M{"bsonType": "string"},
			"message":        bson.M{"bsonType": "string"},
			"type":           bson.M{"bsonType": "string"},
			"read":           bson.M{"bsonType": "bool"},
			"read_by":        bson.M{"bsonType": "array"},
			"date":           bson.M{"bsonType": "date"},
		},
	}
	var validators = bson.M{
		"$jsonSchema": jsonSchema,
	}
	opts := &options.CreateCollectionOptions{
		Validator: validators,
	}
	err = DbConnect.CreateCollection(NOTIFICATIONS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewNotificationModel() Collection {
	if notificationModel == nil {
		notificationModel = &NotificationModel{
			CollectionName: NOTIFICATIONS_COLLECTION,
		}
	}
	return notificationModel
}
