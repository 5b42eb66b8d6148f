package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const REGISTRATION_REQUESTS_COLLECTION = "registrationrequests"

// Request status
const (
	REQUEST_PENDING  = "pending"
	REQUEST_APPROVED = "approved"
	REQUEST_REJECTED = "rejected"
)

var registrationRequestModel *RegistrationRequestModel

type RegistrationRequest struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	Password         string             `json:"-" bson:"password"`
	Role             string             `json:"role" bson:"role"`
	ClubName         string             `json:"club_name,omitempty" bson:"club_name,omitempty"`
	StaffDepartment  string             `json:"staff_department,omitempty" bson:"staff_department,omitempty"`
	StaffDesignation string             `json:"staff_designation,omitempty" bson:"staff_designation,omitempty"`
	Status           string             `json:"status" bson:"status"`
	ReviewedBy       primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt       primitive.DateTime `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	AdminComment     string             `json:"admin_comment,omitempty" bson:"admin_comment,omitempty"`
	Date             primitive.DateTime `json:"date" bson:"date"`
}

type RegistrationRequestModel struct {
	CollectionName string
}

func (request *RegistrationRequestModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(request.CollectionName)
}

func (request *RegistrationRequestModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := request.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (request *RegistrationRequestModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := request.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (request *RegistrationRequestModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := request.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (request *RegistrationRequestModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := request.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (request *RegistrationRequestModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := request.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(REGISTRATION_REQUESTS_COLLECTION)
	_, err := collection.Indexes().CreateOne(db.Ctx, mongo.IndexModel{
		Keys: bson.D{{
			Key:   "email",
			Value: 1,
		}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		panic(err)
	}
}

func NewRegistrationRequestModel() Collection {
	if registrationRequestModel == nil {
		registrationRequestModel = &RegistrationRequestModel{
			CollectionName: REGISTRATION_REQUESTS_COLLECTION,
		}
	}
	return registrationRequestModel
}
