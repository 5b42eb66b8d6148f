package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const USERS_COLLECTION = "users"

// Roles. The realtime gateway keys rooms on these exact strings (role:<Role>)
const (
	ADMIN            = "Admin"
	STAFF            = "Staff"
	STUDENT          = "Student"
	SEATING_MANAGER  = "SeatingManager"
	CLUB_COORDINATOR = "ClubCoordinator"
)

var userModel *UserModel

type FeeDetails struct {
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	PaidAmount      float64            `json:"paid_amount" bson:"paid_amount"`
	DueAmount       float64            `json:"due_amount" bson:"due_amount"`
	LastPaymentDate primitive.DateTime `json:"last_payment_date,omitempty" bson:"last_payment_date,omitempty"`
	Remarks         string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Role     string             `json:"role" bson:"role"`
	// Student fields
	Department string `json:"department,omitempty" bson:"department,omitempty"`
	Year       int    `json:"year,omitempty" bson:"year,omitempty"`
	RollNumber string `json:"roll_number,omitempty" bson:"roll_number,omitempty"`
	Semester   string `json:"semester,omitempty" bson:"semester,omitempty"`
	Batch      string `json:"batch,omitempty" bson:"batch,omitempty"`
	// Hall ticket eligibility
	Attendance float64     `json:"attendance" bson:"attendance"` // Percentage
	FeesPaid   bool        `json:"fees_paid" bson:"fees_paid"`
	FeeDetails *FeeDetails `json:"fee_details,omitempty" bson:"fee_details,omitempty"`
	// Club coordinator fields
	ClubName string `json:"club_name,omitempty" bson:"club_name,omitempty"`
	// Staff fields
	StaffDepartment  string             `json:"staff_department,omitempty" bson:"staff_department,omitempty"`
	StaffDesignation string             `json:"staff_designation,omitempty" bson:"staff_designation,omitempty"`
	Date             primitive.DateTime `json:"date" bson:"date"`
	V                int32              `json:"__v" bson:"__v"`
}

type SimpleUser struct {
	ID         string `json:"_id,omitempty" example:"63785424db1efbc237faecca"`
	Name       string `json:"name,omitempty" bson:"name" extensions:"x-omitempty"`
	Email      string `json:"email,omitempty" bson:"email" extensions:"x-omitempty"`
	Role       string `json:"role,omitempty" bson:"role" extensions:"x-omitempty"`
	RollNumber string `json:"roll_number,omitempty" bson:"roll_number" extensions:"x-omitempty"`
}

type UserModel struct {
	CollectionName string
}

func (user *UserModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(user.CollectionName)
}

func (user *UserModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := user.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (user *UserModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := user.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (user *UserModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := user.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (user *UserModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := user.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (user *UserModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := user.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(USERS_COLLECTION)
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

func NewUserModel() Collection {
	if userModel == nil {
		userModel = &UserModel{
			CollectionName: USERS_COLLECTION,
		}
	}
	return userModel
}
