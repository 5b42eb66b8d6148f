package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const HALL_TICKETS_COLLECTION = "halltickets"

var hallTicketModel *HallTicketModel

type HallTicketSubject struct {
	Code    string             `json:"code" bson:"code"`
	Name    string             `json:"name" bson:"name"`
	Date    primitive.DateTime `json:"date" bson:"date"`
	Session string             `json:"session" bson:"session"`
}

type HallTicket struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Student primitive.ObjectID `json:"student" bson:"student"`
	Exam    primitive.ObjectID `json:"exam" bson:"exam"`
	// Student details cached for the PDF
	RollNumber  string              `json:"roll_number" bson:"roll_number"`
	StudentName string              `json:"student_name" bson:"student_name"`
	Department  string              `json:"department" bson:"department"`
	Year        int                 `json:"year,omitempty" bson:"year,omitempty"`
	Semester    string              `json:"semester,omitempty" bson:"semester,omitempty"`
	ExamType    string              `json:"exam_type,omitempty" bson:"exam_type,omitempty"`
	Subjects    []HallTicketSubject `json:"subjects,omitempty" bson:"subjects,omitempty"`
	// Attendance verification
	VerificationCode string `json:"verification_code" bson:"verification_code"`
	// Authorization
	Authorized   bool               `json:"authorized" bson:"authorized"`
	AuthorizedBy primitive.ObjectID `json:"authorized_by,omitempty" bson:"authorized_by,omitempty"`
	AuthorizedAt primitive.DateTime `json:"authorized_at,omitempty" bson:"authorized_at,omitempty"`
	// Generated PDF
	PDFKey         string             `json:"pdf_key,omitempty" bson:"pdf_key,omitempty"` // S3 key
	PDFGeneratedAt primitive.DateTime `json:"pdf_generated_at,omitempty" bson:"pdf_generated_at,omitempty"`
	// Seating
	RoomNumber string             `json:"room_number,omitempty" bson:"room_number,omitempty"`
	SeatNumber string             `json:"seat_number,omitempty" bson:"seat_number,omitempty"`
	Building   string             `json:"building,omitempty" bson:"building,omitempty"`
	Date       primitive.DateTime `json:"date" bson:"date"`
}

type HallTicketModel struct {
	CollectionName string
}

func (ticket *HallTicketModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(ticket.CollectionName)
}

func (ticket *HallTicketModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := ticket.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (ticket *HallTicketModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := ticket.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (ticket *HallTicketModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := ticket.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (ticket *HallTicketModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := ticket.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (ticket *HallTicketModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := ticket.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(HALL_TICKETS_COLLECTION)
	_, err := collection.Indexes().CreateMany(db.Ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "student", Value: 1},
				{Key: "exam", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "exam", Value: 1},
				{Key: "authorized", Value: 1},
			},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewHallTicketModel() Collection {
	if hallTicketModel == nil {
		hallTicketModel = &HallTicketModel{
			CollectionName: HALL_TICKETS_COLLECTION,
		}
	}
	return hallTicketModel
}
