package models

import (
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ASSIGNMENTS_COLLECTION = "invigilatorassignments"

// Half-day exam sessions
const (
	SESSION_FORENOON  = "FN"
	SESSION_AFTERNOON = "AN"
)

// Assignment lifecycle
const (
	ASSIGNMENT_ASSIGNED  = "Assigned"
	ASSIGNMENT_CONFIRMED = "Confirmed"
	ASSIGNMENT_COMPLETED = "Completed"
)

var assignmentModel *AssignmentModel

type Assignment struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Exam        primitive.ObjectID `json:"exam" bson:"exam"`
	Room        primitive.ObjectID `json:"room" bson:"room"`
	Invigilator primitive.ObjectID `json:"invigilator" bson:"invigilator"`
	Date        primitive.DateTime `json:"date" bson:"date"`
	Session     string             `json:"session" bson:"session"`
	Status      string             `json:"status" bson:"status"`
	AssignedBy  primitive.ObjectID `json:"assigned_by,omitempty" bson:"assigned_by,omitempty"`
	Remarks     string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Created     primitive.DateTime `json:"created_at" bson:"created_at"`
	Updated     primitive.DateTime `json:"updated_at" bson:"updated_at"`
}

type AssignmentWLookup struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Exam        Exam               `json:"exam" bson:"exam"`
	Room        Room               `json:"room" bson:"room"`
	Invigilator SimpleUser         `json:"invigilator" bson:"invigilator"`
	Date        primitive.DateTime `json:"date" bson:"date"`
	Session     string             `json:"session" bson:"session"`
	Status      string             `json:"status" bson:"status"`
	Remarks     string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
}

type AssignmentModel struct {
	CollectionName string
}

func (assignment *AssignmentModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(assignment.CollectionName)
}

func (assignment *AssignmentModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := assignment.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (assignment *AssignmentModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := assignment.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (assignment *AssignmentModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := assignment.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (assignment *AssignmentModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := assignment.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (assignment *AssignmentModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := assignment.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewModelAssignment(
	idExam,
	idRoom,
	idInvigilator,
	idAssignedBy primitive.ObjectID,
	date time.Time,
	session,
	remarks string,
) *Assignment {
	now := primitive.NewDateTimeFromTime(time.Now())
	return &Assignment{
		Exam:        idExam,
		Room:        idRoom,
		Invigilator: idInvigilator,
		Date:        primitive.NewDateTimeFromTime(date),
		Session:     session,
		Status:      ASSIGNMENT_ASSIGNED,
		AssignedBy:  idAssignedBy,
		Remarks:     remarks,
		Created:     now,
		Updated:     now,
	}
}

func init() {
	// (exam, room, date, session) unique: one room cannot be double-booked
	// for the same exam, date and session
	collection := DbConnect.GetCollection(ASSIGNMENTS_COLLECTION)
	_, err := collection.Indexes().CreateMany(db.Ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "exam", Value: 1},
				{Key: "room", Value: 1},
				{Key: "date", Value: 1},
				{Key: "session", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "invigilator", Value: 1},
				{Key: "date", Value: 1},
				{Key: "session", Value: 1},
			},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewAssignmentModel() Collection {
	if assignmentModel == nil {
		assignmentModel = &AssignmentModel{
			CollectionName: ASSIGNMENTS_COLLECTION,
		}
	}
	return assignmentModel
}
