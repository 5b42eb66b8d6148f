package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CAREER_APPROVALS_COLLECTION = "careerapprovals"

var careerApprovalModel *CareerApprovalModel

// CareerApproval is one step of a student career roadmap waiting for an
// admin decision (pending -> approved/rejected)
type CareerApproval struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Student        primitive.ObjectID `json:"student" bson:"student"`
	Step           int                `json:"step" bson:"step"` // 1..5
	StepTitle      string             `json:"step_title" bson:"step_title"`
	Status         string             `json:"status" bson:"status"`
	RequestMessage string             `json:"request_message,omitempty" bson:"request_message,omitempty"`
	ProofKey       string             `json:"proof_key,omitempty" bson:"proof_key,omitempty"` // S3 key
	ProofFileName  string             `json:"proof_file_name,omitempty" bson:"proof_file_name,omitempty"`
	AdminComment   string             `json:"admin_comment,omitempty" bson:"admin_comment,omitempty"`
	ReviewedBy     primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt     primitive.DateTime `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	Date           primitive.DateTime `json:"date" bson:"date"`
}

type CareerApprovalModel struct {
	CollectionName string
}

func (approval *CareerApprovalModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(approval.CollectionName)
}

func (approval *CareerApprovalModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := approval.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (approval *CareerApprovalModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := approval.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (approval *CareerApprovalModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := approval.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (approval *CareerApprovalModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := approval.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (approval *CareerApprovalModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := approval.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collection := DbConnect.GetCollection(CAREER_APPROVALS_COLLECTION)
	_, err := collection.Indexes().CreateMany(db.Ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "student", Value: 1},
				{Key: "step", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	if err != nil {
		panic(err)
	}
}

func NewCareerApprovalModel() Collection {
	if careerApprovalModel == nil {
		careerApprovalModel = &CareerApprovalModel{
			CollectionName: CAREER_APPROVALS_COLLECTION,
		}
	}
	return careerApprovalModel
}
