package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PLACEMENTS_COLLECTION = "placements"
const PLACEMENTS_INDEX = "placements"

// Placement status
const (
	PLACEMENT_UPCOMING  = "Upcoming"
	PLACEMENT_ONGOING   = "Ongoing"
	PLACEMENT_COMPLETED = "Completed"
)

var placementModel *PlacementModel

type Placement struct {
	ID               primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Company          string               `json:"company" bson:"company"`
	Logo             string               `json:"logo,omitempty" bson:"logo,omitempty"`
	Position         string               `json:"position" bson:"position"`
	Package          float64              `json:"package,omitempty" bson:"package,omitempty"` // LPA
	PackageRange     string               `json:"package_range,omitempty" bson:"package_range,omitempty"`
	Location         string               `json:"location,omitempty" bson:"location,omitempty"`
	Type             string               `json:"type" bson:"type"` // Full-time | Internship | Contract
	Department       primitive.ObjectID   `json:"department,omitempty" bson:"department,omitempty"`
	DepartmentName   string               `json:"department_name,omitempty" bson:"department_name,omitempty"`
	SelectedStudents []primitive.ObjectID `json:"selected_students,omitempty" bson:"selected_students,omitempty"`
	TotalSelected    int                  `json:"total_selected" bson:"total_selected"`
	DriveDate        primitive.DateTime   `json:"drive_date,omitempty" bson:"drive_date,omitempty"`
	Status           string               `json:"status" bson:"status"`
	Description      string               `json:"description,omitempty" bson:"description,omitempty"`
	Eligibility      string               `json:"eligibility,omitempty" bson:"eligibility,omitempty"`
	Applicants       []primitive.ObjectID `json:"applicants,omitempty" bson:"applicants,omitempty"`
	TotalApplicants  int                  `json:"total_applicants" bson:"total_applicants"`
	Date             primitive.DateTime   `json:"date" bson:"date"`
}

// ElasticSearch document
type PlacementES struct {
	Company        string  `json:"company"`
	Position       string  `json:"position"`
	Location       string  `json:"location"`
	DepartmentName string  `json:"department_name"`
	Description    string  `json:"description"`
	Package        float64 `json:"package"`
	Status         string  `json:"status"`
}

type PlacementModel struct {
	CollectionName string
}

func (placement *PlacementModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(placement.CollectionName)
}

func (placement *PlacementModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := placement.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (placement *PlacementModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := placement.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (placement *PlacementModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := placement.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (placement *PlacementModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := placement.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (placement *PlacementModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := placement.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ElastichSearch Bulk
func NewBulkPlacement() (esutil.BulkIndexer, error) {
	es, err := db.NewConnectionEs()
	if err != nil {
		return nil, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         PLACEMENTS_INDEX,
		Client:        es,
		NumWorkers:    db.NUM_WORKERS,
		FlushBytes:    int(db.FLUSH_BYTES),
		FlushInterval: db.FLUSH_INTERVAL,
	})
	if err != nil {
		return nil, err
	}
	return bi, nil
}

func NewPlacementModel() Collection {
	if placementModel == nil {
		placementModel = &PlacementModel{
			CollectionName: PLACEMENTS_COLLECTION,
		}
	}
	return placementModel
}
