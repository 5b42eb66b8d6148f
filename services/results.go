package services

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var resultService *ResultService

type ResultService struct{}

type ResultBatch struct {
	BatchID     string             `json:"batch_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	ExamType    string             `json:"exam_type" bson:"exam_type"`
	Count       int                `json:"count" bson:"count"`
	Published   bool               `json:"published" bson:"published"`
	PublishedAt primitive.DateTime `json:"published_at,omitempty" bson:"published_at,omitempty"`
	Date        primitive.DateTime `json:"date" bson:"date"`
}

// UploadBatch parses an xlsx workbook of results and stores them as an
// unpublished batch. Expected columns: student id, name, department,
// score, status, remarks
func (r *ResultService) UploadBatch(
	file io.Reader,
	batch *forms.ResultBatchForm,
	claims *Claims,
) (*ResultBatch, *res.ErrorRes) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("archivo xlsx inválido"),
			StatusCode: http.StatusBadRequest,
		}
	}
	defer workbook.Close()

	sheetName := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	if len(rows) < 2 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("el archivo no contiene resultados"),
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	examType := batch.ExamType
	if examType == "" {
		examType = "Exam"
	}
	batchID := uuid.NewString()
	now := primitive.NewDateTimeFromTime(time.Now())

	cell := func(row []string, index int) string {
		if index < len(row) {
			return row[index]
		}
		return ""
	}
	var results []interface{}
	// First row is the header
	for _, row := range rows[1:] {
		studentID := cell(row, 0)
		if studentID == "" {
			continue
		}
		status := cell(row, 4)
		if status == "" {
			status = models.RESULT_PENDING
		}
		results = append(results, models.Result{
			BatchID:     batchID,
			StudentID:   studentID,
			StudentName: cell(row, 1),
			Department:  cell(row, 2),
			ExamType:    examType,
			Title:       batch.Title,
			Score:       cell(row, 3),
			Status:      status,
			Remarks:     cell(row, 5),
			UploadedBy:  idObjUser,
			Date:        now,
		})
	}
	if len(results) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("el archivo no contiene filas válidas"),
			StatusCode: http.StatusBadRequest,
		}
	}
	if _, err := resultModel.Use().InsertMany(db.Ctx, results); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return &ResultBatch{
		BatchID:  batchID,
		Title:    batch.Title,
		ExamType: examType,
		Count:    len(results),
		Date:     now,
	}, nil
}

// GetBatches groups the stored results into their upload batches
func (r *ResultService) GetBatches() ([]ResultBatch, *res.ErrorRes) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$batch_id",
			"title":        bson.M{"$first": "$title"},
			"exam_type":    bson.M{"$first": "$exam_type"},
			"count":        bson.M{"$sum": 1},
			"published":    bson.M{"$first": "$published"},
			"published_at": bson.M{"$first": "$published_at"},
			"date":         bson.M{"$first": "$date"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"date": -1}}},
	}
	cursor, err := resultModel.Aggreagate(pipeline)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var batches []ResultBatch
	if err := cursor.All(db.Ctx, &batches); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return batches, nil
}

func (r *ResultService) GetBatchDetails(batchID string) ([]models.Result, *res.ErrorRes) {
	cursor, err := resultModel.GetAll(bson.D{{
		Key:   "batch_id",
		Value: batchID,
	}}, options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var results []models.Result
	if err := cursor.All(db.Ctx, &results); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if len(results) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el lote indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	return results, nil
}

// TogglePublish publishes or retracts a whole batch. Publication is
// announced to students
func (r *ResultService) TogglePublish(batchID string, published bool) *res.ErrorRes {
	update := bson.M{"published": published}
	if published {
		update["published_at"] = primitive.NewDateTimeFromTime(time.Now())
	} else {
		update["published_at"] = nil
	}
	result, err := resultModel.Use().UpdateMany(
		db.Ctx,
		bson.D{{Key: "batch_id", Value: batchID}},
		bson.D{{Key: "$set", Value: update}},
	)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.MatchedCount == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe el lote indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	if published {
		NewNotificationService().NotifyRole(
			models.STUDENT,
			"Resultados publicados",
			"Hay nuevos resultados disponibles",
			res.ACADEMIC,
		)
	}
	return nil
}

func (r *ResultService) DeleteBatch(batchID string) *res.ErrorRes {
	result, err := resultModel.Use().DeleteMany(db.Ctx, bson.D{{
		Key:   "batch_id",
		Value: batchID,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.DeletedCount == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe el lote indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

// GetMyResults lists the published results matching the student's roll
// number
func (r *ResultService) GetMyResults(claims *Claims) ([]models.Result, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var student *models.User
	if err := userModel.GetByID(idObjUser).Decode(&student); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el usuario"),
			StatusCode: http.StatusNotFound,
		}
	}
	cursor, err := resultModel.GetAll(bson.D{
		{Key: "student_id", Value: student.RollNumber},
		{Key: "published", Value: true},
	}, options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var results []models.Result
	if err := cursor.All(db.Ctx, &results); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return results, nil
}

func NewResultService() *ResultService {
	if resultService == nil {
		resultService = &ResultService{}
	}
	return resultService
}
