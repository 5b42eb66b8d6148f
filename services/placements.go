package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var placementService *PlacementService

type PlacementService struct{}

type TopRecruiter struct {
	Name       string `json:"name"`
	Offers     int    `json:"offers"`
	AvgPackage string `json:"avg_package"`
}

type PlacementStats struct {
	TotalDrives      int64          `json:"total_drives"`
	OngoingDrives    int64          `json:"ongoing_drives"`
	UpcomingDrives   int64          `json:"upcoming_drives"`
	CompletedDrives  int64          `json:"completed_drives"`
	TotalPlaced      int            `json:"total_placed"`
	AveragePackage   float64        `json:"average_package"`
	HighestPackage   float64        `json:"highest_package"`
	CompaniesVisited int64          `json:"companies_visited"`
	PlacementRate    int            `json:"placement_rate"`
	TopRecruiters    []TopRecruiter `json:"top_recruiters"`
}

// indexPlacement writes the searchable projection of a placement into
// Elasticsearch through the bulk indexer
func (p *PlacementService) indexPlacement(action string, idPlacement primitive.ObjectID, placement *models.Placement) *res.ErrorRes {
	doc := models.PlacementES{
		Company:        placement.Company,
		Position:       placement.Position,
		Location:       placement.Location,
		DepartmentName: placement.DepartmentName,
		Description:    placement.Description,
		Package:        placement.Package,
		Status:         placement.Status,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	if action == "update" {
		data = []byte(fmt.Sprintf(`{"doc":%s}`, data))
	}
	bi, err := models.NewBulkPlacement()
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	err = bi.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Action:     action,
			DocumentID: idPlacement.Hex(),
			Body:       bytes.NewReader(data),
		},
	)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := bi.Close(context.Background()); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func (p *PlacementService) GetPlacements(status, department, placementType string) ([]models.Placement, *res.ErrorRes) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	if department != "" {
		filter = append(filter, bson.E{Key: "department_name", Value: department})
	}
	if placementType != "" {
		filter = append(filter, bson.E{Key: "type", Value: placementType})
	}
	cursor, err := placementModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "drive_date",
		Value: -1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var placements []models.Placement
	if err := cursor.All(db.Ctx, &placements); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return placements, nil
}

func (p *PlacementService) GetPlacement(idPlacement string) (*models.Placement, *res.ErrorRes) {
	idObjPlacement, err := primitive.ObjectIDFromHex(idPlacement)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var placement *models.Placement
	if err := placementModel.GetByID(idObjPlacement).Decode(&placement); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la convocatoria indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	return placement, nil
}

func (p *PlacementService) NewPlacement(placement *forms.PlacementForm) (*models.Placement, *res.ErrorRes) {
	model := &models.Placement{
		Company:      placement.Company,
		Logo:         placement.Logo,
		Position:     placement.Position,
		Package:      placement.Package,
		PackageRange: placement.PackageRange,
		Location:     placement.Location,
		Type:         placement.Type,
		Status:       placement.Status,
		Description:  placement.Description,
		Eligibility:  placement.Eligibility,
		Date:         primitive.NewDateTimeFromTime(time.Now()),
	}
	if model.Type == "" {
		model.Type = "Full-time"
	}
	if model.Status == "" {
		model.Status = models.PLACEMENT_UPCOMING
	}
	if placement.Department != "" {
		// Accept a department id or its code
		var department *models.Department
		if idObjDepartment, err := primitive.ObjectIDFromHex(placement.Department); err == nil {
			err = departmentModel.GetByID(idObjDepartment).Decode(&department)
			if err != nil {
				return nil, &res.ErrorRes{
					Err:        fmt.Errorf("no existe el departamento indicado"),
					StatusCode: http.StatusBadRequest,
				}
			}
		} else {
			cursor := departmentModel.GetOne(bson.D{{
				Key:   "code",
				Value: placement.Department,
			}})
			if err := cursor.Decode(&department); err != nil {
				model.DepartmentName = placement.Department
			}
		}
		if department != nil {
			model.Department = department.ID
			model.DepartmentName = department.Name
		}
	}
	if placement.DriveDate != "" {
		driveDate, err := time.Parse("2006-01-02", placement.DriveDate)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		model.DriveDate = primitive.NewDateTimeFromTime(driveDate)
	}

	inserted, err := placementModel.NewDocument(model)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)
	if errRes := p.indexPlacement("index", model.ID, model); errRes != nil {
		return nil, errRes
	}

	notify(res.NotifyAcademic{
		Event: res.PLACEMENT_CREATED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data:  model,
	})
	NewNotificationService().NotifyRole(
		models.STUDENT,
		"Nueva convocatoria laboral",
		fmt.Sprintf("%s busca %s", model.Company, model.Position),
		res.GENERAL,
	)
	return model, nil
}

func (p *PlacementService) UpdatePlacement(
	idPlacement string,
	placement *forms.PlacementForm,
) (*models.Placement, *res.ErrorRes) {
	idObjPlacement, err := primitive.ObjectIDFromHex(idPlacement)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	update := bson.M{
		"company":       placement.Company,
		"position":      placement.Position,
		"package":       placement.Package,
		"package_range": placement.PackageRange,
		"location":      placement.Location,
		"description":   placement.Description,
		"eligibility":   placement.Eligibility,
	}
	if placement.Logo != "" {
		update["logo"] = placement.Logo
	}
	if placement.Type != "" {
		update["type"] = placement.Type
	}
	if placement.Status != "" {
		update["status"] = placement.Status
	}
	if placement.DriveDate != "" {
		driveDate, err := time.Parse("2006-01-02", placement.DriveDate)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		update["drive_date"] = primitive.NewDateTimeFromTime(driveDate)
	}
	result, err := placementModel.Use().UpdateByID(db.Ctx, idObjPlacement, bson.D{{
		Key:   "$set",
		Value: update,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.MatchedCount == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la convocatoria indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	var updated *models.Placement
	if err := placementModel.GetByID(idObjPlacement).Decode(&updated); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if errRes := p.indexPlacement("update", idObjPlacement, updated); errRes != nil {
		return nil, errRes
	}

	notify(res.NotifyAcademic{
		Event: res.PLACEMENT_UPDATED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data:  updated,
	})
	return updated, nil
}

func (p *PlacementService) DeletePlacement(idPlacement string) *res.ErrorRes {
	idObjPlacement, err := primitive.ObjectIDFromHex(idPlacement)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	result, err := placementModel.Use().DeleteOne(db.Ctx, bson.D{{
		Key:   "_id",
		Value: idObjPlacement,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.DeletedCount == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe la convocatoria indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	bi, err := models.NewBulkPlacement()
	if err == nil {
		bi.Add(context.Background(), esutil.BulkIndexerItem{
			Action:     "delete",
			DocumentID: idPlacement,
		})
		bi.Close(context.Background())
	}

	notify(res.NotifyAcademic{
		Event: res.PLACEMENT_DELETED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data: map[string]interface{}{
			"_id": idPlacement,
		},
	})
	return nil
}

// Apply registers the student as applicant. Applying twice is rejected
func (p *PlacementService) Apply(idPlacement string, claims *Claims) *res.ErrorRes {
	idObjPlacement, err := primitive.ObjectIDFromHex(idPlacement)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjStudent, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	result, err := placementModel.Use().UpdateOne(
		db.Ctx,
		bson.D{
			{Key: "_id", Value: idObjPlacement},
			{Key: "applicants", Value: bson.M{"$ne": idObjStudent}},
		},
		bson.D{
			{Key: "$push", Value: bson.M{"applicants": idObjStudent}},
			{Key: "$inc", Value: bson.M{"total_applicants": 1}},
		},
	)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if result.MatchedCount == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("ya postulaste a esta convocatoria"),
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}

// SelectStudents records the hired students of a completed drive
func (p *PlacementService) SelectStudents(
	idPlacement string,
	selection *forms.SelectStudentsForm,
) (*models.Placement, *res.ErrorRes) {
	idObjPlacement, err := primitive.ObjectIDFromHex(idPlacement)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var idObjStudents []primitive.ObjectID
	for _, idStudent := range selection.Students {
		idObjStudent, err := primitive.ObjectIDFromHex(idStudent)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		idObjStudents = append(idObjStudents, idObjStudent)
	}
	var placement *models.Placement
	if err := placementModel.GetByID(idObjPlacement).Decode(&placement); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la convocatoria indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	_, err = placementModel.Use().UpdateByID(db.Ctx, idObjPlacement, bson.D{
		{Key: "$addToSet", Value: bson.M{
			"selected_students": bson.M{"$each": idObjStudents},
		}},
	})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var updated *models.Placement
	if err := placementModel.GetByID(idObjPlacement).Decode(&updated); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = placementModel.Use().UpdateByID(db.Ctx, idObjPlacement, bson.D{{
		Key:   "$set",
		Value: bson.M{"total_selected": len(updated.SelectedStudents)},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	updated.TotalSelected = len(updated.SelectedStudents)

	// Selected students get a direct notification
	for _, idObjStudent := range idObjStudents {
		NewNotificationService().NotifyUser(
			idObjStudent,
			"Seleccionado en convocatoria",
			fmt.Sprintf("Fuiste seleccionado por %s para %s", placement.Company, placement.Position),
			res.GENERAL,
		)
	}
	notify(res.NotifyAcademic{
		Event: res.PLACEMENT_UPDATED,
		Room:  fmt.Sprintf("role:%s", models.ADMIN),
		Data:  updated,
	})
	return updated, nil
}

// GetStats aggregates the drive totals and package figures
func (p *PlacementService) GetStats() (*PlacementStats, *res.ErrorRes) {
	collection := placementModel.Use()
	totalDrives, err := collection.CountDocuments(db.Ctx, bson.D{})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	countByStatus := func(status string) (int64, error) {
		return collection.CountDocuments(db.Ctx, bson.D{{
			Key:   "status",
			Value: status,
		}})
	}
	ongoing, err := countByStatus(models.PLACEMENT_ONGOING)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	upcoming, err := countByStatus(models.PLACEMENT_UPCOMING)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	completed, err := countByStatus(models.PLACEMENT_COMPLETED)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	placements, errRes := p.GetPlacements("", "", "")
	if errRes != nil {
		return nil, errRes
	}
	stats := &PlacementStats{
		TotalDrives:      totalDrives,
		OngoingDrives:    ongoing,
		UpcomingDrives:   upcoming,
		CompletedDrives:  completed,
		CompaniesVisited: totalDrives,
	}
	var totalPackage float64
	var packageCount int
	for _, placement := range placements {
		if placement.Package > 0 {
			if placement.Package > stats.HighestPackage {
				stats.HighestPackage = placement.Package
			}
			totalPackage += placement.Package
			packageCount++
		}
		stats.TotalPlaced += placement.TotalSelected
	}
	if packageCount > 0 {
		stats.AveragePackage = totalPackage / float64(packageCount)
	}

	totalStudents, err := userModel.Use().CountDocuments(db.Ctx, bson.D{{
		Key:   "role",
		Value: models.STUDENT,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if totalStudents > 0 {
		rate := stats.TotalPlaced * 100 / int(totalStudents)
		if rate > 100 {
			rate = 100
		}
		stats.PlacementRate = rate
	}

	// Top recruiters by offers
	var recruiters []TopRecruiter
	for _, placement := range placements {
		if placement.Company == "" || placement.TotalSelected == 0 {
			continue
		}
		avgPackage := placement.PackageRange
		if avgPackage == "" && placement.Package > 0 {
			avgPackage = fmt.Sprintf("%.1f LPA", placement.Package)
		}
		if avgPackage == "" {
			avgPackage = "N/A"
		}
		recruiters = append(recruiters, TopRecruiter{
			Name:       placement.Company,
			Offers:     placement.TotalSelected,
			AvgPackage: avgPackage,
		})
	}
	for i := 0; i < len(recruiters); i++ {
		for j := i + 1; j < len(recruiters); j++ {
			if recruiters[j].Offers > recruiters[i].Offers {
				recruiters[i], recruiters[j] = recruiters[j], recruiters[i]
			}
		}
	}
	if len(recruiters) > 6 {
		recruiters = recruiters[:6]
	}
	stats.TopRecruiters = recruiters
	return stats, nil
}

// placementSearchFragment builds the multi_match fragment for a search
// term. The term is JSON-encoded so quotes in user input cannot break the
// query body
func placementSearchFragment(search string) string {
	term, _ := json.Marshal(search)
	return fmt.Sprintf(
		`"multi_match": { "query": %s, "fields": ["company", "position", "location", "department_name", "description"], "fuzziness": "AUTO" }`,
		term,
	)
}

// Search queries the Elasticsearch index over the text fields
func (p *PlacementService) Search(search string) (interface{}, *res.ErrorRes) {
	query := db.ConstructQuery(placementSearchFragment(search))

	es, err := db.NewConnectionEs()
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	response, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(models.PLACEMENTS_INDEX),
		es.Search.WithBody(query),
		es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	defer response.Body.Close()
	var mapRes map[string]interface{}
	if err := json.NewDecoder(response.Body).Decode(&mapRes); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return mapRes["hits"], nil
}

func NewPlacementService() *PlacementService {
	if placementService == nil {
		placementService = &PlacementService{}
	}
	return placementService
}
