package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var careerService *CareerService

type CareerService struct{}

// SubmitStep files an approval request for a roadmap step. Only one open
// request per step, and approved steps stay approved
func (c *CareerService) SubmitStep(
	step *forms.CareerStepForm,
	claims *Claims,
) (*models.CareerApproval, *res.ErrorRes) {
	idObjStudent, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var existing *models.CareerApproval
	cursor := careerApprovalModel.GetOne(bson.D{
		{Key: "student", Value: idObjStudent},
		{Key: "step", Value: step.Step},
		{Key: "status", Value: bson.M{"$in": bson.A{
			models.REQUEST_PENDING,
			models.REQUEST_APPROVED,
		}}},
	})
	if err := cursor.Decode(&existing); err == nil {
		message := "ya tienes una solicitud pendiente para este paso"
		if existing.Status == models.REQUEST_APPROVED {
			message = "este paso ya fue aprobado"
		}
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("%s", message),
			StatusCode: http.StatusBadRequest,
		}
	}

	model := &models.CareerApproval{
		Student:        idObjStudent,
		Step:           step.Step,
		StepTitle:      step.StepTitle,
		Status:         models.REQUEST_PENDING,
		RequestMessage: step.RequestMessage,
		Date:           primitive.NewDateTimeFromTime(time.Now()),
	}
	inserted, err := careerApprovalModel.NewDocument(model)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)

	for _, role := range []string{models.ADMIN, models.STAFF} {
		NewNotificationService().NotifyRole(
			role,
			"Nueva solicitud de avance",
			fmt.Sprintf("Solicitud de aprobación para el paso %s", model.StepTitle),
			res.ACADEMIC,
		)
	}
	return model, nil
}

// AttachProof stores the S3 key of an uploaded evidence file on a pending
// request
func (c *CareerService) AttachProof(
	idApproval string,
	file []byte,
	fileName, contentType string,
	claims *Claims,
) (*models.CareerApproval, *res.ErrorRes) {
	idObjApproval, err := primitive.ObjectIDFromHex(idApproval)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var approval *models.CareerApproval
	if err := careerApprovalModel.GetByID(idObjApproval).Decode(&approval); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la solicitud indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	if approval.Student.Hex() != claims.ID {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("la solicitud no te pertenece"),
			StatusCode: http.StatusUnauthorized,
		}
	}
	if approval.Status != models.REQUEST_PENDING {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("la solicitud ya fue procesada"),
			StatusCode: http.StatusBadRequest,
		}
	}

	key := fmt.Sprintf("career_proofs/%s/%s", idApproval, fileName)
	if _, err := aws.UploadFile(key, file, contentType); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = careerApprovalModel.Use().UpdateByID(db.Ctx, idObjApproval, bson.D{{
		Key: "$set",
		Value: bson.M{
			"proof_key":       key,
			"proof_file_name": fileName,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	approval.ProofKey = key
	approval.ProofFileName = fileName
	return approval, nil
}

// GetMyRequests lists the student's own step requests
func (c *CareerService) GetMyRequests(claims *Claims) ([]models.CareerApproval, *res.ErrorRes) {
	idObjStudent, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	return c.getRequests(bson.D{{Key: "student", Value: idObjStudent}})
}

// GetPendingRequests lists open requests for review
func (c *CareerService) GetPendingRequests() ([]models.CareerApproval, *res.ErrorRes) {
	return c.getRequests(bson.D{{Key: "status", Value: models.REQUEST_PENDING}})
}

func (c *CareerService) getRequests(filter bson.D) ([]models.CareerApproval, *res.ErrorRes) {
	cursor, err := careerApprovalModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "date",
		Value: -1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var approvals []models.CareerApproval
	if err := cursor.All(db.Ctx, &approvals); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return approvals, nil
}

// Decide records the reviewer decision and pushes it to the student
func (c *CareerService) Decide(
	idApproval string,
	decision *forms.CareerDecisionForm,
	claims *Claims,
) (*models.CareerApproval, *res.ErrorRes) {
	idObjApproval, err := primitive.ObjectIDFromHex(idApproval)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjReviewer, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var approval *models.CareerApproval
	if err := careerApprovalModel.GetByID(idObjApproval).Decode(&approval); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la solicitud indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	if approval.Status != models.REQUEST_PENDING {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("la solicitud ya fue procesada"),
			StatusCode: http.StatusBadRequest,
		}
	}

	_, err = careerApprovalModel.Use().UpdateByID(db.Ctx, idObjApproval, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":        decision.Status,
			"admin_comment": decision.Comment,
			"reviewed_by":   idObjReviewer,
			"reviewed_at":   primitive.NewDateTimeFromTime(time.Now()),
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := careerApprovalModel.GetByID(idObjApproval).Decode(&approval); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.CAREER_APPROVAL_UPDATED,
		Room:  fmt.Sprintf("user:%s", approval.Student.Hex()),
		Data:  approval,
	})
	statusMessage := "fue aprobado"
	if decision.Status == models.REQUEST_REJECTED {
		statusMessage = "fue rechazado"
	}
	NewNotificationService().NotifyUser(
		approval.Student,
		"Solicitud de avance revisada",
		fmt.Sprintf("Tu paso %s %s", approval.StepTitle, statusMessage),
		res.ACADEMIC,
	)
	return approval, nil
}

func NewCareerService() *CareerService {
	if careerService == nil {
		careerService = &CareerService{}
	}
	return careerService
}
