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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var registrationService *RegistrationService

type RegistrationService struct{}

type RegistrationStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// Submit files a registration request for the approval roles. The password
// is hashed before it is stored
func (r *RegistrationService) Submit(request *forms.RegistrationRequestForm) (*models.RegistrationRequest, *res.ErrorRes) {
	// Registered users block the email
	var existingUser *models.User
	cursor := userModel.GetOne(bson.D{{Key: "email", Value: request.Email}})
	if err := cursor.Decode(&existingUser); err == nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("ya existe un usuario con este email"),
			StatusCode: http.StatusBadRequest,
		}
	}
	var existingRequest *models.RegistrationRequest
	cursor = registrationRequestModel.GetOne(bson.D{{Key: "email", Value: request.Email}})
	if err := cursor.Decode(&existingRequest); err == nil {
		if existingRequest.Status == models.REQUEST_PENDING {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("ya existe una solicitud pendiente para este email"),
				StatusCode: http.StatusBadRequest,
			}
		}
		if existingRequest.Status == models.REQUEST_REJECTED {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("la solicitud anterior fue rechazada, contacte al administrador"),
				StatusCode: http.StatusBadRequest,
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	model := &models.RegistrationRequest{
		Name:     request.Name,
		Email:    request.Email,
		Password: string(hash),
		Role:     request.Role,
		Status:   models.REQUEST_PENDING,
		Date:     primitive.NewDateTimeFromTime(time.Now()),
	}
	if request.Role == models.CLUB_COORDINATOR {
		model.ClubName = request.ClubName
	}
	if request.Role == models.STAFF {
		model.StaffDepartment = request.StaffDepartment
		model.StaffDesignation = request.StaffDesignation
	}
	inserted, err := registrationRequestModel.NewDocument(model)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("ya existe una solicitud para este email"),
				StatusCode: http.StatusBadRequest,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	model.ID = inserted.InsertedID.(primitive.ObjectID)

	for _, role := range []string{models.ADMIN, models.STAFF} {
		notify(res.NotifyAcademic{
			Event: res.REGISTRATION_REQUEST_CREATED,
			Room:  fmt.Sprintf("role:%s", role),
			Data:  model,
		})
	}
	NewNotificationService().NotifyRole(
		models.ADMIN,
		"Nueva solicitud de registro",
		fmt.Sprintf("%s solicita una cuenta %s", model.Name, model.Role),
		res.GENERAL,
	)
	return model, nil
}

// GetRequests lists requests filtered by status, role and a name or email
// search
func (r *RegistrationService) GetRequests(status, role, search string) ([]models.RegistrationRequest, *res.ErrorRes) {
	filter := bson.D{}
	if status != "" && status != "all" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	if role != "" && role != "all" {
		filter = append(filter, bson.E{Key: "role", Value: role})
	}
	if search != "" {
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": search, "$options": "i"}},
		}})
	}
	cursor, err := registrationRequestModel.GetAll(filter, options.Find().SetSort(bson.D{{
		Key:   "date",
		Value: -1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var requests []models.RegistrationRequest
	if err := cursor.All(db.Ctx, &requests); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return requests, nil
}

func (r *RegistrationService) GetStats() (*RegistrationStats, *res.ErrorRes) {
	collection := registrationRequestModel.Use()
	count := func(status string) (int64, error) {
		return collection.CountDocuments(db.Ctx, bson.D{{
			Key:   "status",
			Value: status,
		}})
	}
	pending, err := count(models.REQUEST_PENDING)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	approved, err := count(models.REQUEST_APPROVED)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	rejected, err := count(models.REQUEST_REJECTED)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return &RegistrationStats{
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
		Total:    pending + approved + rejected,
	}, nil
}

func (r *RegistrationService) getPendingRequest(idRequest string) (*models.RegistrationRequest, *res.ErrorRes) {
	idObjRequest, err := primitive.ObjectIDFromHex(idRequest)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var request *models.RegistrationRequest
	if err := registrationRequestModel.GetByID(idObjRequest).Decode(&request); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe la solicitud indicada"),
			StatusCode: http.StatusNotFound,
		}
	}
	if request.Status != models.REQUEST_PENDING {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("la solicitud ya fue procesada"),
			StatusCode: http.StatusBadRequest,
		}
	}
	return request, nil
}

// Approve creates the user account from the request
func (r *RegistrationService) Approve(
	idRequest string,
	review *forms.ReviewRequestForm,
	claims *Claims,
) (*models.SimpleUser, *res.ErrorRes) {
	request, errRes := r.getPendingRequest(idRequest)
	if errRes != nil {
		return nil, errRes
	}
	idObjAdmin, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	// The email may have been taken since the request was filed
	var existingUser *models.User
	cursor := userModel.GetOne(bson.D{{Key: "email", Value: request.Email}})
	if err := cursor.Decode(&existingUser); err == nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("ya existe un usuario con este email"),
			StatusCode: http.StatusBadRequest,
		}
	}

	user := &models.User{
		Name:             request.Name,
		Email:            request.Email,
		Password:         request.Password,
		Role:             request.Role,
		ClubName:         request.ClubName,
		StaffDepartment:  request.StaffDepartment,
		StaffDesignation: request.StaffDesignation,
		Date:             primitive.NewDateTimeFromTime(time.Now()),
	}
	inserted, err := userModel.NewDocument(user)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idObjUser := inserted.InsertedID.(primitive.ObjectID)

	_, err = registrationRequestModel.Use().UpdateByID(db.Ctx, request.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":        models.REQUEST_APPROVED,
			"reviewed_by":   idObjAdmin,
			"reviewed_at":   primitive.NewDateTimeFromTime(time.Now()),
			"admin_comment": review.Comment,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.REGISTRATION_REQUEST_UPDATED,
		Room:  fmt.Sprintf("role:%s", models.ADMIN),
		Data: map[string]interface{}{
			"_id":    request.ID.Hex(),
			"status": models.REQUEST_APPROVED,
		},
	})
	return &models.SimpleUser{
		ID:    idObjUser.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Reject marks the request rejected with the admin's comment
func (r *RegistrationService) Reject(
	idRequest string,
	review *forms.ReviewRequestForm,
	claims *Claims,
) (*models.RegistrationRequest, *res.ErrorRes) {
	request, errRes := r.getPendingRequest(idRequest)
	if errRes != nil {
		return nil, errRes
	}
	idObjAdmin, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	comment := review.Comment
	if comment == "" {
		comment = "Solicitud rechazada por el administrador"
	}
	_, err = registrationRequestModel.Use().UpdateByID(db.Ctx, request.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":        models.REQUEST_REJECTED,
			"reviewed_by":   idObjAdmin,
			"reviewed_at":   primitive.NewDateTimeFromTime(time.Now()),
			"admin_comment": comment,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := registrationRequestModel.GetByID(request.ID).Decode(&request); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.REGISTRATION_REQUEST_UPDATED,
		Room:  fmt.Sprintf("role:%s", models.ADMIN),
		Data: map[string]interface{}{
			"_id":    request.ID.Hex(),
			"status": models.REQUEST_REJECTED,
		},
	})
	return request, nil
}

// CheckStatus is the public lookup used by applicants to follow their
// request
func (r *RegistrationService) CheckStatus(email string) (map[string]interface{}, *res.ErrorRes) {
	var request *models.RegistrationRequest
	cursor := registrationRequestModel.GetOne(bson.D{{Key: "email", Value: email}})
	if err := cursor.Decode(&request); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe una solicitud para este email"),
			StatusCode: http.StatusNotFound,
		}
	}
	return map[string]interface{}{
		"status":        request.Status,
		"role":          request.Role,
		"date":          request.Date,
		"reviewed_at":   request.ReviewedAt,
		"admin_comment": request.AdminComment,
	}, nil
}

func NewRegistrationService() *RegistrationService {
	if registrationService == nil {
		registrationService = &RegistrationService{}
	}
	return registrationService
}
