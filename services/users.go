package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userService *UserService

type UserService struct{}

func (u *UserService) signToken(user *models.User) (string, error) {
	claims := &Claims{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Email:    user.Email,
		UserType: user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour * 24).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(settingsData.JWT_SECRET_KEY))
}

func (u *UserService) Login(login *forms.LoginForm) (map[string]interface{}, *res.ErrorRes) {
	var user *models.User

	cursor := userModel.GetOne(bson.D{{
		Key:   "email",
		Value: login.Email,
	}})
	if err := cursor.Decode(&user); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("credenciales inválidas"),
			StatusCode: http.StatusUnauthorized,
		}
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(login.Password),
	); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("credenciales inválidas"),
			StatusCode: http.StatusUnauthorized,
		}
	}
	token, err := u.signToken(user)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return map[string]interface{}{
		"token": token,
		"user": models.SimpleUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (u *UserService) GetStaff() ([]models.User, *res.ErrorRes) {
	var staff []models.User

	cursor, err := userModel.GetAll(bson.D{{
		Key:   "role",
		Value: models.STAFF,
	}}, options.Find().SetSort(bson.D{{
		Key:   "name",
		Value: 1,
	}}))
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := cursor.All(db.Ctx, &staff); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return staff, nil
}

func (u *UserService) CreateStaff(staff *forms.StaffForm) (*models.User, *res.ErrorRes) {
	// Unique email
	var existing *models.User
	cursor := userModel.GetOne(bson.D{{
		Key:   "email",
		Value: staff.Email,
	}})
	if err := cursor.Decode(&existing); err == nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("ya existe un usuario con este email"),
			StatusCode: http.StatusConflict,
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(staff.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	user := &models.User{
		Name:             staff.Name,
		Email:            staff.Email,
		Password:         string(hashed),
		Role:             models.STAFF,
		StaffDepartment:  staff.StaffDepartment,
		StaffDesignation: staff.StaffDesignation,
		Date:             primitive.NewDateTimeFromTime(time.Now()),
	}
	inserted, err := userModel.NewDocument(user)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	user.ID = inserted.InsertedID.(primitive.ObjectID)
	// Notify admins
	notify(res.NotifyAcademic{
		Event: res.STAFF_CREATED,
		Room:  fmt.Sprintf("role:%s", models.ADMIN),
		Data: map[string]interface{}{
			"_id":  user.ID.Hex(),
			"name": user.Name,
		},
	})
	return user, nil
}

func (u *UserService) DeleteStaff(idStaff string) *res.ErrorRes {
	idObjStaff, err := primitive.ObjectIDFromHex(idStaff)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var staff *models.User
	cursor := userModel.GetByID(idObjStaff)
	if err := cursor.Decode(&staff); err != nil {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe el miembro del staff indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	if staff.Role != models.STAFF {
		return &res.ErrorRes{
			Err:        fmt.Errorf("el usuario indicado no es staff"),
			StatusCode: http.StatusBadRequest,
		}
	}
	_, err = userModel.Use().DeleteOne(db.Ctx, bson.D{{
		Key:   "_id",
		Value: idObjStaff,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	notify(res.NotifyAcademic{
		Event: res.STAFF_DELETED,
		Room:  fmt.Sprintf("role:%s", models.ADMIN),
		Data: map[string]interface{}{
			"_id": idStaff,
		},
	})
	return nil
}

func NewUserService() *UserService {
	if userService == nil {
		userService = &UserService{}
	}
	return userService
}
