package services

import (
	"fmt"
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var notificationService *NotificationService

type NotificationService struct{}

// GetNotifications returns the unread inbox of a user: user-scoped unread
// notifications plus role broadcasts the user has not read yet. Newest
// first, capped at 50
// unreadFilter matches the user's own unread notifications plus the role
// broadcasts the user has not read yet
func unreadFilter(idUser primitive.ObjectID, role string) bson.D {
	return bson.D{{
		Key: "$or",
		Value: bson.A{
			bson.M{
				"user": idUser,
				"read": false,
			},
			bson.M{
				"recipient_role": role,
				"user":           bson.M{"$exists": false},
				"read_by":        bson.M{"$ne": idUser},
			},
		},
	}}
}

func (n *NotificationService) GetNotifications(claims *Claims) ([]models.Notification, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	filter := unreadFilter(idObjUser, claims.UserType)
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(50)

	cursor, err := notificationModel.GetAll(filter, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var notifications []models.Notification
	if err := cursor.All(db.Ctx, &notifications); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return notifications, nil
}

// MarkRead marks a single notification read for this user. User-scoped
// docs flip the read flag; role broadcasts record the user in read_by.
// Both paths are idempotent
func (n *NotificationService) MarkRead(idNotification string, claims *Claims) *res.ErrorRes {
	idObjNotification, err := primitive.ObjectIDFromHex(idNotification)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	var notification *models.Notification
	cursor := notificationModel.GetByID(idObjNotification)
	if err := cursor.Decode(&notification); err != nil {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe la notificación indicada"),
			StatusCode: http.StatusNotFound,
		}
	}

	if !notification.User.IsZero() {
		if notification.User != idObjUser {
			return &res.ErrorRes{
				Err:        fmt.Errorf("no tienes acceso a esta notificación"),
				StatusCode: http.StatusUnauthorized,
			}
		}
		_, err = notificationModel.Use().UpdateByID(db.Ctx, idObjNotification, bson.D{{
			Key:   "$set",
			Value: bson.M{"read": true},
		}})
	} else if notification.RecipientRole == claims.UserType {
		_, err = notificationModel.Use().UpdateByID(db.Ctx, idObjNotification, bson.D{{
			Key:   "$addToSet",
			Value: bson.M{"read_by": idObjUser},
		}})
	} else {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no tienes acceso a esta notificación"),
			StatusCode: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

// MarkAllRead empties the unread inbox of a user
func (n *NotificationService) MarkAllRead(claims *Claims) *res.ErrorRes {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	_, err = notificationModel.Use().UpdateMany(db.Ctx, bson.D{
		{Key: "user", Value: idObjUser},
		{Key: "read", Value: false},
	}, bson.D{{
		Key:   "$set",
		Value: bson.M{"read": true},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = notificationModel.Use().UpdateMany(db.Ctx, bson.D{
		{Key: "recipient_role", Value: claims.UserType},
		{Key: "user", Value: bson.M{"$exists": false}},
		{Key: "read_by", Value: bson.M{"$ne": idObjUser}},
	}, bson.D{{
		Key:   "$addToSet",
		Value: bson.M{"read_by": idObjUser},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

// Delete removes a user-scoped notification, or hides a role broadcast
// from this user via read_by
func (n *NotificationService) Delete(idNotification string, claims *Claims) *res.ErrorRes {
	idObjNotification, err := primitive.ObjectIDFromHex(idNotification)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}

	var notification *models.Notification
	cursor := notificationModel.GetByID(idObjNotification)
	if err := cursor.Decode(&notification); err != nil {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no existe la notificación indicada"),
			StatusCode: http.StatusNotFound,
		}
	}

	if !notification.User.IsZero() && notification.User == idObjUser {
		_, err = notificationModel.Use().DeleteOne(db.Ctx, bson.D{{
			Key:   "_id",
			Value: idObjNotification,
		}})
	} else if notification.User.IsZero() && notification.RecipientRole == claims.UserType {
		_, err = notificationModel.Use().UpdateByID(db.Ctx, idObjNotification, bson.D{{
			Key:   "$addToSet",
			Value: bson.M{"read_by": idObjUser},
		}})
	} else {
		return &res.ErrorRes{
			Err:        fmt.Errorf("no tienes acceso a esta notificación"),
			StatusCode: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

// NotifyUser persists a user-scoped notification and pushes it to the
// user room
func (n *NotificationService) NotifyUser(
	idUser primitive.ObjectID,
	title,
	message,
	notificationType string,
) error {
	notification := models.NewModelNotification(idUser, "", title, message, notificationType)
	if _, err := notificationModel.NewDocument(notification); err != nil {
		return err
	}
	notify(res.NotifyAcademic{
		Event:   res.NOTIFICATION,
		Room:    fmt.Sprintf("user:%s", idUser.Hex()),
		Title:   title,
		Message: message,
		Type:    notificationType,
	})
	return nil
}

// NotifyRole persists a role broadcast and pushes it to the role room
func (n *NotificationService) NotifyRole(
	role,
	title,
	message,
	notificationType string,
) error {
	notification := models.NewModelNotification(primitive.NilObjectID, role, title, message, notificationType)
	if _, err := notificationModel.NewDocument(notification); err != nil {
		return err
	}
	notify(res.NotifyAcademic{
		Event:   res.NOTIFICATION,
		Room:    fmt.Sprintf("role:%s", role),
		Title:   title,
		Message: message,
		Type:    notificationType,
	})
	return nil
}

func NewNotificationService() *NotificationService {
	if notificationService == nil {
		notificationService = &NotificationService{}
	}
	return notificationService
}
