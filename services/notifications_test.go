package services

import (
	"reflect"
	"testing"

	"github.com/MLR-commits/Intranet_BAcademic/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUnreadFilter(t *testing.T) {
	idUser := primitive.NewObjectID()
	filter := unreadFilter(idUser, models.STUDENT)

	if len(filter) != 1 || filter[0].Key != "$or" {
		t.Fatalf("expected a single $or clause, got %v", filter)
	}
	branches, ok := filter[0].Value.(bson.A)
	if !ok || len(branches) != 2 {
		t.Fatalf("expected two $or branches, got %v", filter[0].Value)
	}

	own, ok := branches[0].(bson.M)
	if !ok {
		t.Fatalf("expected bson.M for the direct branch, got %T", branches[0])
	}
	if own["user"] != idUser {
		t.Errorf("direct branch filters user %v, expected %v", own["user"], idUser)
	}
	if own["read"] != false {
		t.Error("direct branch must match only unread notifications")
	}

	broadcast, ok := branches[1].(bson.M)
	if !ok {
		t.Fatalf("expected bson.M for the broadcast branch, got %T", branches[1])
	}
	if broadcast["recipient_role"] != models.STUDENT {
		t.Errorf("broadcast branch filters role %v, expected %v", broadcast["recipient_role"], models.STUDENT)
	}
	if !reflect.DeepEqual(broadcast["user"], bson.M{"$exists": false}) {
		t.Error("broadcast branch must exclude directed notifications")
	}
	if !reflect.DeepEqual(broadcast["read_by"], bson.M{"$ne": idUser}) {
		t.Error("broadcast branch must exclude notifications the user already read")
	}
}
