package realtime

import (
	"encoding/json"
	"testing"

	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.uber.org/zap"
)

func newTestClient(hub *Hub, userID, role string) *Client {
	client := NewClient(hub, nil, userID, role)
	hub.register(client)
	return client
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case payload := <-client.send:
		var message Message
		if err := json.Unmarshal(payload, &message); err != nil {
			t.Fatalf("could not decode message: %v", err)
		}
		return message
	default:
		t.Fatal("expected a message, channel empty")
		return Message{}
	}
}

func TestEmitToRoom(t *testing.T) {
	hub := NewHub(zap.NewNop())
	student := newTestClient(hub, "student1", "Student")
	admin := newTestClient(hub, "admin1", "Admin")
	hub.Join(student, student.RoleRoom())
	hub.Join(admin, admin.RoleRoom())

	hub.Emit("role:Student", Message{Event: "seating_allocated"})

	message := receive(t, student)
	if message.Event != "seating_allocated" {
		t.Errorf("expected event seating_allocated, got %s", message.Event)
	}
	if len(admin.send) != 0 {
		t.Error("admin received a message scoped to role:Student")
	}
}

func TestEmitBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())
	first := newTestClient(hub, "u1", "Student")
	second := newTestClient(hub, "u2", "Staff")

	hub.Emit("", Message{Event: "notification"})

	if len(first.send) != 1 || len(second.send) != 1 {
		t.Error("broadcast did not reach every client")
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, "u1", "Student")

	hub.Join(client, "role:Student")
	hub.Join(client, "role:Student")
	if size := hub.RoomSize("role:Student"); size != 1 {
		t.Errorf("expected room size 1, got %d", size)
	}
}

func TestJoinUnregisteredClientIgnored(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := NewClient(hub, nil, "u1", "Student")

	hub.Join(client, "role:Student")
	if size := hub.RoomSize("role:Student"); size != 0 {
		t.Errorf("expected room size 0, got %d", size)
	}
}

func TestUnregisterCleansRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, "u1", "Student")
	hub.Join(client, client.UserRoom())
	hub.Join(client, client.RoleRoom())

	hub.unregister(client)

	if hub.ClientCount() != 0 {
		t.Error("client still registered")
	}
	if hub.RoomSize(client.UserRoom()) != 0 || hub.RoomSize(client.RoleRoom()) != 0 {
		t.Error("client still in a room after unregister")
	}
	if _, open := <-client.send; open {
		t.Error("send channel still open after unregister")
	}
}

func TestLeaveRoom(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, "u1", "Student")
	hub.Join(client, "role:Student")

	hub.Leave(client, "role:Student")
	if size := hub.RoomSize("role:Student"); size != 0 {
		t.Errorf("expected room size 0, got %d", size)
	}

	hub.Emit("role:Student", Message{Event: "notification"})
	if len(client.send) != 0 {
		t.Error("client received a message after leaving the room")
	}
}

func TestSlowClientDropsMessages(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, "u1", "Student")
	hub.Join(client, "role:Student")

	// Fill the buffer, the hub must not block once it is full
	for i := 0; i < cap(client.send)+5; i++ {
		hub.Emit("role:Student", Message{Event: "notification"})
	}
	if len(client.send) != cap(client.send) {
		t.Errorf("expected a full buffer of %d, got %d", cap(client.send), len(client.send))
	}
}

func TestClientRoomAccess(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := NewClient(hub, nil, "u1", "Student")

	tests := []struct {
		room    string
		allowed bool
	}{
		{"user:u1", true},
		{"role:Student", true},
		{"user:u2", false},
		{"role:Admin", false},
	}
	for _, tt := range tests {
		if got := client.allowed(tt.room); got != tt.allowed {
			t.Errorf("allowed(%s): expected %v, got %v", tt.room, tt.allowed, got)
		}
	}
}

func TestHandleNotify(t *testing.T) {
	hub := NewHub(zap.NewNop())
	student := newTestClient(hub, "student1", "Student")
	hub.Join(student, student.UserRoom())

	hub.HandleNotify(res.NotifyAcademic{
		Event:   "career_approval_updated",
		Room:    "user:student1",
		Title:   "Solicitud de avance revisada",
		Message: "Tu solicitud fue aprobada",
		Type:    "Academic",
	})

	message := receive(t, student)
	if message.Event != "career_approval_updated" {
		t.Errorf("expected event career_approval_updated, got %s", message.Event)
	}
	if message.Title != "Solicitud de avance revisada" {
		t.Errorf("unexpected title %s", message.Title)
	}
}
