package res

// Subject every domain event travels on between the api service and the
// realtime gateway
const NOTIFY_SUBJECT = "notify/academic"

// Event names, shared between emitters (services) and the gateway. Clients
// subscribe to these exact strings
const (
	NOTIFICATION                 = "notification"
	PLACEMENT_CREATED            = "placement_created"
	PLACEMENT_UPDATED            = "placement_updated"
	PLACEMENT_DELETED            = "placement_deleted"
	REGISTRATION_REQUEST_CREATED = "registration_request_created"
	REGISTRATION_REQUEST_UPDATED = "registration_request_updated"
	STAFF_CREATED                = "staff_created"
	STAFF_DELETED                = "staff_deleted"
	EVENT_STATUS_UPDATED         = "event_status_updated"
	SEATING_ALLOCATED            = "seating_allocated"
	EXAM_SCHEDULE_RELEASED       = "exam_schedule_released"
	HALL_TICKETS_GENERATED       = "hall_tickets_generated"
	CAREER_APPROVAL_UPDATED      = "career_approval_updated"
)

// Notification types
const (
	EXAM        = "Exam"
	HALL_TICKET = "HallTicket"
	SEATING     = "Seating"
	EVENT       = "Event"
	GENERAL     = "General"
	ACADEMIC    = "Academic"
)

// NotifyAcademic is the payload published on NOTIFY_SUBJECT. Room empty =
// broadcast to every connected client
type NotifyAcademic struct {
	Event   string      `json:"event"`
	Room    string      `json:"room,omitempty"`
	Title   string      `json:"title,omitempty"`
	Message string      `json:"message,omitempty"`
	Type    string      `json:"type,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
