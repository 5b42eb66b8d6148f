package models

// Every model must satisfy Collection so the generic handlers can use them
// interchangeably
var (
	_ Collection = (*AssignmentModel)(nil)
	_ Collection = (*CareerApprovalModel)(nil)
	_ Collection = (*DepartmentModel)(nil)
	_ Collection = (*EventModel)(nil)
	_ Collection = (*ExamModel)(nil)
	_ Collection = (*HallTicketModel)(nil)
	_ Collection = (*NotificationModel)(nil)
	_ Collection = (*PlacementModel)(nil)
	_ Collection = (*RegistrationRequestModel)(nil)
	_ Collection = (*ResultModel)(nil)
	_ Collection = (*RoomModel)(nil)
	_ Collection = (*SeatingModel)(nil)
	_ Collection = (*SubjectModel)(nil)
	_ Collection = (*TimetableModel)(nil)
	_ Collection = (*UserModel)(nil)
)
