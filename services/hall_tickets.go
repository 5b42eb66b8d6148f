package services

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/forms"
	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/utils"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MIN_ATTENDANCE = 75.0

var hallTicketService *HallTicketService

type HallTicketService struct{}

type SkippedStudent struct {
	Student    primitive.ObjectID `json:"student"`
	RollNumber string             `json:"roll_number"`
	Reason     string             `json:"reason"`
}

type BulkTicketsResult struct {
	Total     int              `json:"total"`
	Generated int              `json:"generated"`
	Skipped   []SkippedStudent `json:"skipped"`
}

// HallTicketEligible checks the attendance and fees criteria for a student.
// The returned reason is empty when eligible
func HallTicketEligible(student *models.User) (bool, string) {
	if student.Attendance < MIN_ATTENDANCE {
		return false, fmt.Sprintf(
			"asistencia %.1f%% menor al mínimo de %.0f%%",
			student.Attendance,
			MIN_ATTENDANCE,
		)
	}
	if !student.FeesPaid {
		return false, "aranceles pendientes de pago"
	}
	return true, ""
}

// ticketSubjects resolves the subject rows of a ticket from the exam
// timetable, falling back to the exam's own course
func ticketSubjects(exam *models.Exam, department string) []models.HallTicketSubject {
	var subjects []models.HallTicketSubject
	for _, entry := range exam.Timetable {
		if department != "" && entry.Department != department {
			continue
		}
		subjects = append(subjects, models.HallTicketSubject{
			Code:    entry.SubjectCode,
			Name:    entry.SubjectName,
			Date:    entry.Date,
			Session: entry.Session,
		})
	}
	if len(subjects) == 0 {
		session := exam.Session
		if session == "" {
			session = models.SESSION_FORENOON
		}
		subjects = append(subjects, models.HallTicketSubject{
			Code:    exam.CourseCode,
			Name:    exam.CourseName,
			Date:    exam.Date,
			Session: session,
		})
	}
	return subjects
}

// renderPDF draws the hall ticket document
func (h *HallTicketService) renderPDF(ticket *models.HallTicket, exam *models.Exam) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, settingsData.COLLEGE_NAME, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, settingsData.COLLEGE_ADDRESS, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(220, 38, 38)
	pdf.CellFormat(0, 8, "HALL TICKET", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s Examinations - %s", exam.ExamType, exam.Semester), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetDrawColor(220, 38, 38)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.2)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	row("Roll Number:", ticket.RollNumber)
	row("Name:", ticket.StudentName)
	row("Department:", ticket.Department)
	if ticket.Year != 0 {
		row("Year:", fmt.Sprintf("%d", ticket.Year))
	}
	if ticket.RoomNumber != "" {
		row("Hall/Room:", ticket.RoomNumber)
		row("Seat Number:", ticket.SeatNumber)
	}
	row("Verification Code:", ticket.VerificationCode)
	pdf.Ln(4)

	// Subjects table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 7, "S.No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Code", "1", 0, "C", false, 0, "")
	pdf.CellFormat(78, 7, "Subject", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Session", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, subject := range ticket.Subjects {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, subject.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(78, 7, subject.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, subject.Date.Time().Format("02/01/2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, subject.Session, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Instructions:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	instructions := []string{
		"1. Report to the examination hall 30 minutes before the scheduled time.",
		"2. This hall ticket must be presented for admission along with a valid ID card.",
		"3. Electronic devices including mobile phones are strictly prohibited.",
		"4. Use only blue or black ballpoint pen for writing.",
		"5. Write your roll number clearly on every answer sheet.",
		"6. Maintain silence and decorum in the examination hall.",
	}
	for _, instruction := range instructions {
		pdf.CellFormat(0, 5, instruction, "", 1, "L", false, 0, "")
	}

	pdf.SetY(250)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 6, "Student's Signature", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Principal's Signature", "", 1, "R", false, 0, "")
	pdf.SetY(270)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 4, fmt.Sprintf("Generated on: %s", time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, "This is a computer-generated document.", "", 1, "L", false, 0, "")

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// generateFor builds, renders and upserts the ticket of one student
func (h *HallTicketService) generateFor(student *models.User, exam *models.Exam) error {
	ticket := &models.HallTicket{
		Student:          student.ID,
		Exam:             exam.ID,
		RollNumber:       student.RollNumber,
		StudentName:      student.Name,
		Department:       student.Department,
		Year:             student.Year,
		Semester:         exam.Semester,
		ExamType:         exam.ExamType,
		Subjects:         ticketSubjects(exam, student.Department),
		VerificationCode: uuid.NewString(),
		Date:             primitive.NewDateTimeFromTime(time.Now()),
	}
	// Seating placement if published
	var seating *models.Seating
	cursor := seatingModel.GetOne(bson.D{
		{Key: "exam", Value: exam.ID},
		{Key: "student", Value: student.ID},
	})
	if err := cursor.Decode(&seating); err == nil {
		ticket.RoomNumber = seating.RoomNumber
		ticket.SeatNumber = seating.SeatNumber
		ticket.Building = seating.Building
	}

	pdfBytes, err := h.renderPDF(ticket, exam)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("hall_tickets/%s/%s.pdf", exam.ID.Hex(), student.ID.Hex())
	if _, err := aws.UploadFile(key, pdfBytes, "application/pdf"); err != nil {
		return err
	}
	ticket.PDFKey = key
	ticket.PDFGeneratedAt = primitive.NewDateTimeFromTime(time.Now())

	_, err = hallTicketModel.Use().UpdateOne(
		db.Ctx,
		bson.D{
			{Key: "student", Value: student.ID},
			{Key: "exam", Value: exam.ID},
		},
		bson.D{{Key: "$set", Value: ticket}},
		options.Update().SetUpsert(true),
	)
	return err
}

// GenerateHallTicket generates the ticket of a single student
func (h *HallTicketService) GenerateHallTicket(form *forms.HallTicketForm) (*models.HallTicket, *res.ErrorRes) {
	idObjStudent, err := primitive.ObjectIDFromHex(form.Student)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjExam, err := primitive.ObjectIDFromHex(form.Exam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var student *models.User
	if err := userModel.GetByID(idObjStudent).Decode(&student); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el estudiante"),
			StatusCode: http.StatusNotFound,
		}
	}
	var exam *models.Exam
	if err := examModel.GetByID(idObjExam).Decode(&exam); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el examen indicado"),
			StatusCode: http.StatusNotFound,
		}
	}
	if eligible, reason := HallTicketEligible(student); !eligible {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("estudiante no habilitado: %s", reason),
			StatusCode: http.StatusConflict,
		}
	}
	if err := h.generateFor(student, exam); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var ticket *models.HallTicket
	cursor := hallTicketModel.GetOne(bson.D{
		{Key: "student", Value: idObjStudent},
		{Key: "exam", Value: idObjExam},
	})
	if err := cursor.Decode(&ticket); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return ticket, nil
}

// GenerateBulk generates tickets for every eligible student of the exam.
// Ineligible students are skipped with the reason recorded
func (h *HallTicketService) GenerateBulk(form *forms.BulkHallTicketsForm) (*BulkTicketsResult, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(form.Exam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var exam *models.Exam
	if err := examModel.GetByID(idObjExam).Decode(&exam); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el examen indicado"),
			StatusCode: http.StatusNotFound,
		}
	}

	filter := bson.D{{Key: "role", Value: models.STUDENT}}
	if form.Department != "" {
		filter = append(filter, bson.E{Key: "department", Value: form.Department})
	}
	if form.Year != 0 {
		filter = append(filter, bson.E{Key: "year", Value: form.Year})
	}
	cursor, err := userModel.GetAll(filter, options.Find())
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var students []models.User
	if err := cursor.All(db.Ctx, &students); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if len(students) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no hay estudiantes para los criterios indicados"),
			StatusCode: http.StatusNotFound,
		}
	}

	result := &BulkTicketsResult{Total: len(students)}
	var eligible []models.User
	for i, student := range students {
		if ok, reason := HallTicketEligible(&students[i]); !ok {
			result.Skipped = append(result.Skipped, SkippedStudent{
				Student:    student.ID,
				RollNumber: student.RollNumber,
				Reason:     reason,
			})
			continue
		}
		eligible = append(eligible, student)
	}

	var mu sync.Mutex
	errRes := utils.Concurrency(5, len(eligible), func(index int, setError func(errRes *res.ErrorRes)) {
		student := eligible[index]
		if err := h.generateFor(&student, exam); err != nil {
			mu.Lock()
			result.Skipped = append(result.Skipped, SkippedStudent{
				Student:    student.ID,
				RollNumber: student.RollNumber,
				Reason:     err.Error(),
			})
			mu.Unlock()
			return
		}
		mu.Lock()
		result.Generated++
		mu.Unlock()
	})
	if errRes != nil {
		return nil, errRes
	}

	_, err = examModel.Use().UpdateByID(db.Ctx, idObjExam, bson.D{{
		Key:   "$set",
		Value: bson.M{"hall_tickets_generated": true},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	NewNotificationService().NotifyRole(
		models.STUDENT,
		"Pases de examen generados",
		fmt.Sprintf("Los pases para los exámenes %s ya están disponibles", exam.ExamType),
		res.HALL_TICKET,
	)
	return result, nil
}

// Authorize releases the exam's tickets for student download
func (h *HallTicketService) Authorize(idExam string, claims *Claims) (int64, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(idExam)
	if err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var exam *models.Exam
	if err := examModel.GetByID(idObjExam).Decode(&exam); err != nil {
		return 0, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el examen indicado"),
			StatusCode: http.StatusNotFound,
		}
	}

	updated, err := hallTicketModel.Use().UpdateMany(
		db.Ctx,
		bson.D{{Key: "exam", Value: idObjExam}},
		bson.D{{Key: "$set", Value: bson.M{
			"authorized":    true,
			"authorized_by": idObjUser,
			"authorized_at": primitive.NewDateTimeFromTime(time.Now()),
		}}},
	)
	if err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = examModel.Use().UpdateByID(db.Ctx, idObjExam, bson.D{{
		Key:   "$set",
		Value: bson.M{"hall_tickets_authorized": true},
	}})
	if err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}

	notify(res.NotifyAcademic{
		Event: res.HALL_TICKETS_GENERATED,
		Room:  fmt.Sprintf("role:%s", models.STUDENT),
		Data: map[string]interface{}{
			"exam": idExam,
		},
	})
	NewNotificationService().NotifyRole(
		models.STUDENT,
		"Pases de examen autorizados",
		fmt.Sprintf("Los pases para los exámenes %s fueron autorizados para su descarga", exam.ExamType),
		res.HALL_TICKET,
	)
	return updated.ModifiedCount, nil
}

// GetMyHallTicket returns the student's own ticket with a presigned
// download URL. Semester tickets require prior authorization
func (h *HallTicketService) GetMyHallTicket(idExam string, claims *Claims) (map[string]interface{}, *res.ErrorRes) {
	idObjExam, err := primitive.ObjectIDFromHex(idExam)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjStudent, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var ticket *models.HallTicket
	cursor := hallTicketModel.GetOne(bson.D{
		{Key: "student", Value: idObjStudent},
		{Key: "exam", Value: idObjExam},
	})
	if err := cursor.Decode(&ticket); err != nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("no existe el pase de examen"),
			StatusCode: http.StatusNotFound,
		}
	}
	if ticket.ExamType == models.EXAM_SEMESTER && !ticket.Authorized {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("el pase aún no está autorizado"),
			StatusCode: http.StatusForbidden,
		}
	}
	url := ""
	if ticket.PDFKey != "" {
		url, err = aws.GetFileURL(ticket.PDFKey)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
	}
	return map[string]interface{}{
		"hall_ticket": ticket,
		"pdf_url":     url,
	}, nil
}

func NewHallTicketService() *HallTicketService {
	if hallTicketService == nil {
		hallTicketService = &HallTicketService{}
	}
	return hallTicketService
}
