package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VIOLATION_WARNING = "WARNING"
	VIOLATION_ERROR   = "ERROR"
)

// Session times for generated timetables
var SessionTimes = map[string]struct{ Start, End string }{
	models.SESSION_FORENOON:  {Start: "09:00", End: "12:00"},
	models.SESSION_AFTERNOON: {Start: "14:00", End: "17:00"},
}

// Internal exams run a single short morning slot instead of the full
// forenoon session
var InternalSessionTime = struct{ Start, End string }{Start: "08:30", End: "10:00"}

// ExamWindow resolves the start/end times and the duration in minutes of a
// released exam slot
func ExamWindow(examType, session string) (start, end string, duration int) {
	if examType == models.EXAM_INTERNAL {
		return InternalSessionTime.Start, InternalSessionTime.End, 90
	}
	times := SessionTimes[session]
	return times.Start, times.End, 180
}

type ScheduleSummary struct {
	TotalExams           int `json:"total_exams"`
	DatesUsed            int `json:"dates_used"`
	Departments          int `json:"departments"`
	ConstraintViolations int `json:"constraint_violations"`
}

type ScheduleResult struct {
	Success    bool                       `json:"success"`
	Timetable  []models.TimetableEntry    `json:"timetable"`
	Violations []models.ScheduleViolation `json:"violations"`
	Summary    ScheduleSummary            `json:"summary"`
}

type lastExam struct {
	date    time.Time
	session string
}

// AvailableDates lists the working days in [start, end] excluding weekends
// and the given holidays
func AvailableDates(start, end time.Time, holidays []time.Time) []time.Time {
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, holiday := range holidays {
		holidaySet[holiday.Format("2006-01-02")] = struct{}{}
	}

	var dates []time.Time
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(last) {
		weekday := day.Weekday()
		_, isHoliday := holidaySet[day.Format("2006-01-02")]
		if weekday != time.Saturday && weekday != time.Sunday && !isHoliday {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// respectsGap checks the spacing constraint against the department's last
// scheduled exam. Heavy subjects need a full free day, others half a day
func respectsGap(last *lastExam, date time.Time, session, subjectType, examType string) bool {
	if last == nil || examType == models.EXAM_INTERNAL {
		return true
	}
	daysDiff := int(date.Sub(last.date).Hours() / 24)

	if subjectType == models.SUBJECT_HEAVY {
		if daysDiff < 1 {
			return false
		}
		if daysDiff == 1 && last.session == models.SESSION_AFTERNOON {
			return session == models.SESSION_AFTERNOON
		}
		return true
	}
	if daysDiff == 0 {
		return last.session != session
	}
	return true
}

// ScheduleExams builds a timetable for the given subjects inside the date
// range. Subjects that cannot be placed without breaking a gap constraint
// are still placed with a WARNING, subjects that fit nowhere produce an
// ERROR. Success means zero ERROR violations
func ScheduleExams(
	subjects []models.Subject,
	examType string,
	start, end time.Time,
	holidays []time.Time,
) ScheduleResult {
	var timetable []models.TimetableEntry
	var violations []models.ScheduleViolation

	dates := AvailableDates(start, end, holidays)
	if len(dates) == 0 {
		return ScheduleResult{
			Success:   false,
			Timetable: []models.TimetableEntry{},
			Violations: []models.ScheduleViolation{{
				Message:  "No hay fechas disponibles en el rango indicado",
				Severity: VIOLATION_ERROR,
			}},
		}
	}
	if len(subjects) == 0 {
		return ScheduleResult{
			Success:   false,
			Timetable: []models.TimetableEntry{},
			Violations: []models.ScheduleViolation{{
				Message:  "No hay asignaturas para los criterios indicados",
				Severity: VIOLATION_ERROR,
			}},
		}
	}

	sessions := []string{models.SESSION_FORENOON, models.SESSION_AFTERNOON}
	if examType == models.EXAM_INTERNAL {
		sessions = []string{models.SESSION_FORENOON}
	}

	// Group by department preserving first-seen order
	var departments []string
	subjectsByDept := make(map[string][]models.Subject)
	for _, subject := range subjects {
		if _, seen := subjectsByDept[subject.Department]; !seen {
			departments = append(departments, subject.Department)
		}
		subjectsByDept[subject.Department] = append(subjectsByDept[subject.Department], subject)
	}

	deptDateUsed := make(map[string]bool)
	lastExamByDept := make(map[string]*lastExam)
	datesUsed := make(map[string]struct{})

	for _, dept := range departments {
		deptSubjects := subjectsByDept[dept]
		// Heavy subjects first so they get the widest choice of slots
		sort.SliceStable(deptSubjects, func(i, j int) bool {
			return deptSubjects[i].SubjectType == models.SUBJECT_HEAVY &&
				deptSubjects[j].SubjectType != models.SUBJECT_HEAVY
		})

		for _, subject := range deptSubjects {
			scheduled := false

			for _, date := range dates {
				dateKey := fmt.Sprintf("%s_%s", dept, date.Format("2006-01-02"))
				if deptDateUsed[dateKey] {
					continue
				}
				for _, session := range sessions {
					if !respectsGap(lastExamByDept[dept], date, session, subject.SubjectType, examType) {
						continue
					}
					timetable = append(timetable, models.TimetableEntry{
						Date:        primitive.NewDateTimeFromTime(date),
						Session:     session,
						SubjectCode: subject.Code,
						SubjectName: subject.Name,
						Department:  dept,
					})
					deptDateUsed[dateKey] = true
					lastExamByDept[dept] = &lastExam{date: date, session: session}
					datesUsed[date.Format("2006-01-02")] = struct{}{}
					scheduled = true
					break
				}
				if scheduled {
					break
				}
			}

			// Place anyway on the first free date and flag the violation
			if !scheduled {
				for _, date := range dates {
					dateKey := fmt.Sprintf("%s_%s", dept, date.Format("2006-01-02"))
					if deptDateUsed[dateKey] {
						continue
					}
					session := sessions[0]
					timetable = append(timetable, models.TimetableEntry{
						Date:        primitive.NewDateTimeFromTime(date),
						Session:     session,
						SubjectCode: subject.Code,
						SubjectName: subject.Name,
						Department:  dept,
					})
					deptDateUsed[dateKey] = true
					lastExamByDept[dept] = &lastExam{date: date, session: session}
					datesUsed[date.Format("2006-01-02")] = struct{}{}
					violations = append(violations, models.ScheduleViolation{
						Message: fmt.Sprintf(
							"Restricción de separación incumplida para %s (%s)",
							subject.Code,
							subject.Name,
						),
						Severity: VIOLATION_WARNING,
					})
					scheduled = true
					break
				}
			}

			if !scheduled {
				violations = append(violations, models.ScheduleViolation{
					Message: fmt.Sprintf(
						"No se pudo programar %s (%s), amplíe el rango de fechas",
						subject.Code,
						subject.Name,
					),
					Severity: VIOLATION_ERROR,
				})
			}
		}
	}

	sort.SliceStable(timetable, func(i, j int) bool {
		if timetable[i].Date != timetable[j].Date {
			return timetable[i].Date < timetable[j].Date
		}
		return timetable[i].Session == models.SESSION_FORENOON &&
			timetable[j].Session != models.SESSION_FORENOON
	})

	errors := 0
	for _, violation := range violations {
		if violation.Severity == VIOLATION_ERROR {
			errors++
		}
	}
	if violations == nil {
		violations = []models.ScheduleViolation{}
	}
	return ScheduleResult{
		Success:    errors == 0,
		Timetable:  timetable,
		Violations: violations,
		Summary: ScheduleSummary{
			TotalExams:           len(timetable),
			DatesUsed:            len(datesUsed),
			Departments:          len(departments),
			ConstraintViolations: len(violations),
		},
	}
}
