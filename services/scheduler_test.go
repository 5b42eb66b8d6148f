package services

import (
	"testing"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/models"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestAvailableDates(t *testing.T) {
	// 2026-03-02 is a Monday
	dates := AvailableDates(
		date("2026-03-02"),
		date("2026-03-08"),
		[]time.Time{date("2026-03-04")},
	)
	expected := []string{"2026-03-02", "2026-03-03", "2026-03-05", "2026-03-06"}
	if len(dates) != len(expected) {
		t.Fatalf("expected %d dates, got %d", len(expected), len(dates))
	}
	for i, day := range dates {
		if day.Format("2006-01-02") != expected[i] {
			t.Errorf("date %d: expected %s, got %s", i, expected[i], day.Format("2006-01-02"))
		}
	}
}

func TestRespectsGap(t *testing.T) {
	tests := []struct {
		name        string
		last        *lastExam
		date        time.Time
		session     string
		subjectType string
		examType    string
		expected    bool
	}{
		{
			name:        "first exam always fits",
			last:        nil,
			date:        date("2026-03-02"),
			session:     models.SESSION_FORENOON,
			subjectType: models.SUBJECT_HEAVY,
			examType:    models.EXAM_SEMESTER,
			expected:    true,
		},
		{
			name:        "internal exams ignore spacing",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_FORENOON},
			date:        date("2026-03-02"),
			session:     models.SESSION_FORENOON,
			subjectType: models.SUBJECT_HEAVY,
			examType:    models.EXAM_INTERNAL,
			expected:    true,
		},
		{
			name:        "heavy subject rejects same day",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_FORENOON},
			date:        date("2026-03-02"),
			session:     models.SESSION_AFTERNOON,
			subjectType: models.SUBJECT_HEAVY,
			examType:    models.EXAM_SEMESTER,
			expected:    false,
		},
		{
			name:        "heavy subject next morning after afternoon exam",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_AFTERNOON},
			date:        date("2026-03-03"),
			session:     models.SESSION_FORENOON,
			subjectType: models.SUBJECT_HEAVY,
			examType:    models.EXAM_SEMESTER,
			expected:    false,
		},
		{
			name:        "heavy subject next afternoon after afternoon exam",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_AFTERNOON},
			date:        date("2026-03-03"),
			session:     models.SESSION_AFTERNOON,
			subjectType: models.SUBJECT_HEAVY,
			examType:    models.EXAM_SEMESTER,
			expected:    true,
		},
		{
			name:        "nonmajor same day needs another session",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_FORENOON},
			date:        date("2026-03-02"),
			session:     models.SESSION_AFTERNOON,
			subjectType: models.SUBJECT_NONMAJOR,
			examType:    models.EXAM_SEMESTER,
			expected:    true,
		},
		{
			name:        "nonmajor same day same session rejected",
			last:        &lastExam{date: date("2026-03-02"), session: models.SESSION_FORENOON},
			date:        date("2026-03-02"),
			session:     models.SESSION_FORENOON,
			subjectType: models.SUBJECT_NONMAJOR,
			examType:    models.EXAM_SEMESTER,
			expected:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := respectsGap(tt.last, tt.date, tt.session, tt.subjectType, tt.examType)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScheduleExamsOneExamPerDepartmentPerDay(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
		{Code: "CS102", Name: "Redes", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
	}
	result := ScheduleExams(
		subjects,
		models.EXAM_SEMESTER,
		date("2026-03-02"),
		date("2026-03-06"),
		nil,
	)
	if !result.Success {
		t.Fatalf("expected success, violations: %v", result.Violations)
	}
	if len(result.Timetable) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Timetable))
	}
	if result.Timetable[0].Date == result.Timetable[1].Date {
		t.Error("two exams of the same department share a date")
	}
}

func TestScheduleExamsInternalForenoonOnly(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_HEAVY},
		{Code: "EC201", Name: "Circuitos", Department: "EC", SubjectType: models.SUBJECT_NONMAJOR},
	}
	result := ScheduleExams(
		subjects,
		models.EXAM_INTERNAL,
		date("2026-03-02"),
		date("2026-03-06"),
		nil,
	)
	if !result.Success {
		t.Fatalf("expected success, violations: %v", result.Violations)
	}
	for _, entry := range result.Timetable {
		if entry.Session != models.SESSION_FORENOON {
			t.Errorf("internal exam scheduled in session %s", entry.Session)
		}
	}
}

func TestScheduleExamsHeavySpacing(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_HEAVY},
		{Code: "CS102", Name: "Compiladores", Department: "CS", SubjectType: models.SUBJECT_HEAVY},
	}
	result := ScheduleExams(
		subjects,
		models.EXAM_SEMESTER,
		date("2026-03-02"),
		date("2026-03-13"),
		nil,
	)
	if !result.Success {
		t.Fatalf("expected success, violations: %v", result.Violations)
	}
	first := result.Timetable[0].Date.Time()
	second := result.Timetable[1].Date.Time()
	if second.Sub(first).Hours() < 24 {
		t.Errorf("heavy subjects scheduled less than a day apart: %v and %v", first, second)
	}
}

func TestScheduleExamsRangeTooSmall(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
		{Code: "CS102", Name: "Redes", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
		{Code: "CS103", Name: "Bases de Datos", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
	}
	// 2026-03-02 and 2026-03-03 only, one exam per department per day
	result := ScheduleExams(
		subjects,
		models.EXAM_SEMESTER,
		date("2026-03-02"),
		date("2026-03-03"),
		nil,
	)
	if result.Success {
		t.Fatal("expected failure with a range smaller than the subject count")
	}
	errors := 0
	for _, violation := range result.Violations {
		if violation.Severity == VIOLATION_ERROR {
			errors++
		}
	}
	if errors != 1 {
		t.Errorf("expected 1 error violation, got %d", errors)
	}
}

func TestScheduleExamsNoDates(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
	}
	// Weekend only
	result := ScheduleExams(
		subjects,
		models.EXAM_SEMESTER,
		date("2026-03-07"),
		date("2026-03-08"),
		nil,
	)
	if result.Success {
		t.Fatal("expected failure with no working days in range")
	}
}

func TestScheduleExamsSortedByDate(t *testing.T) {
	subjects := []models.Subject{
		{Code: "CS101", Name: "Algoritmos", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
		{Code: "EC201", Name: "Circuitos", Department: "EC", SubjectType: models.SUBJECT_NONMAJOR},
		{Code: "CS102", Name: "Redes", Department: "CS", SubjectType: models.SUBJECT_NONMAJOR},
	}
	result := ScheduleExams(
		subjects,
		models.EXAM_SEMESTER,
		date("2026-03-02"),
		date("2026-03-13"),
		nil,
	)
	for i := 1; i < len(result.Timetable); i++ {
		if result.Timetable[i].Date < result.Timetable[i-1].Date {
			t.Fatal("timetable is not sorted by date")
		}
	}
}

func TestExamWindow(t *testing.T) {
	tests := []struct {
		name     string
		examType string
		session  string
		start    string
		end      string
		duration int
	}{
		{
			name:     "internal exams use the short morning slot",
			examType: models.EXAM_INTERNAL,
			session:  models.SESSION_FORENOON,
			start:    "08:30",
			end:      "10:00",
			duration: 90,
		},
		{
			name:     "internal slot does not depend on the session",
			examType: models.EXAM_INTERNAL,
			session:  models.SESSION_AFTERNOON,
			start:    "08:30",
			end:      "10:00",
			duration: 90,
		},
		{
			name:     "semester forenoon",
			examType: models.EXAM_SEMESTER,
			session:  models.SESSION_FORENOON,
			start:    "09:00",
			end:      "12:00",
			duration: 180,
		},
		{
			name:     "semester afternoon",
			examType: models.EXAM_SEMESTER,
			session:  models.SESSION_AFTERNOON,
			start:    "14:00",
			end:      "17:00",
			duration: 180,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, duration := ExamWindow(tt.examType, tt.session)
			if start != tt.start || end != tt.end {
				t.Errorf("expected window %s-%s, got %s-%s", tt.start, tt.end, start, end)
			}
			if duration != tt.duration {
				t.Errorf("expected %d minutes, got %d", tt.duration, duration)
			}
		})
	}
}
