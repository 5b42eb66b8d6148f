package services

import (
	"testing"

	"github.com/MLR-commits/Intranet_BAcademic/models"
)

func TestHallTicketEligibility(t *testing.T) {
	tests := []struct {
		name       string
		attendance float64
		feesPaid   bool
		eligible   bool
	}{
		{"eligible student", 82.5, true, true},
		{"low attendance", 60, true, false},
		{"fees pending", 90, false, false},
		{"exactly at the minimum", 75, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := &models.User{
				Attendance: tt.attendance,
				FeesPaid:   tt.feesPaid,
			}
			eligible, reason := HallTicketEligible(student)
			if eligible != tt.eligible {
				t.Errorf("expected eligible=%v, got %v (%s)", tt.eligible, eligible, reason)
			}
			if !eligible && reason == "" {
				t.Error("ineligible student without a reason")
			}
		})
	}
}
