package services

import (
	"errors"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestAssignmentInsertError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "duplicate key means the slot is taken",
			err: mongo.WriteException{
				WriteErrors: []mongo.WriteError{{Code: 11000}},
			},
			expected: http.StatusConflict,
		},
		{
			name:     "any other failure is a service error",
			err:      errors.New("no reachable servers"),
			expected: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errRes := assignmentInsertError(tt.err)
			if errRes.StatusCode != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, errRes.StatusCode)
			}
			if errRes.Err == nil {
				t.Error("expected a non nil error")
			}
		})
	}
}
