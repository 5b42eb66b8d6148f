package services

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/MLR-commits/Intranet_BAcademic/db"
)

func TestPlacementSearchFragment(t *testing.T) {
	tests := []struct {
		name   string
		search string
	}{
		{
			name:   "plain term",
			search: "backend developer",
		},
		{
			name:   "quotes in the term",
			search: `empresa "Acme" S.A.`,
		},
		{
			name:   "backslashes and braces",
			search: `C:\jobs {remote}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := io.ReadAll(db.ConstructQuery(placementSearchFragment(tt.search)))
			if err != nil {
				t.Fatal(err)
			}
			var body struct {
				Query struct {
					MultiMatch struct {
						Query string `json:"query"`
					} `json:"multi_match"`
				} `json:"query"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("query body is not valid JSON: %v\n%s", err, raw)
			}
			if body.Query.MultiMatch.Query != tt.search {
				t.Errorf("expected term %q, got %q", tt.search, body.Query.MultiMatch.Query)
			}
		})
	}
}
