package utils

import (
	"testing"

	"github.com/annsmirn/negotiation-service/internal/models"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limitStr   string
		offsetStr  string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", 5, 0, false},
		{"explicit values", "10", "20", 10, 20, false},
		{"zero limit", "0", "", 0, 0, true},
		{"limit above cap", "51", "", 0, 0, true},
		{"negative offset", "10", "-1", 0, 0, true},
		{"not a number", "ten", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limitStr, tt.offsetStr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got limit=%d offset=%d", limit, offset)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}

func TestContainsStatus(t *testing.T) {
	sources := []models.NegotiationStatus{models.PendingNegotiation, models.CounteredNegotiation}

	if !ContainsStatus(sources, models.PendingNegotiation) {
		t.Errorf("expected Pending to be contained")
	}
	if ContainsStatus(sources, models.ConfirmedNegotiation) {
		t.Errorf("expected Confirmed not to be contained")
	}
	if ContainsStatus(nil, models.PendingNegotiation) {
		t.Errorf("expected empty source list to contain nothing")
	}
}
