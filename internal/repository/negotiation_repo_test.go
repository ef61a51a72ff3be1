package repository

import (
	"context"
	"testing"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/shopspring/decimal"
)

func TestConfirmNegotiationRequiresConfirmableRecord(t *testing.T) {
	repo := NewPostgresNegotiationRepository(nil)

	tests := []struct {
		name        string
		negotiation *models.Negotiation
	}{
		{
			"not confirmed yet",
			&models.Negotiation{
				ID:     "negotiation-1",
				Status: models.PendingNegotiation,
				CounterProposal: &models.Proposal{
					NewPrice:    decimal.NewFromInt(180),
					NewDeadline: "7 business days",
				},
			},
		},
		{
			"confirmed without counter proposal",
			&models.Negotiation{
				ID:     "negotiation-1",
				Status: models.ConfirmedNegotiation,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.ConfirmNegotiation(context.Background(), tt.negotiation)
			errorResponse, ok := err.(*models.ErrorResponse)
			if !ok {
				t.Fatalf("expected ErrorResponse, got %v", err)
			}
			if errorResponse.StatusCode != 500 {
				t.Fatalf("expected 500, got %d (%s)", errorResponse.StatusCode, errorResponse.Message)
			}
		})
	}
}
