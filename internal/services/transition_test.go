package services

import (
	"testing"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/shopspring/decimal"
)

const (
	testBuyerId    = "buyer-1"
	testProviderId = "provider-1"
)

func newTestNegotiation(status models.NegotiationStatus) *models.Negotiation {
	negotiation := &models.Negotiation{
		ID:         "negotiation-1",
		ContractID: "contract-1",
		BuyerID:    testBuyerId,
		ProviderID: testProviderId,
		InitialProposal: models.Proposal{
			NewPrice:    decimal.NewFromInt(150),
			NewDeadline: "5 business days",
		},
		Status:    status,
		Version:   1,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}
	if status != models.PendingNegotiation {
		negotiation.CounterProposal = &models.Proposal{
			NewPrice:    decimal.NewFromInt(180),
			NewDeadline: "7 business days",
		}
	}
	return negotiation
}

func newTestCounterProposal() *models.Proposal {
	return &models.Proposal{
		NewPrice:    decimal.NewFromInt(180),
		NewDeadline: "7 business days",
	}
}

func TestResolveNegotiationRole(t *testing.T) {
	negotiation := newTestNegotiation(models.PendingNegotiation)

	role, err := ResolveNegotiationRole(negotiation, testBuyerId)
	if err != nil || role != models.BuyerRole {
		t.Fatalf("expected buyer role, got %q, err %v", role, err)
	}

	role, err = ResolveNegotiationRole(negotiation, testProviderId)
	if err != nil || role != models.ProviderRole {
		t.Fatalf("expected provider role, got %q, err %v", role, err)
	}

	_, err = ResolveNegotiationRole(negotiation, "stranger-1")
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok || errorResponse.StatusCode != 403 {
		t.Fatalf("expected 403 for non-participant, got %v", err)
	}
}

func TestAuthorizeTransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		status     models.NegotiationStatus
		userId     string
		transition models.NegotiationTransition
		wantCode   int
	}{
		{"provider responds to pending", models.PendingNegotiation, testProviderId, models.RespondNegotiation, 0},
		{"buyer cancels pending", models.PendingNegotiation, testBuyerId, models.CancelNegotiation, 0},
		{"provider rejects pending", models.PendingNegotiation, testProviderId, models.RejectNegotiation, 0},
		{"buyer confirms countered", models.CounteredNegotiation, testBuyerId, models.ConfirmNegotiation, 0},
		{"buyer rejects countered", models.CounteredNegotiation, testBuyerId, models.RejectNegotiation, 0},
		{"provider rejects countered", models.CounteredNegotiation, testProviderId, models.RejectNegotiation, 0},

		// Переход не положен роли ни в каком состоянии.
		{"provider confirms countered", models.CounteredNegotiation, testProviderId, models.ConfirmNegotiation, 403},
		{"provider cancels pending", models.PendingNegotiation, testProviderId, models.CancelNegotiation, 403},
		{"buyer responds to pending", models.PendingNegotiation, testBuyerId, models.RespondNegotiation, 403},

		// Переход положен роли, но не из текущего состояния.
		{"buyer confirms pending", models.PendingNegotiation, testBuyerId, models.ConfirmNegotiation, 409},
		{"buyer rejects pending", models.PendingNegotiation, testBuyerId, models.RejectNegotiation, 409},
		{"buyer cancels countered", models.CounteredNegotiation, testBuyerId, models.CancelNegotiation, 409},
		{"provider responds to countered", models.CounteredNegotiation, testProviderId, models.RespondNegotiation, 409},

		{"stranger responds", models.PendingNegotiation, "stranger-1", models.RespondNegotiation, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			negotiation := newTestNegotiation(tt.status)
			err := AuthorizeTransition(negotiation, tt.userId, tt.transition)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("expected transition to be allowed, got %v", err)
				}
				return
			}
			errorResponse, ok := err.(*models.ErrorResponse)
			if !ok {
				t.Fatalf("expected ErrorResponse, got %v", err)
			}
			if errorResponse.StatusCode != tt.wantCode {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantCode, errorResponse.StatusCode, errorResponse.Message)
			}
		})
	}
}

func TestTerminalStatusesAreImmutable(t *testing.T) {
	terminal := []models.NegotiationStatus{
		models.ConfirmedNegotiation,
		models.RejectedNegotiation,
		models.CancelledNegotiation,
	}
	transitions := []struct {
		userId     string
		transition models.NegotiationTransition
	}{
		{testProviderId, models.RespondNegotiation},
		{testBuyerId, models.ConfirmNegotiation},
		{testBuyerId, models.RejectNegotiation},
		{testProviderId, models.RejectNegotiation},
		{testBuyerId, models.CancelNegotiation},
	}

	for _, status := range terminal {
		for _, tr := range transitions {
			negotiation := newTestNegotiation(status)
			_, err := ApplyTransition(negotiation, tr.transition, newTestCounterProposal(), tr.userId)
			errorResponse, ok := err.(*models.ErrorResponse)
			if !ok {
				t.Fatalf("status %s, transition %s: expected ErrorResponse, got %v", status, tr.transition, err)
			}
			if errorResponse.StatusCode != 409 {
				t.Fatalf("status %s, transition %s: expected 409, got %d", status, tr.transition, errorResponse.StatusCode)
			}
		}
	}
}

func TestApplyTransitionRespond(t *testing.T) {
	negotiation := newTestNegotiation(models.PendingNegotiation)
	counter := newTestCounterProposal()

	next, err := ApplyTransition(negotiation, models.RespondNegotiation, counter, testProviderId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Status != models.CounteredNegotiation {
		t.Errorf("expected status Countered, got %s", next.Status)
	}
	if next.CounterProposal == nil || !next.CounterProposal.NewPrice.Equal(decimal.NewFromInt(180)) {
		t.Errorf("counter proposal was not recorded: %+v", next.CounterProposal)
	}
	if !next.InitialProposal.NewPrice.Equal(decimal.NewFromInt(150)) || next.InitialProposal.NewDeadline != "5 business days" {
		t.Errorf("initial proposal changed: %+v", next.InitialProposal)
	}
	if !next.UpdatedAt.After(negotiation.UpdatedAt) {
		t.Errorf("updatedAt was not bumped")
	}

	// Исходная запись остается нетронутой.
	if negotiation.Status != models.PendingNegotiation || negotiation.CounterProposal != nil {
		t.Errorf("input negotiation was mutated: %+v", negotiation)
	}
}

func TestApplyTransitionRespondInvalidPayload(t *testing.T) {
	tests := []struct {
		name     string
		proposal *models.Proposal
	}{
		{"nil proposal", nil},
		{"zero price", &models.Proposal{NewPrice: decimal.Zero, NewDeadline: "3 days"}},
		{"negative price", &models.Proposal{NewPrice: decimal.NewFromInt(-10), NewDeadline: "3 days"}},
		{"blank deadline", &models.Proposal{NewPrice: decimal.NewFromInt(100), NewDeadline: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			negotiation := newTestNegotiation(models.PendingNegotiation)
			_, err := ApplyTransition(negotiation, models.RespondNegotiation, tt.proposal, testProviderId)
			errorResponse, ok := err.(*models.ErrorResponse)
			if !ok || errorResponse.StatusCode != 400 {
				t.Fatalf("expected 400, got %v", err)
			}
			if negotiation.Status != models.PendingNegotiation || negotiation.CounterProposal != nil {
				t.Errorf("record changed after rejected payload: %+v", negotiation)
			}
		})
	}
}

func TestApplyTransitionTerminalOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		status     models.NegotiationStatus
		userId     string
		transition models.NegotiationTransition
		want       models.NegotiationStatus
	}{
		{"buyer confirms", models.CounteredNegotiation, testBuyerId, models.ConfirmNegotiation, models.ConfirmedNegotiation},
		{"buyer rejects", models.CounteredNegotiation, testBuyerId, models.RejectNegotiation, models.RejectedNegotiation},
		{"provider rejects", models.PendingNegotiation, testProviderId, models.RejectNegotiation, models.RejectedNegotiation},
		{"buyer cancels", models.PendingNegotiation, testBuyerId, models.CancelNegotiation, models.CancelledNegotiation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			negotiation := newTestNegotiation(tt.status)
			next, err := ApplyTransition(negotiation, tt.transition, nil, tt.userId)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, next.Status)
			}
			if !next.Status.IsTerminal() {
				t.Errorf("expected terminal status, got %s", next.Status)
			}
		})
	}
}

func TestConfirmCarriesAgreedTerms(t *testing.T) {
	negotiation := newTestNegotiation(models.CounteredNegotiation)

	next, err := ApplyTransition(negotiation, models.ConfirmNegotiation, nil, testBuyerId)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Согласованные условия уходят в хранилище вместе с подтвержденной записью,
	// перенос их в контракт фиксируется той же транзакцией, что и статус.
	agreed := next.CounterProposal
	if agreed == nil {
		t.Fatalf("confirmed negotiation lost the agreed terms")
	}
	if !agreed.NewPrice.Equal(decimal.NewFromInt(180)) || agreed.NewDeadline != "7 business days" {
		t.Errorf("unexpected agreed terms: %+v", agreed)
	}
}

func TestConfirmTwiceFailsSecondTime(t *testing.T) {
	negotiation := newTestNegotiation(models.CounteredNegotiation)

	confirmed, err := ApplyTransition(negotiation, models.ConfirmNegotiation, nil, testBuyerId)
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	_, err = ApplyTransition(confirmed, models.ConfirmNegotiation, nil, testBuyerId)
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok || errorResponse.StatusCode != 409 {
		t.Fatalf("expected 409 on second confirm, got %v", err)
	}
}

func TestValidateProposal(t *testing.T) {
	valid := models.Proposal{NewPrice: decimal.NewFromFloat(150.00), NewDeadline: "5 business days"}
	if err := ValidateProposal(valid); err != nil {
		t.Fatalf("expected valid proposal, got %v", err)
	}

	invalid := models.Proposal{NewPrice: decimal.NewFromInt(-10), NewDeadline: "3 days"}
	err := ValidateProposal(invalid)
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok || errorResponse.StatusCode != 400 {
		t.Fatalf("expected 400 for negative price, got %v", err)
	}
}
