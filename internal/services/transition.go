package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"
	"github.com/annsmirn/negotiation-service/internal/utils"
)

// transitionSources описывает, из каких состояний каждая роль может выполнить переход.
// Переход, которого нет в карте роли, запрещен ей в любом состоянии.
// Терминальные статусы не встречаются ни в одном списке, поэтому из них выхода нет.
var transitionSources = map[models.ContractRole]map[models.NegotiationTransition][]models.NegotiationStatus{
	models.BuyerRole: {
		models.CancelNegotiation:  {models.PendingNegotiation},
		models.ConfirmNegotiation: {models.CounteredNegotiation},
		models.RejectNegotiation:  {models.CounteredNegotiation},
	},
	models.ProviderRole: {
		models.RespondNegotiation: {models.PendingNegotiation},
		models.RejectNegotiation:  {models.PendingNegotiation, models.CounteredNegotiation},
	},
}

// ResolveNegotiationRole определяет роль вызывающего относительно записи переговоров.
func ResolveNegotiationRole(negotiation *models.Negotiation, userId string) (models.ContractRole, error) {
	switch userId {
	case negotiation.BuyerID:
		return models.BuyerRole, nil
	case negotiation.ProviderID:
		return models.ProviderRole, nil
	}
	return "", models.NewErrorResponse(http.StatusForbidden, "user is not a participant of this negotiation")
}

// AuthorizeTransition проверяет, разрешен ли переход вызывающему в текущем состоянии.
// Проверка чистая и выполняется до любых изменений записи.
func AuthorizeTransition(negotiation *models.Negotiation, userId string, transition models.NegotiationTransition) error {
	role, err := ResolveNegotiationRole(negotiation, userId)
	if err != nil {
		return err
	}

	validSources, ok := transitionSources[role][transition]
	if !ok {
		return models.NewErrorResponse(http.StatusForbidden, fmt.Sprintf("role %s is not allowed to %s a negotiation", role, strings.ToLower(string(transition))))
	}
	if !utils.ContainsStatus(validSources, negotiation.Status) {
		return models.NewErrorResponse(http.StatusConflict, fmt.Sprintf("cannot %s a negotiation in status %s", strings.ToLower(string(transition)), negotiation.Status))
	}
	return nil
}

// ValidateProposal проверяет инварианты предложения независимо от внешней валидации.
func ValidateProposal(proposal models.Proposal) error {
	if !proposal.NewPrice.IsPositive() {
		return models.NewErrorResponse(http.StatusBadRequest, "proposal price must be greater than zero")
	}
	if strings.TrimSpace(proposal.NewDeadline) == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "proposal deadline must not be empty")
	}
	return nil
}

// ApplyTransition вычисляет следующее состояние переговоров, не изменяя исходную запись.
// Либо возвращается новая запись целиком, либо ошибка без каких-либо изменений.
// Сохранение результата остается за вызывающим.
func ApplyTransition(negotiation *models.Negotiation, transition models.NegotiationTransition, proposal *models.Proposal, userId string) (*models.Negotiation, error) {
	if err := AuthorizeTransition(negotiation, userId, transition); err != nil {
		return nil, err
	}

	next := *negotiation
	switch transition {
	case models.RespondNegotiation:
		if proposal == nil {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "counter proposal is required")
		}
		if err := ValidateProposal(*proposal); err != nil {
			return nil, err
		}
		counter := *proposal
		next.CounterProposal = &counter
		next.Status = models.CounteredNegotiation
	case models.ConfirmNegotiation:
		next.Status = models.ConfirmedNegotiation
	case models.RejectNegotiation:
		next.Status = models.RejectedNegotiation
	case models.CancelNegotiation:
		next.Status = models.CancelledNegotiation
	default:
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown transition: %s", transition))
	}

	next.UpdatedAt = time.Now().UTC()
	return &next, nil
}
