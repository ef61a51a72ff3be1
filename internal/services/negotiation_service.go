package services

import (
	"context"
	"net/http"

	"github.com/annsmirn/negotiation-service/internal/models"
	"github.com/annsmirn/negotiation-service/internal/repository"
	"github.com/annsmirn/negotiation-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NegotiationService struct {
	Repo      repository.NegotiationRepository
	Contracts repository.ContractRepository
	dbPool    *pgxpool.Pool
}

// NewNegotiationService создает новый экземпляр NegotiationService.
func NewNegotiationService(repo repository.NegotiationRepository, contracts repository.ContractRepository, dbPool *pgxpool.Pool) *NegotiationService {
	return &NegotiationService{Repo: repo, Contracts: contracts, dbPool: dbPool}
}

// CreateNegotiation создает переговоры по контракту от имени покупателя.
func (s *NegotiationService) CreateNegotiation(ctx context.Context, negotiationReq models.NegotiationRequest, userId string) (*models.Negotiation, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}
	if negotiationReq.ContractID == "" || negotiationReq.ProviderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	if err := ValidateProposal(negotiationReq.InitialProposal); err != nil {
		return nil, err
	}

	contract, err := s.Contracts.GetContractById(ctx, negotiationReq.ContractID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "contract not found")
	}
	if contract.BuyerID != userId {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only the buyer of the contract can initiate a negotiation")
	}
	if contract.ProviderID != negotiationReq.ProviderID {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "providerId does not match the contract")
	}

	activeExists, err := utils.CheckActiveNegotiationExists(ctx, s.dbPool, contract.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if activeExists {
		return nil, models.NewErrorResponse(http.StatusConflict, "an active negotiation already exists for this contract")
	}
	return s.Repo.CreateNegotiation(ctx, contract, negotiationReq.InitialProposal)
}

// RespondNegotiation применяет встречное предложение исполнителя.
func (s *NegotiationService) RespondNegotiation(ctx context.Context, negotiationId, userId string, counterReq models.CounterProposalRequest) (*models.Negotiation, error) {
	negotiation, err := s.loadNegotiation(ctx, negotiationId, userId)
	if err != nil {
		return nil, err
	}

	next, err := ApplyTransition(negotiation, models.RespondNegotiation, &counterReq.CounterProposal, userId)
	if err != nil {
		return nil, err
	}
	return s.Repo.SaveNegotiation(ctx, next)
}

// ConfirmNegotiation подтверждает встречные условия и переносит их в контракт.
func (s *NegotiationService) ConfirmNegotiation(ctx context.Context, negotiationId, userId string) (*models.Negotiation, error) {
	negotiation, err := s.loadNegotiation(ctx, negotiationId, userId)
	if err != nil {
		return nil, err
	}

	next, err := ApplyTransition(negotiation, models.ConfirmNegotiation, nil, userId)
	if err != nil {
		return nil, err
	}

	// Подтверждение возможно только из Countered, встречное предложение уже
	// записано. Статус и перенос условий в контракт фиксируются одной транзакцией.
	return s.Repo.ConfirmNegotiation(ctx, next)
}

// RejectNegotiation отклоняет переговоры от имени любой из сторон.
func (s *NegotiationService) RejectNegotiation(ctx context.Context, negotiationId, userId string) (*models.Negotiation, error) {
	negotiation, err := s.loadNegotiation(ctx, negotiationId, userId)
	if err != nil {
		return nil, err
	}

	next, err := ApplyTransition(negotiation, models.RejectNegotiation, nil, userId)
	if err != nil {
		return nil, err
	}
	return s.Repo.SaveNegotiation(ctx, next)
}

// CancelNegotiation отзывает еще не отвеченное предложение покупателя.
func (s *NegotiationService) CancelNegotiation(ctx context.Context, negotiationId, userId string) (*models.Negotiation, error) {
	negotiation, err := s.loadNegotiation(ctx, negotiationId, userId)
	if err != nil {
		return nil, err
	}

	next, err := ApplyTransition(negotiation, models.CancelNegotiation, nil, userId)
	if err != nil {
		return nil, err
	}
	return s.Repo.SaveNegotiation(ctx, next)
}

// GetNegotiationStatus получает статус переговоров для одного из участников.
func (s *NegotiationService) GetNegotiationStatus(ctx context.Context, negotiationId, userId string) (*models.NegotiationStatus, error) {
	negotiation, err := s.loadNegotiation(ctx, negotiationId, userId)
	if err != nil {
		return nil, err
	}
	if _, err := ResolveNegotiationRole(negotiation, userId); err != nil {
		return nil, err
	}
	return s.Repo.GetNegotiationStatus(ctx, negotiationId)
}

// GetContractNegotiation возвращает активные либо последние переговоры по контракту.
func (s *NegotiationService) GetContractNegotiation(ctx context.Context, contractId, userId string) (*models.Negotiation, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	contract, err := s.Contracts.GetContractById(ctx, contractId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "contract not found")
	}
	if contract.BuyerID != userId && contract.ProviderID != userId {
		return nil, models.NewErrorResponse(http.StatusForbidden, "user is not a participant of this contract")
	}

	negotiation, err := s.Repo.GetNegotiationByContract(ctx, contractId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "no negotiations found for this contract")
	}
	return negotiation, nil
}

// loadNegotiation выполняет общие проверки и читает актуальную запись переговоров.
func (s *NegotiationService) loadNegotiation(ctx context.Context, negotiationId, userId string) (*models.Negotiation, error) {
	if userId == "" || negotiationId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: negotiationId or userId")
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	negotiation, err := s.Repo.GetNegotiationById(ctx, negotiationId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "negotiation not found")
	}
	return negotiation, nil
}
