package services

import (
	"context"
	"net/http"

	"github.com/annsmirn/negotiation-service/internal/models"
	"github.com/annsmirn/negotiation-service/internal/repository"
	"github.com/annsmirn/negotiation-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContractService struct {
	Repo   repository.ContractRepository
	dbPool *pgxpool.Pool
}

// NewContractService создает новый экземпляр ContractService.
func NewContractService(repo repository.ContractRepository, dbPool *pgxpool.Pool) *ContractService {
	return &ContractService{Repo: repo, dbPool: dbPool}
}

// CreateContract создает новый контракт от имени покупателя.
func (s *ContractService) CreateContract(ctx context.Context, contractReq models.ContractRequest, userId string) (*models.Contract, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}
	if contractReq.Title == "" || contractReq.Description == "" || contractReq.ProviderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if !contractReq.Price.IsPositive() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "contract price must be greater than zero")
	}
	if contractReq.Deadline == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "contract deadline must not be empty")
	}
	if contractReq.ProviderID == userId {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "buyer and provider must be different users")
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	isBuyer, err := utils.CheckUserHasRole(ctx, s.dbPool, userId, models.Buyer)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !isBuyer {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only a user with the Buyer role can create contracts")
	}

	providerExists, err := utils.CheckUserExistsById(ctx, s.dbPool, contractReq.ProviderID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !providerExists {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "provider does not exist")
	}
	isProvider, err := utils.CheckUserHasRole(ctx, s.dbPool, contractReq.ProviderID, models.Provider)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !isProvider {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "providerId must reference a user with the Provider role")
	}

	contractReq.BuyerID = userId
	return s.Repo.CreateContract(ctx, contractReq)
}

// GetContract получает контракт по ID.
func (s *ContractService) GetContract(ctx context.Context, contractId, userId string) (*models.Contract, error) {
	if userId == "" || contractId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: contractId or userId")
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}

	contract, err := s.Repo.GetContractById(ctx, contractId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "contract not found")
	}
	return contract, nil
}

// GetUserContracts получает список контрактов пользователя.
func (s *ContractService) GetUserContracts(ctx context.Context, limitStr, offsetStr, userId string) ([]models.Contract, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required query parameter: userId")
	}

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	userExists, err := utils.CheckUserExistsById(ctx, s.dbPool, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !userExists {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return s.Repo.GetUserContracts(ctx, limit, offset, userId)
}
