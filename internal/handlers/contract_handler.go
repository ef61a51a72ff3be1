package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"
	"github.com/annsmirn/negotiation-service/internal/services"
	"github.com/annsmirn/negotiation-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractHandler - структура для обработки HTTP-запросов.
type ContractHandler struct {
	Service *services.ContractService
	Logger  *log.Logger
	Timeout time.Duration
	dbPool  *pgxpool.Pool
}

// NewContractHandler создает новый экземпляр ContractHandler.
func NewContractHandler(service *services.ContractService, logger *log.Logger, timeout time.Duration, dbPool *pgxpool.Pool) *ContractHandler {
	return &ContractHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
		dbPool:  dbPool,
	}
}

// CreateContract обрабатывает запросы для создания контракта.
func (h *ContractHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var contractReq models.ContractRequest
	err := json.NewDecoder(r.Body).Decode(&contractReq)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userId := r.URL.Query().Get("userId")

	newContract, err := h.Service.CreateContract(ctx, contractReq, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(newContract); err != nil {
		h.Logger.Println(err)
	}
}

// GetContract обрабатывает запросы для получения контракта.
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	userId := r.URL.Query().Get("userId")

	contract, err := h.Service.GetContract(ctx, contractId, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contract); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserContracts обрабатывает запросы для получения списка контрактов пользователя.
func (h *ContractHandler) GetUserContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	userId := r.URL.Query().Get("userId")

	contracts, err := h.Service.GetUserContracts(ctx, limitStr, offsetStr, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve contracts")
		return
	}

	if len(contracts) == 0 {
		utils.SendErrorResponse(w, http.StatusNotFound, "no contracts found for this user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contracts); err != nil {
		h.Logger.Println(err)
	}
}
