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

// NegotiationHandler - структура для обработки HTTP-запросов.
type NegotiationHandler struct {
	Service *services.NegotiationService
	Logger  *log.Logger
	Timeout time.Duration
	dbPool  *pgxpool.Pool
}

// NewNegotiationHandler создает новый экземпляр NegotiationHandler.
func NewNegotiationHandler(service *services.NegotiationService, logger *log.Logger, timeout time.Duration, dbPool *pgxpool.Pool) *NegotiationHandler {
	return &NegotiationHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
		dbPool:  dbPool,
	}
}

// CreateNegotiation обрабатывает запросы для создания переговоров.
func (h *NegotiationHandler) CreateNegotiation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var negotiationReq models.NegotiationRequest
	err := json.NewDecoder(r.Body).Decode(&negotiationReq)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userId := r.URL.Query().Get("userId")

	newNegotiation, err := h.Service.CreateNegotiation(ctx, negotiationReq, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create negotiation")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(newNegotiation); err != nil {
		h.Logger.Println(err)
	}
}

// RespondNegotiation обрабатывает запросы со встречным предложением исполнителя.
func (h *NegotiationHandler) RespondNegotiation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var counterReq models.CounterProposalRequest
	err := json.NewDecoder(r.Body).Decode(&counterReq)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	negotiationId := r.PathValue("negotiationId")
	userId := r.URL.Query().Get("userId")

	negotiation, err := h.Service.RespondNegotiation(ctx, negotiationId, userId, counterReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to respond to negotiation")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(negotiation); err != nil {
		h.Logger.Println(err)
	}
}

// ConfirmNegotiation обрабатывает запросы подтверждения встречных условий.
func (h *NegotiationHandler) ConfirmNegotiation(w http.ResponseWriter, r *http.Request) {
	h.applyDecision(w, r, h.Service.ConfirmNegotiation, "failed to confirm negotiation")
}

// RejectNegotiation обрабатывает запросы отклонения переговоров.
func (h *NegotiationHandler) RejectNegotiation(w http.ResponseWriter, r *http.Request) {
	h.applyDecision(w, r, h.Service.RejectNegotiation, "failed to reject negotiation")
}

// CancelNegotiation обрабатывает запросы отмены предложения покупателем.
func (h *NegotiationHandler) CancelNegotiation(w http.ResponseWriter, r *http.Request) {
	h.applyDecision(w, r, h.Service.CancelNegotiation, "failed to cancel negotiation")
}

// applyDecision обрабатывает переходы без тела запроса.
func (h *NegotiationHandler) applyDecision(w http.ResponseWriter, r *http.Request, decision func(context.Context, string, string) (*models.Negotiation, error), failMessage string) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	negotiationId := r.PathValue("negotiationId")
	userId := r.URL.Query().Get("userId")

	negotiation, err := decision(ctx, negotiationId, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, failMessage)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(negotiation); err != nil {
		h.Logger.Println(err)
	}
}

// GetNegotiationStatus обрабатывает запросы для получения статуса переговоров.
func (h *NegotiationHandler) GetNegotiationStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	negotiationId := r.PathValue("negotiationId")
	userId := r.URL.Query().Get("userId")

	status, err := h.Service.GetNegotiationStatus(ctx, negotiationId, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve negotiation status")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(status); err != nil {
		h.Logger.Println(err)
	}
}

// GetContractNegotiation обрабатывает запросы для получения переговоров по контракту.
func (h *NegotiationHandler) GetContractNegotiation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	userId := r.URL.Query().Get("userId")

	negotiation, err := h.Service.GetContractNegotiation(ctx, contractId, userId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve negotiation for contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(negotiation); err != nil {
		h.Logger.Println(err)
	}
}
