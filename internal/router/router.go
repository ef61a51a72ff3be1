package router

import (
	"net/http"

	"github.com/annsmirn/negotiation-service/internal/handlers"
)

func InitRoutes(negotiationHandler *handlers.NegotiationHandler, contractHandler *handlers.ContractHandler, userHandler *handlers.UserHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("/api/users/new", userHandler.CreateUser)
	mux.HandleFunc("GET /api/users/{userId}", userHandler.GetUser)

	mux.HandleFunc("/api/contracts/new", contractHandler.CreateContract)
	mux.HandleFunc("/api/contracts/my", contractHandler.GetUserContracts)
	mux.HandleFunc("GET /api/contracts/{contractId}", contractHandler.GetContract)

	mux.HandleFunc("/api/negotiations/new", negotiationHandler.CreateNegotiation)
	mux.HandleFunc("PUT /api/negotiations/{negotiationId}/respond", negotiationHandler.RespondNegotiation)
	mux.HandleFunc("PUT /api/negotiations/{negotiationId}/confirm", negotiationHandler.ConfirmNegotiation)
	mux.HandleFunc("PUT /api/negotiations/{negotiationId}/reject", negotiationHandler.RejectNegotiation)
	mux.HandleFunc("PUT /api/negotiations/{negotiationId}/cancel", negotiationHandler.CancelNegotiation)
	mux.HandleFunc("GET /api/negotiations/{negotiationId}/status", negotiationHandler.GetNegotiationStatus)
	mux.HandleFunc("GET /api/negotiations/by-contract/{contractId}", negotiationHandler.GetContractNegotiation)

	return mux
}
