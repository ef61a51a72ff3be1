package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	NegotiationStatus     string // Статус переговоров по контракту
	NegotiationTransition string // Переход в жизненном цикле переговоров
	ContractRole          string // Роль участника относительно контракта
)

const (
	PendingNegotiation   NegotiationStatus = "Pending"   // Покупатель отправил предложение
	CounteredNegotiation NegotiationStatus = "Countered" // Исполнитель отправил встречное предложение
	ConfirmedNegotiation NegotiationStatus = "Confirmed" // Покупатель принял встречные условия
	RejectedNegotiation  NegotiationStatus = "Rejected"  // Переговоры отклонены
	CancelledNegotiation NegotiationStatus = "Cancelled" // Покупатель отозвал предложение

	RespondNegotiation NegotiationTransition = "Respond" // Встречное предложение исполнителя
	ConfirmNegotiation NegotiationTransition = "Confirm" // Подтверждение покупателем
	RejectNegotiation  NegotiationTransition = "Reject"  // Отклонение любой стороной
	CancelNegotiation  NegotiationTransition = "Cancel"  // Отмена покупателем

	BuyerRole    ContractRole = "Buyer"    // Сторона, заказывающая услугу
	ProviderRole ContractRole = "Provider" // Сторона, выполняющая услугу
)

// Proposal представляет неизменяемый набор условий (цена, срок, примечания).
type Proposal struct {
	NewPrice    decimal.Decimal `json:"newPrice"`
	NewDeadline string          `json:"newDeadline"`
	Notes       string          `json:"notes,omitempty"`
}

// Negotiation представляет модель переговоров по изменению условий контракта.
type Negotiation struct {
	ID              string            `json:"id"`
	ContractID      string            `json:"contractId"`
	BuyerID         string            `json:"buyerId"`
	ProviderID      string            `json:"providerId"`
	InitialProposal Proposal          `json:"initialProposal"`
	CounterProposal *Proposal         `json:"counterProposal,omitempty"`
	Status          NegotiationStatus `json:"status"`
	Version         int               `json:"version"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// IsTerminal сообщает, завершены ли переговоры окончательно.
func (s NegotiationStatus) IsTerminal() bool {
	return s == ConfirmedNegotiation || s == RejectedNegotiation || s == CancelledNegotiation
}

// NegotiationRequest представляет структуру запроса для создания переговоров.
type NegotiationRequest struct {
	ContractID      string   `json:"contractId"`
	ProviderID      string   `json:"providerId"`
	InitialProposal Proposal `json:"initialProposal"`
}

// CounterProposalRequest представляет структуру запроса для встречного предложения.
type CounterProposalRequest struct {
	CounterProposal Proposal `json:"counterProposal"`
}
