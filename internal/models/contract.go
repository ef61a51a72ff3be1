package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string // Статус контракта

const (
	ActiveContract    ContractStatus = "Active"    // Контракт действует
	CompletedContract ContractStatus = "Completed" // Контракт завершен
)

// Contract представляет модель контракта между покупателем и исполнителем.
type Contract struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	BuyerID     string          `json:"buyerId"`
	ProviderID  string          `json:"providerId"`
	Price       decimal.Decimal `json:"price"`
	Deadline    string          `json:"deadline"`
	Status      ContractStatus  `json:"status"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ContractRequest представляет структуру запроса для создания контракта.
// Покупателем становится вызывающий пользователь, поле заполняется на сервере.
type ContractRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	BuyerID     string          `json:"-"`
	ProviderID  string          `json:"providerId"`
	Price       decimal.Decimal `json:"price"`
	Deadline    string          `json:"deadline"`
}
