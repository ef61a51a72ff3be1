package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// NegotiationRepository - интерфейс для работы с переговорами.
type NegotiationRepository interface {
	CreateNegotiation(ctx context.Context, contract *models.Contract, proposal models.Proposal) (*models.Negotiation, error)
	GetNegotiationById(ctx context.Context, negotiationId string) (*models.Negotiation, error)
	GetNegotiationByContract(ctx context.Context, contractId string) (*models.Negotiation, error)
	GetNegotiationStatus(ctx context.Context, negotiationId string) (*models.NegotiationStatus, error)
	SaveNegotiation(ctx context.Context, negotiation *models.Negotiation) (*models.Negotiation, error)
	ConfirmNegotiation(ctx context.Context, negotiation *models.Negotiation) (*models.Negotiation, error)
}

// PostgresNegotiationRepository - реализация NegotiationRepository для базы данных.
type PostgresNegotiationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNegotiationRepository создает новый экземпляр PostgresNegotiationRepository.
func NewPostgresNegotiationRepository(db *pgxpool.Pool) *PostgresNegotiationRepository {
	return &PostgresNegotiationRepository{DB: db}
}

const negotiationColumns = `id, contract_id, buyer_id, provider_id,
		initial_price, initial_deadline, initial_notes,
		counter_price, counter_deadline, counter_notes,
		status, version, created_at, updated_at`

// CreateNegotiation создает новые переговоры по контракту. Стороны копируются из контракта.
func (r *PostgresNegotiationRepository) CreateNegotiation(ctx context.Context, contract *models.Contract, proposal models.Proposal) (*models.Negotiation, error) {
	now := time.Now().UTC()
	newNegotiation := models.Negotiation{
		ID:              uuid.New().String(),
		ContractID:      contract.ID,
		BuyerID:         contract.BuyerID,
		ProviderID:      contract.ProviderID,
		InitialProposal: proposal,
		Status:          models.PendingNegotiation,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	insertQuery := `INSERT INTO negotiation (id, contract_id, buyer_id, provider_id, initial_price, initial_deadline, initial_notes, status, version, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newNegotiation.ID,
		newNegotiation.ContractID,
		newNegotiation.BuyerID,
		newNegotiation.ProviderID,
		newNegotiation.InitialProposal.NewPrice,
		newNegotiation.InitialProposal.NewDeadline,
		newNegotiation.InitialProposal.Notes,
		newNegotiation.Status,
		newNegotiation.Version,
		newNegotiation.CreatedAt,
		newNegotiation.UpdatedAt)
	if err != nil {
		// Частичный уникальный индекс ловит гонку двух одновременных initiate.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.NewErrorResponse(http.StatusConflict, "an active negotiation already exists for this contract")
		}
		return nil, err
	}
	return &newNegotiation, nil
}

// GetNegotiationById возвращает переговоры по ID.
func (r *PostgresNegotiationRepository) GetNegotiationById(ctx context.Context, negotiationId string) (*models.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiation WHERE id = $1`
	return scanNegotiation(r.DB.QueryRow(ctx, query, negotiationId))
}

// GetNegotiationByContract возвращает последние переговоры по контракту.
// Новые переговоры создаются только когда активных нет, поэтому самая свежая
// запись и есть активная, если такая существует.
func (r *PostgresNegotiationRepository) GetNegotiationByContract(ctx context.Context, contractId string) (*models.Negotiation, error) {
	query := `SELECT ` + negotiationColumns + ` FROM negotiation WHERE contract_id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanNegotiation(r.DB.QueryRow(ctx, query, contractId))
}

// GetNegotiationStatus возвращает статус переговоров.
func (r *PostgresNegotiationRepository) GetNegotiationStatus(ctx context.Context, negotiationId string) (*models.NegotiationStatus, error) {
	var status models.NegotiationStatus
	query := `SELECT status FROM negotiation WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, negotiationId).Scan(&status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// SaveNegotiation сохраняет новое состояние переговоров с проверкой версии.
// Если запись была изменена параллельно, обновление не затрагивает строк и
// вызов завершается конфликтом - операцию нужно повторить заново.
func (r *PostgresNegotiationRepository) SaveNegotiation(ctx context.Context, negotiation *models.Negotiation) (*models.Negotiation, error) {
	var counterPrice *decimal.Decimal
	var counterDeadline, counterNotes *string
	if negotiation.CounterProposal != nil {
		counterPrice = &negotiation.CounterProposal.NewPrice
		counterDeadline = &negotiation.CounterProposal.NewDeadline
		counterNotes = &negotiation.CounterProposal.Notes
	}

	updateQuery := `UPDATE negotiation
	                SET status = $1, counter_price = $2, counter_deadline = $3, counter_notes = $4, updated_at = $5, version = version + 1
	                WHERE id = $6 AND version = $7`
	tag, err := r.DB.Exec(
		ctx,
		updateQuery,
		negotiation.Status,
		counterPrice,
		counterDeadline,
		counterNotes,
		negotiation.UpdatedAt,
		negotiation.ID,
		negotiation.Version)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewErrorResponse(http.StatusConflict, "negotiation was modified concurrently, retry the operation")
	}

	selectQuery := `SELECT ` + negotiationColumns + ` FROM negotiation WHERE id = $1`
	return scanNegotiation(r.DB.QueryRow(ctx, selectQuery, negotiation.ID))
}

// ConfirmNegotiation сохраняет подтвержденное состояние и переносит согласованные
// условия в контракт одной транзакцией. Запись не может стать терминальной,
// пока условия не записаны в контракт, и наоборот.
func (r *PostgresNegotiationRepository) ConfirmNegotiation(ctx context.Context, negotiation *models.Negotiation) (*models.Negotiation, error) {
	agreed := negotiation.CounterProposal
	if negotiation.Status != models.ConfirmedNegotiation || agreed == nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "negotiation is not in a confirmable state")
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updateQuery := `UPDATE negotiation
	                SET status = $1, updated_at = $2, version = version + 1
	                WHERE id = $3 AND version = $4`
	tag, err := tx.Exec(ctx, updateQuery, negotiation.Status, negotiation.UpdatedAt, negotiation.ID, negotiation.Version)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewErrorResponse(http.StatusConflict, "negotiation was modified concurrently, retry the operation")
	}

	contractQuery := `UPDATE contract SET price = $1, deadline = $2, version = version + 1 WHERE id = $3`
	if _, err := tx.Exec(ctx, contractQuery, agreed.NewPrice, agreed.NewDeadline, negotiation.ContractID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	selectQuery := `SELECT ` + negotiationColumns + ` FROM negotiation WHERE id = $1`
	return scanNegotiation(r.DB.QueryRow(ctx, selectQuery, negotiation.ID))
}

// scanNegotiation читает строку переговоров вместе с необязательным встречным предложением.
func scanNegotiation(row pgx.Row) (*models.Negotiation, error) {
	var negotiation models.Negotiation
	var counterPrice *decimal.Decimal
	var counterDeadline, counterNotes *string
	err := row.Scan(
		&negotiation.ID,
		&negotiation.ContractID,
		&negotiation.BuyerID,
		&negotiation.ProviderID,
		&negotiation.InitialProposal.NewPrice,
		&negotiation.InitialProposal.NewDeadline,
		&negotiation.InitialProposal.Notes,
		&counterPrice,
		&counterDeadline,
		&counterNotes,
		&negotiation.Status,
		&negotiation.Version,
		&negotiation.CreatedAt,
		&negotiation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if counterPrice != nil && counterDeadline != nil {
		counter := models.Proposal{
			NewPrice:    *counterPrice,
			NewDeadline: *counterDeadline,
		}
		if counterNotes != nil {
			counter.Notes = *counterNotes
		}
		negotiation.CounterProposal = &counter
	}
	return &negotiation, nil
}
