package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractRepository - интерфейс для работы с контрактами.
type ContractRepository interface {
	CreateContract(ctx context.Context, contractReq models.ContractRequest) (*models.Contract, error)
	GetContractById(ctx context.Context, contractId string) (*models.Contract, error)
	GetUserContracts(ctx context.Context, limit, offset int, userId string) ([]models.Contract, error)
}

// PostgresContractRepository - реализация ContractRepository для базы данных.
type PostgresContractRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresContractRepository создает новый экземпляр PostgresContractRepository.
func NewPostgresContractRepository(db *pgxpool.Pool) *PostgresContractRepository {
	return &PostgresContractRepository{DB: db}
}

// CreateContract создает новый контракт.
func (r *PostgresContractRepository) CreateContract(ctx context.Context, contractReq models.ContractRequest) (*models.Contract, error) {
	newContract := models.Contract{
		ID:          uuid.New().String(),
		Title:       contractReq.Title,
		Description: contractReq.Description,
		BuyerID:     contractReq.BuyerID,
		ProviderID:  contractReq.ProviderID,
		Price:       contractReq.Price,
		Deadline:    contractReq.Deadline,
		Status:      models.ActiveContract,
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}
	insertQuery := `INSERT INTO contract (id, title, description, buyer_id, provider_id, price, deadline, status, version, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newContract.ID,
		newContract.Title,
		newContract.Description,
		newContract.BuyerID,
		newContract.ProviderID,
		newContract.Price,
		newContract.Deadline,
		newContract.Status,
		newContract.Version,
		newContract.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contract: %w", err)
	}
	return &newContract, nil
}

// GetContractById возвращает контракт по ID.
func (r *PostgresContractRepository) GetContractById(ctx context.Context, contractId string) (*models.Contract, error) {
	var contract models.Contract
	query := `SELECT id, title, description, buyer_id, provider_id, price, deadline, status, version, created_at
	          FROM contract WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, contractId).Scan(
		&contract.ID,
		&contract.Title,
		&contract.Description,
		&contract.BuyerID,
		&contract.ProviderID,
		&contract.Price,
		&contract.Deadline,
		&contract.Status,
		&contract.Version,
		&contract.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// GetUserContracts возвращает список контрактов, где пользователь выступает одной из сторон.
func (r *PostgresContractRepository) GetUserContracts(ctx context.Context, limit, offset int, userId string) ([]models.Contract, error) {
	query := `SELECT id, title, description, buyer_id, provider_id, price, deadline, status, version, created_at
	          FROM contract
	          WHERE buyer_id = $1 OR provider_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var contract models.Contract
		if err := rows.Scan(
			&contract.ID,
			&contract.Title,
			&contract.Description,
			&contract.BuyerID,
			&contract.ProviderID,
			&contract.Price,
			&contract.Deadline,
			&contract.Status,
			&contract.Version,
			&contract.CreatedAt); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, nil
}
