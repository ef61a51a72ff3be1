package repository

import (
	"context"
	"time"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error)
	GetUserById(ctx context.Context, userId string) (*models.User, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser регистрирует нового пользователя с каноническим набором ролей.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error) {
	newUser := models.User{
		ID:        uuid.New().String(),
		Username:  userReq.Username,
		Roles:     userReq.Roles,
		CreatedAt: time.Now().UTC(),
	}
	roles := make([]string, 0, len(newUser.Roles))
	for _, role := range newUser.Roles {
		roles = append(roles, string(role))
	}
	insertQuery := `INSERT INTO users (id, username, roles, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(ctx, insertQuery, newUser.ID, newUser.Username, pq.Array(roles), newUser.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

// GetUserById возвращает пользователя по ID.
func (r *PostgresUserRepository) GetUserById(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	var roles []string
	query := `SELECT id, username, roles, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userId).Scan(
		&user.ID,
		&user.Username,
		&roles,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Roles = make([]models.UserRole, 0, len(roles))
	for _, role := range roles {
		user.Roles = append(user.Roles, models.UserRole(role))
	}
	return &user, nil
}
