package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/annsmirn/negotiation-service/internal/models"
	"github.com/annsmirn/negotiation-service/internal/repository"
	"github.com/annsmirn/negotiation-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserService struct {
	Repo   repository.UserRepository
	dbPool *pgxpool.Pool
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo repository.UserRepository, dbPool *pgxpool.Pool) *UserService {
	return &UserService{Repo: repo, dbPool: dbPool}
}

// CreateUser регистрирует нового пользователя.
func (s *UserService) CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error) {
	if userReq.Username == "" || len(userReq.Roles) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}

	allowedRoles := map[models.UserRole]bool{
		models.Buyer:      true,
		models.Provider:   true,
		models.Advertiser: true,
	}
	seen := make(map[models.UserRole]bool)
	for _, role := range userReq.Roles {
		if !allowedRoles[role] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported role: %s", role))
		}
		if seen[role] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("duplicate role: %s", role))
		}
		seen[role] = true
	}

	usernameTaken, err := utils.CheckUsernameTaken(ctx, s.dbPool, userReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if usernameTaken {
		return nil, models.NewErrorResponse(http.StatusConflict, "username is already taken")
	}
	return s.Repo.CreateUser(ctx, userReq)
}

// GetUser возвращает пользователя вместе с производным булевым представлением ролей.
func (s *UserService) GetUser(ctx context.Context, userId string) (*models.UserResponse, error) {
	if userId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: userId")
	}

	user, err := s.Repo.GetUserById(ctx, userId)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "user not found")
	}
	return &models.UserResponse{
		User:      *user,
		RoleFlags: models.ProjectRoleFlags(user.Roles),
	}, nil
}
