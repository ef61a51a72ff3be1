package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/annsmirn/negotiation-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// CheckUserExistsById проверяет, существует ли пользователь по полю id
func CheckUserExistsById(ctx context.Context, dbPool *pgxpool.Pool, userId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, userId).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckUsernameTaken проверяет, занято ли имя пользователя
func CheckUsernameTaken(ctx context.Context, dbPool *pgxpool.Pool, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := dbPool.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CheckUserHasRole проверяет, есть ли у пользователя указанная роль
func CheckUserHasRole(ctx context.Context, dbPool *pgxpool.Pool, userId string, role models.UserRole) (bool, error) {
	var hasRole bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND $2 = ANY(roles))`
	err := dbPool.QueryRow(ctx, query, userId, string(role)).Scan(&hasRole)
	if err != nil {
		return false, err
	}
	return hasRole, nil
}

// CheckActiveNegotiationExists проверяет, есть ли по контракту незавершенные переговоры
func CheckActiveNegotiationExists(ctx context.Context, dbPool *pgxpool.Pool, contractId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM negotiation WHERE contract_id = $1 AND status IN ($2, $3))`
	err := dbPool.QueryRow(ctx, query, contractId, models.PendingNegotiation, models.CounteredNegotiation).Scan(&exists)
	return exists, err
}

// ContainsStatus - функция для проверки исходного состояния перехода
func ContainsStatus(validSources []models.NegotiationStatus, status models.NegotiationStatus) bool {
	for _, validStatus := range validSources {
		if validStatus == status {
			return true
		}
	}
	return false
}
