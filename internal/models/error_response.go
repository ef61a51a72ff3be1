package models

// ErrorResponse описывает ошибку с HTTP-кодом и причиной.
// Каждый исход из таксономии ошибок переговоров строится ровно в одном месте,
// поэтому обработчик сопоставляет код детерминированно.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
