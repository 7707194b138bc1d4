package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (оборачивание ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Фабричные ФУНКЦИИ (создание новых ошибок)
// =========================================================================

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для недопустимых переходов статуса (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (частые, статичные ошибки)
// =========================================================================

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Bookings ---

// ErrInvalidBookingTransition - переход статуса брони не разрешен.
var ErrInvalidBookingTransition = New(
	CodeInvalidStatus,
	"booking",
	"Operation not allowed for the current booking status",
	http.StatusConflict,
)

// ErrNotBookingParticipant - пользователь не участвует в этой брони.
var ErrNotBookingParticipant = New(
	CodeForbidden,
	"booking",
	"Access to this booking is denied",
	http.StatusForbidden,
)

// --- Reviews ---

// ErrReviewAlreadyExists - для этой брони отзыв уже оставлен.
var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"A review for this booking already exists",
	http.StatusConflict,
)

// ErrBookingNotCompleted - отзыв можно оставить только по завершенной брони.
var ErrBookingNotCompleted = New(
	CodeInvalidStatus,
	"review",
	"Reviews are only allowed for completed bookings",
	http.StatusConflict,
)

// ErrReviewNotPending - модерация возможна только для отзывов в статусе pending.
var ErrReviewNotPending = New(
	CodeInvalidStatus,
	"review",
	"Review has already been moderated",
	http.StatusConflict,
)

// --- Auth ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password does not meet the minimum requirements",
	http.StatusBadRequest,
)

// ErrEmailTaken - email уже зарегистрирован.
var ErrEmailTaken = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)

// ErrInvalidCredentialsError - неверная пара email/пароль.
var ErrInvalidCredentialsError = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidRefreshToken - refresh-токен не найден или просрочен.
var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired refresh token",
	http.StatusUnauthorized,
)
