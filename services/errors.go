package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	// Ресурсы
	ErrDivisionNotFound     = errors.New("division not found")
	ErrBracketNotFound      = errors.New("bracket for this division not found")
	ErrRegistrationNotFound = errors.New("team registration not found")

	// Бизнес-правила регистрации
	ErrRegistrationNotOpen  = errors.New("division registration is not open")
	ErrDivisionFull         = errors.New("division registration is full")
	ErrRegistrationConflict = errors.New("captain is already registered in this division")
	ErrRosterSizeMismatch   = errors.New("roster size does not match the division team size")
	ErrTownHallNotAllowed   = errors.New("player town hall level is not allowed in this division")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
)
