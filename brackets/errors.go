package brackets

import "errors"

// Закрытый набор ошибок движка. Транзиентного класса нет: движок не делает
// ввода-вывода, все отказы — это ошибки входных данных вызывающей стороны,
// кроме ErrPropagationStalled, которая сигнализирует о нарушении инварианта.
var (
	ErrInsufficientEntrants = errors.New("at least two registrations are required to build a bracket")
	ErrMatchNotFound        = errors.New("bracket match not found")
	ErrInvalidSlot          = errors.New("winner slot must be 0 or 1")
	ErrCompetitorNotReady   = errors.New("selected competitor slot has no resolved competitor")
	ErrWinnerConflict       = errors.New("match already has a different winner recorded")

	// ErrPropagationStalled means the hydration fixpoint was not reached
	// within the pass limit. The bracket graph is a DAG ordered by rounds,
	// so seeing this indicates corrupted slot references.
	ErrPropagationStalled = errors.New("bracket propagation did not reach a fixpoint")
)
