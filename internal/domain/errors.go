package domain

import "errors"

// Доменные ошибки, используемые для обработки бизнес-логики.
// Эти ошибки преобразуются в HTTP-ответы в слое обработчиков.
var (
	ErrNoDerangement       = errors.New("no derangement possible for a single participant") // Один участник не может дарить сам себе.
	ErrTooManyParticipants = errors.New("too many participants")                            // Превышен limits.max_participants.
	ErrInvalidIdentifier   = errors.New("invalid participant identifier")                   // Идентификатор не строка и не число.
)
