package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nojaf/christmas-elm/internal/domain"
)

const maxIdentifierLength = 100

// ValidateParticipants проверяет размер списка и каждый идентификатор.
// Повторы допустимы: участники различаются позицией, а не значением.
func ValidateParticipants(ids []domain.ParticipantID, maxParticipants int) error {
	if maxParticipants > 0 && len(ids) > maxParticipants {
		return fmt.Errorf("%w: got %d, max %d", domain.ErrTooManyParticipants, len(ids), maxParticipants)
	}
	for i, id := range ids {
		if err := ValidateParticipantID(id); err != nil {
			return fmt.Errorf("%w at position %d", err, i)
		}
	}
	return nil
}

// ValidateParticipantID проверяет, что идентификатор является непустой JSON-строкой или числом.
func ValidateParticipantID(id domain.ParticipantID) error {
	dec := json.NewDecoder(bytes.NewReader(id))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return domain.ErrInvalidIdentifier
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: empty string", domain.ErrInvalidIdentifier)
		}
		if len(v) > maxIdentifierLength {
			return fmt.Errorf("%w: too long (max %d characters)", domain.ErrInvalidIdentifier, maxIdentifierLength)
		}
	case json.Number:
	default:
		return fmt.Errorf("%w: must be a string or a number", domain.ErrInvalidIdentifier)
	}
	return nil
}
