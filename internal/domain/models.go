package domain

import (
	"encoding/json"
	"time"
)

// ParticipantID непрозрачный идентификатор участника: JSON-строка или число.
// Значение передаётся насквозь в том виде, в каком пришло.
type ParticipantID = json.RawMessage

// GenerationRequest запрос на жеребьёвку.
type GenerationRequest struct {
	IDs []ParticipantID `json:"ids"`
	// Seed делает результат воспроизводимым. Без него используется общий генератор сервиса.
	Seed *int64 `json:"seed,omitempty"`
}

// GenerationResponse результат жеребьёвки.
// IDs[i] получает подарок от участника, стоявшего в запросе на позиции i.
type GenerationResponse struct {
	IDs         []ParticipantID `json:"ids"`
	Pairs       []Pair          `json:"pairs"`
	Attempts    int             `json:"attempts"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Pair связывает дарителя и получателя.
type Pair struct {
	Giver    ParticipantID `json:"giver"`
	Receiver ParticipantID `json:"receiver"`
}
