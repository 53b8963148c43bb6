package generation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nojaf/christmas-elm/internal/domain"
	"github.com/nojaf/christmas-elm/internal/http/handler/common"
)

type request struct {
	IDs  []json.RawMessage `json:"ids"`
	Seed *int64            `json:"seed"`
}

// Handler реализует POST /generation.
type Handler struct {
	useCase      UseCase
	maxBodyBytes int64
}

func New(useCase UseCase, maxBodyBytes int64) *Handler {
	return &Handler{useCase: useCase, maxBodyBytes: maxBodyBytes}
}

func (h *Handler) Register(router chi.Router) {
	router.Post("/generation", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.NewHTTPError(http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "тело запроса слишком большое")
		}
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	// Пустой массив допустим, отсутствующее поле нет
	if req.IDs == nil {
		return common.NewBadRequestError("VALIDATION_ERROR", "поле ids обязательно")
	}

	resp, err := h.useCase.Generate(r.Context(), domain.GenerationRequest{IDs: req.IDs, Seed: req.Seed})
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, resp)
	return nil
}
