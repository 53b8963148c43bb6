package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nojaf/christmas-elm/internal/domain"
	"github.com/nojaf/christmas-elm/internal/http/handler/common"
)

type stubUseCase struct {
	got  domain.GenerationRequest
	resp domain.GenerationResponse
	err  error
}

func (s *stubUseCase) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResponse, error) {
	s.got = req
	return s.resp, s.err
}

func newRouter(useCase UseCase, maxBodyBytes int64) chi.Router {
	router := chi.NewRouter()
	New(useCase, maxBodyBytes).Register(router)
	return router
}

func serve(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generation", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr common.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr.Error.Code
}

func TestHandler_RequiresIDs(t *testing.T) {
	t.Parallel()

	rec := serve(t, newRouter(&stubUseCase{}, 0), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHandler_RejectsMalformedBody(t *testing.T) {
	t.Parallel()

	rec := serve(t, newRouter(&stubUseCase{}, 0), `{"ids": [1, 2`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_BODY", errorCode(t, rec))
}

func TestHandler_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	body := `{"ids": ["` + strings.Repeat("x", 256) + `"]}`
	rec := serve(t, newRouter(&stubUseCase{}, 64), body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "BODY_TOO_LARGE", errorCode(t, rec))
}

func TestHandler_PassesPayload(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	useCase := &stubUseCase{resp: domain.GenerationResponse{
		IDs:         []domain.ParticipantID{json.RawMessage(`2`), json.RawMessage(`"alice"`)},
		Pairs:       []domain.Pair{},
		Attempts:    1,
		GeneratedAt: at,
	}}

	rec := serve(t, newRouter(useCase, 1024), `{"ids": ["alice", 2], "seed": 7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, useCase.got.IDs, 2)
	require.JSONEq(t, `"alice"`, string(useCase.got.IDs[0]))
	require.JSONEq(t, `2`, string(useCase.got.IDs[1]))
	require.NotNil(t, useCase.got.Seed)
	require.Equal(t, int64(7), *useCase.got.Seed)

	require.JSONEq(t,
		`{"ids": [2, "alice"], "pairs": [], "attempts": 1, "generated_at": "2024-12-01T00:00:00Z"}`,
		rec.Body.String())
}

func TestHandler_AcceptsEmptyList(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{resp: domain.GenerationResponse{IDs: []domain.ParticipantID{}, Pairs: []domain.Pair{}}}
	rec := serve(t, newRouter(useCase, 0), `{"ids": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, useCase.got.IDs)
	require.Empty(t, useCase.got.IDs)
	require.Nil(t, useCase.got.Seed)
}

func TestHandler_MapsDomainErrors(t *testing.T) {
	t.Parallel()

	rec := serve(t, newRouter(&stubUseCase{err: domain.ErrNoDerangement}, 0), `{"ids": ["alice"]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "NO_DERANGEMENT", errorCode(t, rec))
}
