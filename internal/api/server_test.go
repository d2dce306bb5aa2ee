package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/coins"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/reorder"
	"github.com/abhisek/codekitchen/internal/session"
	"github.com/abhisek/codekitchen/internal/store"
)

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func newTestServer(t *testing.T, balance int) (*Server, *store.Store) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctrl := progression.New(cat, progression.Options{
		HintCost:        10,
		StartingBalance: balance,
		Rand:            noShuffle{},
		EventRepo:       st.EventRepo(),
		AfterFunc: func(time.Duration, func()) progression.Timer {
			return idleTimer{}
		},
	})
	return NewServer(ctrl, st.EventRepo(), nil, nil), st
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func startSession(t *testing.T, s *Server, id string) progression.View {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/sessions", map[string]string{"challengeId": id})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[progression.View](t, w)
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"foo": "bar"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	got := decode[map[string]string](t, w)
	assert.Equal(t, "bar", got["foo"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{catalog.ErrNotFound, http.StatusNotFound},
		{progression.ErrNoSession, http.StatusNotFound},
		{progression.ErrLocked, http.StatusForbidden},
		{fmt.Errorf("reorder blocks: %w", reorder.ErrInvalidMove), http.StatusBadRequest},
		{progression.ErrAckPending, http.StatusConflict},
		{session.ErrSessionComplete, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, 100)
	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListChallenges(t *testing.T) {
	s, _ := newTestServer(t, 100)

	w := do(t, s, http.MethodGet, "/api/challenges", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[challengeListResponse](t, w)
	assert.Len(t, resp.Challenges, 60)
	assert.Equal(t, 100, resp.Balance)
	assert.False(t, resp.Challenges[0].Locked)
	assert.True(t, resp.Challenges[1].Locked)
}

func TestStartSession_Errors(t *testing.T) {
	s, _ := newTestServer(t, 100)

	w := do(t, s, http.MethodPost, "/api/sessions", map[string]string{"challengeId": "2"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions", map[string]string{"challengeId": "999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveFlow(t *testing.T) {
	s, st := newTestServer(t, 100)
	v := startSession(t, s, "1")
	base := "/api/sessions/" + v.Handle

	w := do(t, s, http.MethodGet, "/api/sessions/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, v.Handle, decode[progression.View](t, w).Handle)

	w = do(t, s, http.MethodPost, base+"/reorder", map[string]int{"from": 0, "to": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[progression.View](t, w)
	assert.Equal(t, []int{0, 1, 2}, view.CorrectPositions)

	w = do(t, s, http.MethodPost, base+"/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[session.CheckResult](t, w)
	assert.Equal(t, session.OutcomeCorrect, res.Outcome)
	assert.Equal(t, "Welcome to CodeKitchen!", res.Output)
	assert.True(t, res.Completed)

	// Solved sessions wait for acknowledgment.
	w = do(t, s, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(t, s, http.MethodPost, base+"/reorder", map[string]int{"from": 0, "to": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodGet, "/api/wallet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wallet := decode[walletResponse](t, w)
	assert.Equal(t, 150, wallet.Balance)
	assert.Equal(t, 50, wallet.TotalEarned)
	assert.Equal(t, 1, wallet.Completed)
	require.Len(t, wallet.Ledger, 1)
	assert.Equal(t, store.CoinCredit, wallet.Ledger[0].Kind)

	totals, err := st.EventRepo().CoinTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, totals.Earned)
}

func TestReorder_NoTargetAndInvalid(t *testing.T) {
	s, _ := newTestServer(t, 100)
	v := startSession(t, s, "1")
	base := "/api/sessions/" + v.Handle

	w := do(t, s, http.MethodPost, base+"/reorder", map[string]any{"from": 0, "to": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[progression.View](t, w).Moves)

	w = do(t, s, http.MethodPost, base+"/reorder", map[string]int{"from": 0, "to": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, base+"/reorder", map[string]int{"to": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseHint(t *testing.T) {
	s, _ := newTestServer(t, 15)
	v := startSession(t, s, "1")
	base := "/api/sessions/" + v.Handle

	w := do(t, s, http.MethodPost, base+"/hints/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[purchaseResponse](t, w)
	assert.Equal(t, coins.Purchased, resp.Purchase.Status)
	assert.Equal(t, 5, resp.Session.Balance)
	assert.Equal(t, "Comments should come before the actual code", resp.Session.Hints[0].Text)

	// Declined purchases are not HTTP errors.
	w = do(t, s, http.MethodPost, base+"/hints/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[purchaseResponse](t, w)
	assert.Equal(t, coins.InsufficientFunds, resp.Purchase.Status)
	assert.Equal(t, 5, resp.Session.Balance)

	w = do(t, s, http.MethodPost, base+"/hints/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConceptAndDismiss(t *testing.T) {
	s, _ := newTestServer(t, 100)
	v := startSession(t, s, "1")
	base := "/api/sessions/" + v.Handle

	for i := 0; i < 3; i++ {
		w := do(t, s, http.MethodPost, fmt.Sprintf("%s/hints/%d", base, i), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(t, s, http.MethodPost, base+"/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[session.CheckResult](t, w).HintsExhausted)

	w = do(t, s, http.MethodGet, base+"/concept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cv := decode[progression.ConceptView](t, w)
	assert.True(t, cv.Available)
	assert.Equal(t, "Output", cv.Concept)

	w = do(t, s, http.MethodPost, base+"/concept/dismiss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[progression.View](t, w)
	assert.False(t, view.HintsExhausted)
	assert.Equal(t, session.OutcomePending, view.Outcome)
}

func TestResetAndLeave(t *testing.T) {
	s, _ := newTestServer(t, 100)
	v := startSession(t, s, "1")
	base := "/api/sessions/" + v.Handle

	w := do(t, s, http.MethodPost, base+"/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, s, http.MethodGet, "/api/sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/challenges", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
