package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/coins"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/reorder"
	"github.com/abhisek/codekitchen/internal/store"
)

// recentLedgerSize bounds the coin events returned with the wallet.
const recentLedgerSize = 20

type challengeListResponse struct {
	Challenges []challenge.Summary `json:"challenges"`
	Balance    int                 `json:"balance"`
}

type startRequest struct {
	ChallengeID string `json:"challengeId"`
}

// reorderRequest moves a block. A null or missing To means the block was
// dropped outside any target.
type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type purchaseResponse struct {
	Session  progression.View     `json:"session"`
	Purchase coins.PurchaseResult `json:"purchase"`
}

type walletResponse struct {
	progression.WalletView
	Ledger []ledgerEntry `json:"ledger,omitempty"`
}

type ledgerEntry struct {
	Kind         string    `json:"kind"`
	Amount       int       `json:"amount"`
	BalanceAfter int       `json:"balanceAfter"`
	Reason       string    `json:"reason"`
	ChallengeID  string    `json:"challengeId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListChallenges(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, challengeListResponse{
		Challenges: s.ctrl.ListChallenges(),
		Balance:    s.ctrl.CurrentCoinBalance(),
	})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	resp := walletResponse{WalletView: s.ctrl.Wallet()}

	if s.journal != nil {
		events, err := s.journal.QueryCoinEvents(r.Context(), store.QueryOpts{Limit: recentLedgerSize})
		if err != nil {
			s.logger.Warn("query coin ledger", "error", err)
		}
		for _, e := range events {
			resp.Ledger = append(resp.Ledger, ledgerEntry{
				Kind:         e.Kind,
				Amount:       e.Amount,
				BalanceAfter: e.BalanceAfter,
				Reason:       e.Reason,
				ChallengeID:  e.ChallengeID,
				Timestamp:    e.Timestamp,
			})
		}
	}
	JSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == "" {
		Error(w, http.StatusBadRequest, "challengeId is required")
		return
	}

	view, err := s.ctrl.StartChallenge(r.Context(), req.ChallengeID)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusCreated, view)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, _ *http.Request) {
	view, err := s.ctrl.Current()
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.ctrl.Session(chi.URLParam(r, "handle"))
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

func (s *Server) handleLeaveSession(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Leave(r.Context(), chi.URLParam(r, "handle")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.From == nil {
		Error(w, http.StatusBadRequest, "from is required")
		return
	}
	to := reorder.NoTarget
	if req.To != nil {
		to = *req.To
	}

	view, err := s.ctrl.Reorder(r.Context(), chi.URLParam(r, "handle"), *req.From, to)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

func (s *Server) handlePurchaseHint(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		Error(w, http.StatusBadRequest, "hint index must be an integer")
		return
	}

	view, res, err := s.ctrl.PurchaseHint(r.Context(), chi.URLParam(r, "handle"), index)
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, purchaseResponse{Session: view, Purchase: res})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	res, err := s.ctrl.CheckSolution(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.ctrl.ResetChallenge(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, view)
}

func (s *Server) handleConcept(w http.ResponseWriter, r *http.Request) {
	cv, err := s.ctrl.Concept(chi.URLParam(r, "handle"))
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, cv)
}

func (s *Server) handleDismissConcept(w http.ResponseWriter, r *http.Request) {
	view, err := s.ctrl.DismissConcept(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		fail(w, err)
		return
	}
	JSON(w, http.StatusOK, view)
}
