package usecase

import (
	"context"
	"sync"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/validation"
)

// Snipes is the snipe workspace of the selected contract: a list mode and a
// tracking mode showing one snipe's live data.
type Snipes struct {
	cfg     *Configuration
	api     domain.ToolsAPI
	cache   *query.Cache
	logger  *logger.Logger
	Tracker *Tracker

	mu         sync.Mutex
	submitting bool
}

func NewSnipes(cfg *Configuration, api domain.ToolsAPI, cache *query.Cache, tracker *Tracker, logg *logger.Logger) *Snipes {
	return &Snipes{cfg: cfg, api: api, cache: cache, Tracker: tracker, logger: logg}
}

func snipesKey(contractID int64) string {
	return query.Key(query.GetSnipes, map[string]any{"contractId": contractID})
}

// Submit creates a snipe and starts tracking it. Without a selected contract
// and router or with an approval missing it does nothing and returns false.
func (s *Snipes) Submit(ctx context.Context, form domain.SnipeForm) (bool, error) {
	contract, router := s.cfg.Selection()
	if contract == nil || router == nil || !s.cfg.CanProceed() {
		return false, nil
	}
	if err := validation.Struct(form); err != nil {
		return false, err
	}
	amountOut, err := amountOf("snipedAmountOut", form.SnipedAmountOut, int32(contract.Decimals))
	if err != nil {
		return false, err
	}
	amountIn, err := amountOf("exactAmountIn", form.ExactAmountIn, ethDecimals)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return false, domain.ErrBusy
	}
	s.submitting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	id, err := s.api.SnipeSwapEthToTokens(ctx, tradeapi.SnipeAction{
		ContractID:      contract.ID,
		RouterID:        router.ID,
		SnipedAmountOut: amountOut,
		ExactAmountIn:   amountIn,
	})
	if err != nil {
		return false, err
	}
	if id <= 0 {
		return false, nil
	}

	snipe, err := s.api.GetSnipeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if snipe == nil {
		return false, tradeapi.Rejected("Snipe %d not found", id)
	}
	s.cache.Invalidate(query.GetSnipes)
	s.Tracker.Track(*snipe)
	s.logger.Infof("tools: snipe %d created for contract %d", id, contract.ID)
	return true, nil
}

// List returns the snipes of the selected contract, nothing without one.
func (s *Snipes) List(ctx context.Context) ([]tradeapi.Snipe, error) {
	contract, _ := s.cfg.Selection()
	if contract == nil {
		return nil, nil
	}
	return query.Fetch(ctx, s.cache, snipesKey(contract.ID), func(ctx context.Context) ([]tradeapi.Snipe, error) {
		return s.api.GetSnipesByContractID(ctx, contract.ID)
	})
}

// Find looks a snipe up in the selected contract's list.
func (s *Snipes) Find(ctx context.Context, id int64) (tradeapi.Snipe, error) {
	list, err := s.List(ctx)
	if err != nil {
		return tradeapi.Snipe{}, err
	}
	for _, sn := range list {
		if sn.ID == id {
			return sn, nil
		}
	}
	return tradeapi.Snipe{}, domain.ErrNotFound
}

// View switches to tracking snipe.
func (s *Snipes) View(snipe tradeapi.Snipe) {
	s.Tracker.Track(snipe)
}

// BackToList stops tracking and drops the cached list so it is fetched again.
func (s *Snipes) BackToList() {
	s.Tracker.Stop()
	s.cache.Invalidate(query.GetSnipes)
}

// Delete removes a failed snipe. Snipes in any other status are left alone
// and the backend is not called.
func (s *Snipes) Delete(ctx context.Context, snipe tradeapi.Snipe) (bool, error) {
	if snipe.Status != tradeapi.SnipeError {
		return false, nil
	}
	ok, err := s.api.DeleteSnipe(ctx, snipe.ID)
	if err != nil {
		return false, err
	}
	if ok {
		s.cache.Invalidate(query.GetSnipes)
	}
	return ok, nil
}

type SnipesSnapshot struct {
	Mode       string              `json:"mode"`
	Submitting bool                `json:"submitting"`
	Snipe      *tradeapi.Snipe     `json:"snipe,omitempty"`
	Latest     *domain.SnipeUpdate `json:"latest,omitempty"`
	Polling    bool                `json:"polling"`
	Statuses   []SnipeStatusOption `json:"statuses"`
}

type SnipeStatusOption struct {
	Status tradeapi.SnipeStatus `json:"status"`
	domain.StatusView
}

func (s *Snipes) Snapshot() SnipesSnapshot {
	s.mu.Lock()
	snap := SnipesSnapshot{Mode: "list", Submitting: s.submitting}
	s.mu.Unlock()

	if tracked := s.Tracker.Tracking(); tracked != nil {
		snap.Mode = "tracking"
		snap.Snipe = tracked
		if u, ok := s.Tracker.Latest(); ok {
			snap.Latest = &u
		}
		snap.Polling = s.Tracker.Polling()
	}
	for _, st := range []tradeapi.SnipeStatus{tradeapi.SnipeInit, tradeapi.SnipeSniping, tradeapi.SnipeSwapping, tradeapi.SnipeDone, tradeapi.SnipeError} {
		v, _ := domain.ViewOf(st)
		snap.Statuses = append(snap.Statuses, SnipeStatusOption{Status: st, StatusView: v})
	}
	return snap
}
