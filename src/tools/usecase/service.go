package usecase

import (
	"time"

	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/query"
	"github.com/MMN3003/tradedesk/src/tools/domain"
)

type Options struct {
	BalanceInterval     time.Duration
	SnipeInterval       time.Duration
	SnipeStopOnTerminal bool
}

// Service groups the tools of the console around one shared selector.
type Service struct {
	Config *Configuration
	Swap   *SwapTool
	Snipes *Snipes
}

func NewService(api domain.ToolsAPI, routers domain.RouterLister, cache *query.Cache, scheduler query.Scheduler, logg *logger.Logger, opts Options) *Service {
	cfg := NewConfiguration(api, routers, cache, scheduler, logg, opts.BalanceInterval)
	tracker := NewTracker(api, cache, scheduler, logg, opts.SnipeInterval, opts.SnipeStopOnTerminal)
	return &Service{
		Config: cfg,
		Swap:   NewSwapTool(cfg, api, cache, logg),
		Snipes: NewSnipes(cfg, api, cache, tracker, logg),
	}
}

// Stop ends every subscription the tools hold. Called on logout and shutdown.
func (s *Service) Stop() {
	s.Snipes.Tracker.Stop()
	s.Config.Deselect()
}
