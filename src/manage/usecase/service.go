package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/manage/domain"
	"github.com/MMN3003/tradedesk/src/query"
)

type (
	ChainEditor           = Editor[tradeapi.Chain, domain.ChainForm]
	DEXEditor             = Editor[tradeapi.DEX, domain.DEXForm]
	DEXRouterEditor       = Editor[tradeapi.DEXRouter, domain.DEXRouterForm]
	TradingContractEditor = Editor[tradeapi.TradingContract, domain.TradingContractForm]
)

// Service serves the catalog lists through the query cache and owns one
// editor per entity. Every successful mutation invalidates the lists it affects.
type Service struct {
	api    domain.CatalogAPI
	cache  *query.Cache
	logger *logger.Logger

	Chains    *ChainEditor
	Dexes     *DEXEditor
	Routers   *DEXRouterEditor
	Contracts *TradingContractEditor
}

func NewService(api domain.CatalogAPI, cache *query.Cache, logg *logger.Logger) *Service {
	s := &Service{api: api, cache: cache, logger: logg}

	s.Chains = NewEditor(EditorOps[tradeapi.Chain, domain.ChainForm]{
		Entity:   "chain",
		ID:       func(c tradeapi.Chain) int64 { return c.ID },
		Name:     func(c tradeapi.Chain) string { return c.Name },
		FormOf:   domain.ChainFormOf,
		FormName: func(f domain.ChainForm) string { return deref(f.Name) },
		Create: func(ctx context.Context, f domain.ChainForm) (bool, error) {
			created, err := api.CreateChain(ctx, f.CreatePayload())
			return created != nil, err
		},
		Update: func(ctx context.Context, id int64, f domain.ChainForm) (bool, error) {
			return api.UpdateChain(ctx, id, f.UpdatePayload())
		},
		Delete: api.DeleteChain,
	}, s.invalidate(query.GetChains, query.GetDexRouters, query.GetDexRoutersByChain, query.GetTradingContracts), logg)

	s.Dexes = NewEditor(EditorOps[tradeapi.DEX, domain.DEXForm]{
		Entity:   "dex",
		ID:       func(d tradeapi.DEX) int64 { return d.ID },
		Name:     func(d tradeapi.DEX) string { return d.Name },
		FormOf:   domain.DEXFormOf,
		FormName: func(f domain.DEXForm) string { return deref(f.Name) },
		Create: func(ctx context.Context, f domain.DEXForm) (bool, error) {
			created, err := api.CreateDex(ctx, f.Payload())
			return created != nil, err
		},
		Update: func(ctx context.Context, id int64, f domain.DEXForm) (bool, error) {
			return api.UpdateDex(ctx, id, f.Payload())
		},
		Delete: api.DeleteDex,
	}, s.invalidate(query.GetDexes, query.GetDexRouters, query.GetDexRoutersByChain), logg)

	s.Routers = NewEditor(EditorOps[tradeapi.DEXRouter, domain.DEXRouterForm]{
		Entity:   "router",
		ID:       func(r tradeapi.DEXRouter) int64 { return r.ID },
		Name:     func(r tradeapi.DEXRouter) string { return r.Name },
		FormOf:   domain.DEXRouterFormOf,
		FormName: func(f domain.DEXRouterForm) string { return deref(f.Name) },
		Create: func(ctx context.Context, f domain.DEXRouterForm) (bool, error) {
			created, err := api.CreateDexRouter(ctx, f.Payload())
			return created != nil, err
		},
		Update: func(ctx context.Context, id int64, f domain.DEXRouterForm) (bool, error) {
			return api.UpdateDexRouter(ctx, id, f.Payload())
		},
		Delete: api.DeleteDexRouter,
	}, s.invalidate(query.GetDexRouters, query.GetDexRoutersByChain), logg)

	s.Contracts = NewEditor(EditorOps[tradeapi.TradingContract, domain.TradingContractForm]{
		Entity:   "contract",
		ID:       func(c tradeapi.TradingContract) int64 { return c.ID },
		Name:     func(c tradeapi.TradingContract) string { return c.Name },
		FormOf:   domain.TradingContractFormOf,
		FormName: func(f domain.TradingContractForm) string { return deref(f.Name) },
		Create: func(ctx context.Context, f domain.TradingContractForm) (bool, error) {
			created, err := api.CreateTradingContract(ctx, f.Payload())
			return created != nil, err
		},
		Update: func(ctx context.Context, id int64, f domain.TradingContractForm) (bool, error) {
			return api.UpdateTradingContract(ctx, id, f.Payload())
		},
		Delete: api.DeleteTradingContract,
	}, s.invalidate(query.GetTradingContracts), logg)

	return s
}

func (s *Service) invalidate(names ...string) func() {
	return func() {
		n := s.cache.Invalidate(names...)
		s.logger.Debugf("invalidated %d cached entries of %v", n, names)
	}
}

// ---------- LISTS ----------

func (s *Service) ListChains(ctx context.Context) ([]tradeapi.Chain, error) {
	return query.Fetch(ctx, s.cache, query.Key(query.GetChains, nil), s.api.GetChains)
}

func (s *Service) ListDexes(ctx context.Context) ([]tradeapi.DEX, error) {
	return query.Fetch(ctx, s.cache, query.Key(query.GetDexes, nil), s.api.GetDexes)
}

func (s *Service) ListDexRouters(ctx context.Context) ([]tradeapi.DEXRouter, error) {
	return query.Fetch(ctx, s.cache, query.Key(query.GetDexRouters, nil), s.api.GetDexRouters)
}

// ListDexRoutersByChain returns nothing without a chain id; the query is not enabled.
func (s *Service) ListDexRoutersByChain(ctx context.Context, chainID string) ([]tradeapi.DEXRouter, error) {
	if chainID == "" {
		return nil, nil
	}
	key := query.Key(query.GetDexRoutersByChain, map[string]any{"chainId": chainID})
	return query.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]tradeapi.DEXRouter, error) {
		return s.api.GetDexRoutersByChainID(ctx, chainID)
	})
}

func (s *Service) ListTradingContracts(ctx context.Context) ([]tradeapi.TradingContract, error) {
	return query.Fetch(ctx, s.cache, query.Key(query.GetTradingContracts, nil), s.api.GetTradingContracts)
}

// ---------- LOOKUPS ----------

func (s *Service) FindChain(ctx context.Context, id int64) (tradeapi.Chain, error) {
	list, err := s.ListChains(ctx)
	return find(list, err, func(c tradeapi.Chain) bool { return c.ID == id })
}

func (s *Service) FindDex(ctx context.Context, id int64) (tradeapi.DEX, error) {
	list, err := s.ListDexes(ctx)
	return find(list, err, func(d tradeapi.DEX) bool { return d.ID == id })
}

func (s *Service) FindDexRouter(ctx context.Context, id int64) (tradeapi.DEXRouter, error) {
	list, err := s.ListDexRouters(ctx)
	return find(list, err, func(r tradeapi.DEXRouter) bool { return r.ID == id })
}

func (s *Service) FindTradingContract(ctx context.Context, id int64) (tradeapi.TradingContract, error) {
	list, err := s.ListTradingContracts(ctx)
	return find(list, err, func(c tradeapi.TradingContract) bool { return c.ID == id })
}

func find[T any](list []T, err error, match func(T) bool) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	for _, it := range list {
		if match(it) {
			return it, nil
		}
	}
	return zero, domain.ErrNotFound
}

// ---------- HELPERS ----------

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// pascalCase turns "router02" into "Router02" and "some-type" into "SomeType".
func pascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		runes := []rune(w)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}
