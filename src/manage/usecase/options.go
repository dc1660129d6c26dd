package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/manage/domain"
)

func (s *Service) ChainOptions(ctx context.Context) ([]domain.Option, error) {
	chains, err := s.ListChains(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Option, 0, len(chains))
	for _, c := range chains {
		out = append(out, domain.Option{Label: c.Name, Value: c.ChainID})
	}
	return out, nil
}

func (s *Service) DexOptions(ctx context.Context) ([]domain.Option, error) {
	dexes, err := s.ListDexes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Option, 0, len(dexes))
	for _, d := range dexes {
		out = append(out, domain.Option{Label: d.Name, Value: strconv.FormatInt(d.ID, 10)})
	}
	return out, nil
}

// DexRouterOptions lists every router, or those of one chain when chainID is set.
func (s *Service) DexRouterOptions(ctx context.Context, chainID string) ([]domain.Option, error) {
	var (
		routers []tradeapi.DEXRouter
		err     error
	)
	if chainID != "" {
		routers, err = s.ListDexRoutersByChain(ctx, chainID)
	} else {
		routers, err = s.ListDexRouters(ctx)
	}
	if err != nil {
		return nil, err
	}
	return RouterOptions(routers), nil
}

// RouterOptions labels routers as "<name> - <chain> - <Type>".
func RouterOptions(routers []tradeapi.DEXRouter) []domain.Option {
	out := make([]domain.Option, 0, len(routers))
	for _, r := range routers {
		out = append(out, domain.Option{
			Label: fmt.Sprintf("%s - %s - %s", r.Name, r.Chain.Name, pascalCase(string(r.Type))),
			Value: strconv.FormatInt(r.ID, 10),
		})
	}
	return out
}

func (s *Service) TradingContractOptions(ctx context.Context) ([]domain.Option, error) {
	contracts, err := s.ListTradingContracts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Option, 0, len(contracts))
	for _, c := range contracts {
		chainName := ""
		if c.Chain != nil {
			chainName = c.Chain.Name
		}
		out = append(out, domain.Option{
			Label: fmt.Sprintf("%s (%s) - %s", c.Name, c.Symbol, chainName),
			Value: strconv.FormatInt(c.ID, 10),
		})
	}
	return out, nil
}
