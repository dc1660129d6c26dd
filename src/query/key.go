package query

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the cached backend queries.
const (
	GetChains            = "get-chains"
	GetDexes             = "get-dexes"
	GetDexRouters        = "get-dex-routers"
	GetDexRoutersByChain = "get-dex-routers-by-chain"
	GetTradingContracts  = "get-trading-contracts"
	GetWallet            = "get-wallet"
	GetBalance           = "get-balance"
	GetErc20Balance      = "get-erc20-balance"
	GetSnipes            = "get-snipes"
	GetSnipeData         = "get-snipe-data"
)

// Key addresses one query: "<name>?k=v&k2=v2" with parameters sorted by name.
// A query without parameters still carries the trailing "?".
func Key(name string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return name + "?" + strings.Join(parts, "&")
}
