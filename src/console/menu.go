package console

type MenuItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Path string `json:"path"`
	Icon Icon   `json:"icon"`
}

type MenuSection struct {
	ID    string     `json:"id"`
	Text  string     `json:"text"`
	Items []MenuItem `json:"items"`
}

// Menu returns the navigation of the console.
func Menu() []MenuSection {
	return []MenuSection{
		{
			ID:   "section-data",
			Text: "Data",
			Items: []MenuItem{
				{ID: "chains", Text: "Chains", Path: "manage/chains", Icon: IconAllInclusive},
				{ID: "dexes", Text: "DEXes", Path: "manage/dexes", Icon: IconDashboard},
				{ID: "dex-routers", Text: "DEX Routers", Path: "manage/dex-routers", Icon: IconRouter},
				{ID: "contracts", Text: "Contracts", Path: "manage/contracts", Icon: IconBook},
			},
		},
		{
			ID:   "section-tools",
			Text: "Tools",
			Items: []MenuItem{
				{ID: "tool-snipe-eth-to-tokens", Text: "Snipe > ETH to Tokens", Path: "tools/snipe-eth-to-tokens", Icon: IconAPI},
				{ID: "tool-swap-eth-to-tokens", Text: "Swap ETH to Tokens", Path: "tools/swap-eth-to-tokens", Icon: IconSwapHoriz},
			},
		},
	}
}

// FindPage returns the menu entry served at path, without the leading slash.
func FindPage(path string) (MenuItem, bool) {
	for _, s := range Menu() {
		for _, it := range s.Items {
			if it.Path == path {
				return it, true
			}
		}
	}
	return MenuItem{}, false
}
