package console

import (
	"embed"
	"html/template"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates. Engines install them with SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type Theme struct {
	Primary, Secondary, Success, Info, Warning, Danger, Dark, Light Color
}

func DefaultTheme() Theme {
	return Theme{
		Primary:   Primary,
		Secondary: Secondary,
		Success:   Success,
		Info:      Info,
		Warning:   Warning,
		Danger:    Danger,
		Dark:      Dark,
		Light:     Light,
	}
}

// PageData feeds every template.
type PageData struct {
	Title   string
	User    *tradeapi.User
	Menu    []MenuSection
	Colors  Theme
	Sources []string
	Error   string
}

func NewPageData(title string, user *tradeapi.User, sources ...string) PageData {
	return PageData{
		Title:   title,
		User:    user,
		Menu:    Menu(),
		Colors:  DefaultTheme(),
		Sources: sources,
	}
}

// pageSources lists the console endpoints each page reads.
var pageSources = map[string][]string{
	"manage/chains":             {"/api/chains"},
	"manage/dexes":              {"/api/dexes"},
	"manage/dex-routers":        {"/api/dex-routers"},
	"manage/contracts":          {"/api/trading-contracts"},
	"tools/snipe-eth-to-tokens": {"/api/tools/config", "/api/tools/snipes", "/api/tools/snipes/stream"},
	"tools/swap-eth-to-tokens":  {"/api/tools/config", "/api/tools/swap"},
}
