package domain

import (
	"errors"
	"strings"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/console"
)

var (
	ErrNoContract    = errors.New("no trading contract selected")
	ErrNoRouter      = errors.New("no dex router selected")
	ErrUnknownRouter = errors.New("router is not available for the selected contract")
	ErrNotApproved   = errors.New("contract and WETH must both be approved")
	ErrBusy          = errors.New("action already in progress")
	ErrNotFound      = errors.New("snipe not found")
)

// ApprovalState is the state of one approval leg.
type ApprovalState string

const (
	ApprovalUnknown     ApprovalState = "UNKNOWN"
	ApprovalApproved    ApprovalState = "APPROVED"
	ApprovalNotApproved ApprovalState = "NOT_APPROVED"
)

func ApprovalOf(approved bool) ApprovalState {
	if approved {
		return ApprovalApproved
	}
	return ApprovalNotApproved
}

// ---------- SWAP SETTINGS ----------

type SwapSettingsForm struct {
	GasPrice *string  `json:"gasPrice" validate:"required"`
	GasLimit *string  `json:"gasLimit" validate:"required,numeric"`
	Slippage *float64 `json:"slippage" validate:"required"`
}

func (f SwapSettingsForm) Payload() tradeapi.TradingContractPayload {
	return tradeapi.TradingContractPayload{GasPrice: f.GasPrice, GasLimit: f.GasLimit, Slippage: f.Slippage}
}

// SwapSettingsOf pre-fills the form from the selected contract.
func SwapSettingsOf(c tradeapi.TradingContract) SwapSettingsForm {
	return SwapSettingsForm{GasPrice: c.GasPrice, GasLimit: c.GasLimit, Slippage: c.Slippage}
}

type SwapForm struct {
	ExactAmountIn string `json:"exactAmountIn" validate:"required,amount"`
}

type SnipeForm struct {
	SnipedAmountOut string `json:"snipedAmountOut" validate:"required,amount"`
	ExactAmountIn   string `json:"exactAmountIn" validate:"required,amount"`
}

// ---------- SNIPE STATUS ----------

// StatusView is how a snipe status is shown.
type StatusView struct {
	Label string        `json:"label"`
	Color console.Color `json:"color"`
}

var statusViews = map[tradeapi.SnipeStatus]StatusView{
	tradeapi.SnipeInit:     {Label: "Initiating", Color: console.Info},
	tradeapi.SnipeSniping:  {Label: "Snipping", Color: console.Primary},
	tradeapi.SnipeSwapping: {Label: "Swapping", Color: console.Info},
	tradeapi.SnipeDone:     {Label: "Success", Color: console.Success},
	tradeapi.SnipeError:    {Label: "Failed", Color: console.Danger},
}

// ViewOf returns the label and colour of status; ok is false for codes the console does not know.
func ViewOf(status tradeapi.SnipeStatus) (StatusView, bool) {
	v, ok := statusViews[status]
	return v, ok
}

// LogLines splits a snipe transcript into its lines, in order.
func LogLines(logs *string) []string {
	if logs == nil || *logs == "" {
		return nil
	}
	return strings.Split(*logs, "\n")
}

// SnipeUpdate is one observation of a tracked snipe.
type SnipeUpdate struct {
	SnipeID  int64                `json:"snipeId"`
	Status   tradeapi.SnipeStatus `json:"status"`
	Label    string               `json:"label"`
	Color    string               `json:"color"`
	Data     string               `json:"data"`
	Lines    []string             `json:"lines"`
	Terminal bool                 `json:"terminal"`
}

func NewSnipeUpdate(id int64, d tradeapi.SnipeData) SnipeUpdate {
	u := SnipeUpdate{
		SnipeID:  id,
		Status:   d.Status,
		Data:     d.Data,
		Lines:    LogLines(d.Logs),
		Terminal: d.Status.Terminal(),
	}
	if v, ok := ViewOf(d.Status); ok {
		u.Label = v.Label
		u.Color = v.Color.Code
	}
	return u
}
