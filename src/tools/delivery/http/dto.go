// Package http exposes the swap and snipe tools under /api/tools.
package http

import (
	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/tools/usecase"
)

// SelectContractRequestBody picks the trading contract the tools work on.
// swagger:model SelectContractRequestBody
type SelectContractRequestBody struct {
	ContractID int64 `json:"contractId" binding:"required,gt=0" example:"1"`
}

// SelectRouterRequestBody picks one router of the contract's chain.
// swagger:model SelectRouterRequestBody
type SelectRouterRequestBody struct {
	RouterID int64 `json:"routerId" binding:"required,gt=0" example:"2"`
}

// TrackSnipeRequestBody switches the snipe workspace to one snipe.
// swagger:model TrackSnipeRequestBody
type TrackSnipeRequestBody struct {
	SnipeID int64 `json:"snipeId" binding:"required,gt=0" example:"7"`
}

// SwapSettingsRequestBody is the swap settings form.
// swagger:model SwapSettingsRequestBody
type SwapSettingsRequestBody = domain.SwapSettingsForm

// SwapRequestBody is the swap form.
// swagger:model SwapRequestBody
type SwapRequestBody = domain.SwapForm

// SnipeRequestBody is the snipe form.
// swagger:model SnipeRequestBody
type SnipeRequestBody = domain.SnipeForm

// TxResponse carries the hash of a submitted transaction, empty when none was sent.
// swagger:model TxResponse
type TxResponse struct {
	TxHash string `json:"txHash"`
}

// SnipesResponse is the snipe workspace with the selected contract's snipes.
// swagger:model SnipesResponse
type SnipesResponse struct {
	usecase.SnipesSnapshot
	Snipes []tradeapi.Snipe `json:"snipes"`
}

// SubmitSnipeResponse reports whether a snipe was created.
// swagger:model SubmitSnipeResponse
type SubmitSnipeResponse struct {
	Created bool `json:"created"`
	usecase.SnipesSnapshot
}

// DeleteSnipeResponse reports whether the backend removed the snipe.
// swagger:model DeleteSnipeResponse
type DeleteSnipeResponse struct {
	Deleted bool `json:"deleted"`
}
