// Package http exposes the catalog editors under /api.
package http

import (
	"github.com/MMN3003/tradedesk/src/manage/domain"
)

// StatusResponse acknowledges a mutation.
// swagger:model StatusResponse
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ChainRequestBody is the chain form. Omitted fields keep their current value on edit.
// swagger:model ChainRequestBody
type ChainRequestBody = domain.ChainForm

// DEXRequestBody is the DEX form.
// swagger:model DEXRequestBody
type DEXRequestBody = domain.DEXForm

// DEXRouterRequestBody is the router form.
// swagger:model DEXRouterRequestBody
type DEXRouterRequestBody = domain.DEXRouterForm

// TradingContractRequestBody is the trading contract form.
// swagger:model TradingContractRequestBody
type TradingContractRequestBody = domain.TradingContractForm

var okResponse = StatusResponse{Status: "ok"}
