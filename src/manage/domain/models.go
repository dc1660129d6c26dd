package domain

import (
	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
)

// Forms hold what the operator typed. A nil field was not provided. Edit forms
// are merged over the values of the record being edited before validation.

type ChainForm struct {
	ChainID  *string `json:"chainId" validate:"required,numeric"`
	Name     *string `json:"name" validate:"required,max=50"`
	RPCURI   *string `json:"rpcUri" validate:"required,url"`
	WSRPCURI *string `json:"wsRpcUri" validate:"required,ws_url"`
}

func ChainFormOf(c tradeapi.Chain) ChainForm {
	return ChainForm{ChainID: &c.ChainID, Name: &c.Name, RPCURI: &c.RPCURI, WSRPCURI: &c.WSRPCURI}
}

// CreatePayload carries every provided field.
func (f ChainForm) CreatePayload() tradeapi.ChainPayload {
	return tradeapi.ChainPayload{ChainID: f.ChainID, Name: f.Name, RPCURI: f.RPCURI, WSRPCURI: f.WSRPCURI}
}

// UpdatePayload leaves chainId out; a chain is identified by it.
func (f ChainForm) UpdatePayload() tradeapi.ChainPayload {
	return tradeapi.ChainPayload{Name: f.Name, RPCURI: f.RPCURI, WSRPCURI: f.WSRPCURI}
}

type DEXForm struct {
	Name *string `json:"name" validate:"required,max=50"`
}

func DEXFormOf(d tradeapi.DEX) DEXForm {
	return DEXForm{Name: &d.Name}
}

func (f DEXForm) Payload() tradeapi.DEXPayload {
	return tradeapi.DEXPayload{Name: f.Name}
}

type DEXRouterForm struct {
	Name            *string                   `json:"name" validate:"required,max=50"`
	Address         *string                   `json:"address" validate:"required,evm_address"`
	ProtocolVersion *tradeapi.ProtocolVersion `json:"protocolVersion" validate:"required,oneof=1 2 3"`
	Type            *tradeapi.RouterType      `json:"type" validate:"required,oneof=router02 universal"`
	ChainID         *string                   `json:"chainId" validate:"required"`
	DEXID           *int64                    `json:"dexId" validate:"required"`
}

func DEXRouterFormOf(r tradeapi.DEXRouter) DEXRouterForm {
	return DEXRouterForm{
		Name:            &r.Name,
		Address:         &r.Address,
		ProtocolVersion: &r.ProtocolVersion,
		Type:            &r.Type,
		ChainID:         &r.Chain.ChainID,
		DEXID:           &r.DEX.ID,
	}
}

func (f DEXRouterForm) Payload() tradeapi.DEXRouterPayload {
	return tradeapi.DEXRouterPayload{
		Name:            f.Name,
		Address:         f.Address,
		ProtocolVersion: f.ProtocolVersion,
		Type:            f.Type,
		ChainID:         f.ChainID,
		DEXID:           f.DEXID,
	}
}

type TradingContractForm struct {
	Name     *string `json:"name" validate:"required,max=50"`
	Symbol   *string `json:"symbol" validate:"required,max=10"`
	Address  *string `json:"address" validate:"required,evm_address"`
	Decimals *int    `json:"decimals" validate:"required,gt=0"`
	ChainID  *string `json:"chainId" validate:"required,max=10"`
}

func TradingContractFormOf(c tradeapi.TradingContract) TradingContractForm {
	return TradingContractForm{
		Name:     &c.Name,
		Symbol:   &c.Symbol,
		Address:  &c.Address,
		Decimals: &c.Decimals,
		ChainID:  &c.ChainID,
	}
}

func (f TradingContractForm) Payload() tradeapi.TradingContractPayload {
	return tradeapi.TradingContractPayload{
		Name:     f.Name,
		Symbol:   f.Symbol,
		Address:  f.Address,
		Decimals: f.Decimals,
		ChainID:  f.ChainID,
	}
}

// Option is one entry of a select list.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
