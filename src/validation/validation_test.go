package validation

import (
	"testing"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string `json:"name" validate:"required,max=5"`
	WS      string `json:"wsRpcUri" validate:"required,ws_url"`
	Address string `json:"address" validate:"required,evm_address"`
	Amount  string `json:"amount" validate:"required,amount"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{
		Name:    "eth",
		WS:      "WSS://node.example",
		Address: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
		Amount:  "0.5",
	})
	assert.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(sample{Name: "toolong", WS: "https://x", Address: "0x12", Amount: "-1"})
	require.Error(t, err)

	var apiErr *tradeapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, tradeapi.KindValidation, apiErr.Kind)
	assert.Equal(t, map[string]string{
		"name":     "name must be at most 5 characters",
		"wsRpcUri": "Invalid WebSocket URL",
		"address":  "address is not a valid address",
		"amount":   "amount must be a positive amount",
	}, apiErr.Fields)
}

func TestWSURLPattern(t *testing.T) {
	for _, ok := range []string{"ws://a.b", "wss://node.io/ws", "WSS://x.y"} {
		assert.True(t, wsURL.MatchString(ok), ok)
	}
	for _, bad := range []string{"http://a.b", "ws://", "wss:// space", "ws://.x"} {
		assert.False(t, wsURL.MatchString(bad), bad)
	}
}
