package domain

import (
	"testing"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestMergeAndChanged(t *testing.T) {
	initial := ChainFormOf(tradeapi.Chain{ChainID: "1", Name: "Ethereum", RPCURI: "https://x", WSRPCURI: "wss://x"})

	merged := Merge(initial, ChainForm{Name: strp("X")})
	assert.Equal(t, "X", *merged.Name)
	assert.Equal(t, "https://x", *merged.RPCURI)

	changed := Changed(initial, merged)
	assert.Equal(t, ChainForm{Name: strp("X")}, changed)
	assert.False(t, IsEmpty(changed))

	assert.True(t, IsEmpty(Changed(initial, Merge(initial, ChainForm{RPCURI: strp("https://x")}))))
}

func TestChanged_AgainstEmptyInitialKeepsEverySetField(t *testing.T) {
	decimals := 18
	current := TradingContractForm{Name: strp("Token"), Decimals: &decimals}
	assert.Equal(t, current, Changed(TradingContractForm{}, current))
}

func TestChainUpdatePayloadDropsChainID(t *testing.T) {
	f := ChainForm{ChainID: strp("1"), Name: strp("X")}
	p := f.UpdatePayload()
	assert.Nil(t, p.ChainID)
	assert.Equal(t, "X", *p.Name)
	assert.Equal(t, "1", *f.CreatePayload().ChainID)
}
