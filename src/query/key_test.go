package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		params map[string]any
		want   string
	}{
		{"no params", GetChains, nil, "get-chains?"},
		{"one param", GetBalance, map[string]any{"chainId": "56"}, "get-balance?chainId=56"},
		{"sorted", GetSnipes, map[string]any{"status": 4, "contractId": int64(9)}, "get-snipes?contractId=9&status=4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.query, tt.params))
		})
	}
}
