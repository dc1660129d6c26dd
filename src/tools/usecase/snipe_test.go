package usecase

import (
	"context"
	"testing"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logs(s string) *string { return &s }

func TestSubmit_NoopUntilReady(t *testing.T) {
	f := newFixture(t, true)
	f.api.snipeID = 7

	ok, err := f.svc.Snipes.Submit(context.Background(), domain.SnipeForm{SnipedAmountOut: "100", ExactAmountIn: "0.1"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, f.api.called("SnipeSwapEthToTokens"))
}

func TestSubmit_ValidatesAmounts(t *testing.T) {
	f := newFixture(t, true)
	f.ready(t)

	_, err := f.svc.Snipes.Submit(context.Background(), domain.SnipeForm{SnipedAmountOut: "lots"})
	require.Error(t, err)
	var apiErr *tradeapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, tradeapi.KindValidation, apiErr.Kind)
	assert.Contains(t, apiErr.Fields, "snipedAmountOut")
	assert.Contains(t, apiErr.Fields, "exactAmountIn")
	assert.Zero(t, f.api.called("SnipeSwapEthToTokens"))
}

func TestSubmit_RejectsNegativeAndOverPreciseAmounts(t *testing.T) {
	tests := []struct {
		name  string
		form  domain.SnipeForm
		field string
	}{
		{"negative out", domain.SnipeForm{SnipedAmountOut: "-1", ExactAmountIn: "0.1"}, "snipedAmountOut"},
		{"negative in", domain.SnipeForm{SnipedAmountOut: "100", ExactAmountIn: "-0.5"}, "exactAmountIn"},
		{"finer than token decimals", domain.SnipeForm{SnipedAmountOut: "1.0000000001", ExactAmountIn: "0.1"}, "snipedAmountOut"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			f.ready(t)
			f.api.snipeID = 7

			_, err := f.svc.Snipes.Submit(context.Background(), tt.form)
			var apiErr *tradeapi.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tradeapi.KindValidation, apiErr.Kind)
			assert.Contains(t, apiErr.Fields, tt.field)
			assert.Zero(t, f.api.called("SnipeSwapEthToTokens"))
		})
	}
}

func TestTracking_StopsOnTerminalByDefault(t *testing.T) {
	f := newFixture(t, true)
	f.ready(t)
	f.api.snipeID = 7
	f.api.snipeData = []tradeapi.SnipeData{
		{Status: tradeapi.SnipeInit},
		{Status: tradeapi.SnipeSniping, Logs: logs("watching mempool")},
		{Status: tradeapi.SnipeDone, Logs: logs("watching mempool\nswapped")},
	}

	var seen []domain.SnipeUpdate
	cancel := f.svc.Snipes.Tracker.Subscribe(func(u domain.SnipeUpdate) { seen = append(seen, u) })
	defer cancel()

	ok, err := f.svc.Snipes.Submit(context.Background(), domain.SnipeForm{SnipedAmountOut: "100", ExactAmountIn: "0.1"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tracking", f.svc.Snipes.Snapshot().Mode)
	assert.Equal(t, 1, f.scheduler.Active(SnipePoll))

	for i := 0; i < 3; i++ {
		require.Equal(t, 1, f.scheduler.Tick(SnipePoll))
	}
	require.Len(t, seen, 3)
	assert.Equal(t, "Initiating", seen[0].Label)
	assert.Equal(t, "#4d69fa", seen[0].Color)
	assert.Empty(t, seen[0].Lines)
	assert.Equal(t, "Snipping", seen[1].Label)
	assert.Equal(t, "#6c5dd3", seen[1].Color)
	assert.Equal(t, "Success", seen[2].Label)
	assert.Equal(t, "#46bcaa", seen[2].Color)
	assert.Equal(t, []string{"watching mempool", "swapped"}, seen[2].Lines)
	assert.True(t, seen[2].Terminal)

	assert.Zero(t, f.scheduler.Active(SnipePoll))
	assert.Zero(t, f.scheduler.Tick(SnipePoll))
	assert.False(t, f.svc.Snipes.Tracker.Polling())
	assert.Equal(t, 3, f.api.called("GetSnipeDataByID"))

	snap := f.svc.Snipes.Snapshot()
	require.NotNil(t, snap.Latest)
	assert.Equal(t, tradeapi.SnipeDone, snap.Latest.Status)
	assert.Equal(t, tradeapi.SnipeDone, snap.Snipe.Status)
}

func TestTracking_KeepsPollingWhenConfigured(t *testing.T) {
	f := newFixture(t, false)
	f.api.snipeData = []tradeapi.SnipeData{
		{Status: tradeapi.SnipeInit},
		{Status: tradeapi.SnipeSniping},
		{Status: tradeapi.SnipeDone},
	}
	f.svc.Snipes.View(tradeapi.Snipe{ID: 3, Status: tradeapi.SnipeInit})

	for i := 0; i < 4; i++ {
		require.Equal(t, 1, f.scheduler.Tick(SnipePoll))
	}
	assert.Equal(t, 1, f.scheduler.Active(SnipePoll))
	assert.True(t, f.svc.Snipes.Tracker.Polling())
	latest, ok := f.svc.Snipes.Tracker.Latest()
	require.True(t, ok)
	assert.Equal(t, "Success", latest.Label)
}

func TestBackToList_StopsTracking(t *testing.T) {
	f := newFixture(t, true)
	f.api.snipeData = []tradeapi.SnipeData{{Status: tradeapi.SnipeSniping}}
	f.svc.Snipes.View(tradeapi.Snipe{ID: 3})
	require.Equal(t, 1, f.scheduler.Active(SnipePoll))

	f.svc.Snipes.BackToList()
	assert.Zero(t, f.scheduler.Active(SnipePoll))
	assert.Nil(t, f.svc.Snipes.Tracker.Tracking())
	assert.Equal(t, "list", f.svc.Snipes.Snapshot().Mode)
}

func TestDelete_OnlyFailedSnipes(t *testing.T) {
	for _, status := range []tradeapi.SnipeStatus{tradeapi.SnipeInit, tradeapi.SnipeSniping, tradeapi.SnipeSwapping, tradeapi.SnipeDone} {
		f := newFixture(t, true)
		ok, err := f.svc.Snipes.Delete(context.Background(), tradeapi.Snipe{ID: 1, Status: status})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, f.api.called("DeleteSnipe"))
	}

	f := newFixture(t, true)
	ok, err := f.svc.Snipes.Delete(context.Background(), tradeapi.Snipe{ID: 1, Status: tradeapi.SnipeError})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.api.called("DeleteSnipe"))
}

func TestList_ForSelectedContract(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.api.snipes[1] = tradeapi.Snipe{ID: 1, ContractID: 1, Status: tradeapi.SnipeError}
	f.api.snipes[2] = tradeapi.Snipe{ID: 2, ContractID: 2}

	list, err := f.svc.Snipes.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, list)
	assert.Zero(t, f.api.called("GetSnipesByContractID"))

	_, err = f.svc.Config.SelectContract(ctx, 1)
	require.NoError(t, err)
	list, err = f.svc.Snipes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	sn, err := f.svc.Snipes.Find(ctx, 1)
	require.NoError(t, err)
	ok, err := f.svc.Snipes.Delete(ctx, sn)
	require.NoError(t, err)
	require.True(t, ok)

	list, err = f.svc.Snipes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 2, f.api.called("GetSnipesByContractID"))

	_, err = f.svc.Snipes.Find(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
