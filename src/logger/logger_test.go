package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFields_CarriedOnEveryLine(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("prod", &buf)

	log := base.WithFields(map[string]interface{}{"snipe": 7, "contract": 1}).WithField("router", 5)
	log.Infof("tracking %s", "snipe")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "tracking snipe", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 7, line["snipe"])
	assert.EqualValues(t, 1, line["contract"])
	assert.EqualValues(t, 5, line["router"])

	buf.Reset()
	base.Warnf("plain")
	var fresh map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fresh))
	assert.NotContains(t, fresh, "snipe")
	assert.Equal(t, "warn", fresh["level"])
}
