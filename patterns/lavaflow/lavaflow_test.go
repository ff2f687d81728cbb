package lavaflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These pin what the legacy paths do today so they can be deleted with
// confidence.

func TestMysteriousLegacyFunction(t *testing.T) {
	out := mysteriousLegacyFunction([]any{
		map[string]any{"legacy_flag": true, "value": 50.0},
		map[string]any{"legacy_flag": false, "value": 100.0},
		map[string]any{"legacy_flag": true, "value": 10.0},
		map[string]any{"legacy_flag": true, "value": 43},
		map[string]any{"value": 99.0},
		"not a map",
	})

	require.Len(t, out, 1)
	assert.InDelta(t, 66.85, out[0], 1e-9)
}

func TestMysteriousLegacyFunction_PanicsOnNonBoolFlag(t *testing.T) {
	assert.Panics(t, func() {
		mysteriousLegacyFunction([]any{map[string]any{"legacy_flag": "yes"}})
	})
}

func TestLegacyProcess(t *testing.T) {
	dp := &DataProcessor{legacyMode: true}
	assert.Equal(t, []int{15, 52, 75, -3}, dp.ProcessData([]int{10, 70, 100, -2}))
}

func TestOldAlgorithm(t *testing.T) {
	dp := &DataProcessor{useOldAlgorithm: true}
	assert.Equal(t, []int{15, 105, 150}, dp.ProcessData([]int{10, 70, 100}))
}

func TestDouble_MatchesLiveCodePath(t *testing.T) {
	for _, data := range [][]int{nil, {}, {1, 2, 3}, {-4, 0, 1 << 20}} {
		assert.Equal(t, NewDataProcessor().ProcessData(data), Double(data))
		if len(data) > 0 {
			assert.Equal(t, NewModernClass().Process(data[0]), Double(data)[0])
		}
	}
}

func TestRedact_MatchesCurrentGeneration(t *testing.T) {
	user := map[string]any{"name": "ada", "email": "ada@example.com", "password": "x", "secret": "y"}
	assert.Equal(t, processUserData(user), Redact(user))
	assert.Contains(t, user, "password", "input must not be modified")
	assert.Equal(t, processUserData(nil), Redact(nil))
}

func TestEmergencyFix(t *testing.T) {
	assert.NotNil(t, emergencyFixForBug123(nil))
	assert.Equal(t, []any{1}, emergencyFixForBug123([]any{1}))
}

func TestOldUserManager(t *testing.T) {
	oum := NewOldUserManager()
	oum.AddUser("ada", "ada@example.com")
	assert.Equal(t, "2015-01-01", oum.GetUser("ada")["created"])
	assert.Nil(t, oum.GetUser("bob"))
}

func TestLegacyError(t *testing.T) {
	assert.EqualError(t, newLegacyAuthError("denied"), "[1001] denied")
}

func TestDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Demo(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "current: [20 140 200]")
	assert.Contains(t, out, "legacy (never enabled): [15 52 75]")
	assert.Contains(t, out, "Redact: map[name:ada]")
}
