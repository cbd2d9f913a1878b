package cmd

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// Both commands expose --max-ticks with different defaults. Each must
// bind its own variable: flag registration writes the default into the
// bound variable at init time, so sharing one variable would leave the
// last registration's default in effect for both commands.
func TestMaxTicksDefaultsMatchBoundVariables(t *testing.T) {
	runFlag := runCmd.Flags().Lookup("max-ticks")
	require.NotNil(t, runFlag)
	want, err := strconv.ParseInt(runFlag.DefValue, 10, 64)
	require.NoError(t, err)
	if maxTicks != want {
		t.Errorf("run advertises default %d but the bound variable holds %d", want, maxTicks)
	}

	scenarioFlag := scenarioCmd.Flags().Lookup("max-ticks")
	require.NotNil(t, scenarioFlag)
	want, err = strconv.ParseInt(scenarioFlag.DefValue, 10, 64)
	require.NoError(t, err)
	if scenarioMaxTicks != want {
		t.Errorf("scenario advertises default %d but the bound variable holds %d", want, scenarioMaxTicks)
	}
}

// Flags shared between commands on purpose (log level, config paths)
// carry identical defaults, so registration order cannot change what
// either command runs with.
func TestSharedFlagDefaultsAgree(t *testing.T) {
	for _, name := range []string{"log", "config", "advisor-model", "advisor"} {
		runFlag := runCmd.Flags().Lookup(name)
		scenarioFlag := scenarioCmd.Flags().Lookup(name)
		require.NotNil(t, runFlag, "run --%s", name)
		require.NotNil(t, scenarioFlag, "scenario --%s", name)
		if runFlag.DefValue != scenarioFlag.DefValue {
			t.Errorf("--%s defaults differ: run %q vs scenario %q", name, runFlag.DefValue, scenarioFlag.DefValue)
		}
	}
}
