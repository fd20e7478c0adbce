package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mideck/domain/core"
	"mideck/domain/deck"
	"mideck/domain/demo"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DECK_MANIFEST", "")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("DEMO_SEED", "")
	t.Setenv("DEMO_SEED_POLICY", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPagesCommand(t *testing.T) {
	out, err := run(t, "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "0_Home")
	assert.Contains(t, out, "7_Interactive_Demo")

	out, err = run(t, "pages", "--json")
	require.NoError(t, err)
	var pages []deck.PageDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	assert.Len(t, pages, 8)
	assert.Equal(t, deck.KindEDF, pages[5].Kind)
}

func TestNavigateCommand(t *testing.T) {
	out, err := run(t, "navigate", "0_Home")
	require.NoError(t, err)
	assert.Contains(t, out, "Previous: -")
	assert.Contains(t, out, "Next:     1_Introduction")

	_, err = run(t, "navigate", "9_Missing")
	assert.ErrorIs(t, err, core.ErrPageNotFound)
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--json", "--imputations", "100")
	require.NoError(t, err)
	var res demo.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 100, res.Inputs.NumImputations)
	assert.InDelta(t, 0.85, res.UpperBound-res.PooledEstimate, 1e-9)

	_, err = run(t, "simulate", "--sample-size", "5")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSimulateIsRepeatable(t *testing.T) {
	first, err := run(t, "simulate")
	require.NoError(t, err)
	second, err := run(t, "simulate")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := run(t, "simulate", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, other, "seed 7")
}

func TestSeedZeroIsHonoured(t *testing.T) {
	out, err := run(t, "simulate", "--seed", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "(seed 0, ")

	out, err = run(t, "simulate", "--json", "--seed", "0")
	require.NoError(t, err)
	var got demo.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want, err := demo.Simulate(demo.DefaultInputs(), 0)
	require.NoError(t, err)
	assert.Equal(t, want.Jitter, got.Jitter)
}

func TestSweepCommandWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.xlsx")
	out, err := run(t, "sweep", "--parameter", "model_complexity", "--xlsx", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 10 points")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "sweep", "--parameter", "colour")
	assert.ErrorIs(t, err, core.ErrInvalidSetting)
}

func TestEDFAndAccuracyCommands(t *testing.T) {
	out, err := run(t, "edf")
	require.NoError(t, err)
	assert.Contains(t, out, "Default (Infinite)")
	assert.Contains(t, out, "Corrected (EDF=493)")

	_, err = run(t, "edf", "--setting", "never")
	assert.Error(t, err)

	out, err = run(t, "accuracy", "--metric", "mse")
	require.NoError(t, err)
	assert.Contains(t, out, "VISIT")
	assert.Contains(t, out, "MSE")
}

func TestOutlineCommand(t *testing.T) {
	out, err := run(t, "outline")
	require.NoError(t, err)
	assert.Contains(t, out, "# PharmaSUG China 2025")
	assert.Contains(t, out, "5_Comparative_Analysis")

	path := filepath.Join(t.TempDir(), "handout.md")
	_, err = run(t, "outline", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Interactive Demo")
}
