package script

import (
	"testing"

	"github.com/piwi3910/StowPlan/internal/engine"
	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTripsGeneratedScript(t *testing.T) {
	for _, name := range model.GetLoaderProfileNames() {
		t.Run(name, func(t *testing.T) {
			settings := model.DefaultSettings()
			settings.LoaderProfile = name

			result := testPlan(t)
			text := New(settings).Generate(result)

			parsed, err := NewParser(model.GetLoaderProfile(name)).Instructions(text)
			require.NoError(t, err)

			assert.Equal(t, result.Instructions, parsed)
		})
	}
}

func TestParse_SkipsCommentsAndBlankLines(t *testing.T) {
	text := "# a note\n\nROTATE H1 V0\nMOVE X2 Y0 Z3\nPLACE 7\n"
	steps, err := NewParser(model.GetLoaderProfile("Generic")).Parse(text)

	require.NoError(t, err)
	require.Len(t, steps, 1)
	inst := steps[0].Instruction
	assert.Equal(t, 1, inst.Step)
	assert.Equal(t, 7, inst.CrateID)
	assert.Equal(t, 2, inst.X)
	assert.Equal(t, 3, inst.Z)
	assert.True(t, inst.TurnedHorizontal)
	assert.False(t, inst.TurnedVertical)
	assert.Len(t, steps[0].Lines, 3)
}

func TestParse_RejectsUnknownCommand(t *testing.T) {
	_, err := NewParser(model.GetLoaderProfile("Generic")).Parse("JUMP 3\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized command")
	assert.Contains(t, err.Error(), "line 1")
}

func TestParse_RejectsDuplicatePlacement(t *testing.T) {
	text := "MOVE X0 Y0 Z0\nPLACE 1\nMOVE X1 Y0 Z0\nPLACE 1\n"
	_, err := NewParser(model.GetLoaderProfile("Generic")).Instructions(text)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "placed twice")
}

func TestParse_ParsedScriptSurvivesVerification(t *testing.T) {
	// Generate, parse, splice the parsed instructions back into the plan
	// and check the replay verifier still accepts it.
	settings := model.DefaultSettings()
	result := testPlan(t)
	text := New(settings).Generate(result)

	parsed, err := NewParser(model.GetLoaderProfile(settings.LoaderProfile)).Instructions(text)
	require.NoError(t, err)

	spliced := result
	spliced.Instructions = parsed
	violations := engine.Verify(result.Truck, settings, spliced)
	assert.Empty(t, violations)
}
