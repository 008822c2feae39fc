package script

import (
	"fmt"
	"strings"
	"testing"

	"github.com/piwi3910/StowPlan/internal/engine"
	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T) model.PlanResult {
	t.Helper()
	truck := model.NewTruck("Box Truck", 4, 4, 6)
	crates := []model.Crate{
		model.NewCrate(1, "Pallet", 4, 2, 3),
		model.NewCrate(2, "Drum", 2, 2, 2),
	}
	result, err := engine.New(model.DefaultSettings()).Plan(truck, crates)
	require.NoError(t, err)
	return result
}

func TestGenerate_GenericProfile(t *testing.T) {
	settings := model.DefaultSettings()
	g := New(settings)
	out := g.Generate(testPlan(t))

	assert.Contains(t, out, "# StowPlan loader script — Box Truck")
	assert.Contains(t, out, "BEGIN PLAN")
	assert.Contains(t, out, "MOVE X0 Y0 Z0")
	assert.Contains(t, out, "ROTATE H0 V0")
	assert.Contains(t, out, "PLACE 1")
	assert.Contains(t, out, "PLACE 2")
	assert.Contains(t, out, "END PLAN")

	// The bigger crate loads first.
	assert.Less(t, strings.Index(out, "PLACE 1"), strings.Index(out, "PLACE 2"))
}

func TestGenerate_AGVProfile(t *testing.T) {
	settings := model.DefaultSettings()
	settings.LoaderProfile = "AGV-500"
	out := New(settings).Generate(testPlan(t))

	assert.Contains(t, out, "MODE AUTO")
	assert.Contains(t, out, "LIFT UP")
	assert.Contains(t, out, "ORIENT 0 0")
	assert.Contains(t, out, "DROP 1")
	assert.Contains(t, out, "MODE IDLE")
	assert.Contains(t, out, "; Profile: AGV-500")
	assert.NotContains(t, out, "PLACE")
}

func TestGenerate_UnknownProfileFallsBackToGeneric(t *testing.T) {
	settings := model.DefaultSettings()
	settings.LoaderProfile = "nope"
	g := New(settings)

	assert.Equal(t, "Generic", g.Profile().Name)
}

func TestGenerate_MoveCarriesInstructionCoordinates(t *testing.T) {
	result := testPlan(t)
	out := New(model.DefaultSettings()).Generate(result)

	second := result.Instructions[2]
	want := fmt.Sprintf("MOVE X%d Y%d Z%d", second.X, second.Y, second.Z)
	assert.Contains(t, out, want)
}
