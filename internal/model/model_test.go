package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrateVolume(t *testing.T) {
	c := NewCrate(1, "A", 2, 3, 4)
	assert.Equal(t, 24, c.Volume())
}

func TestExpandCrates_AssignsFreshIDs(t *testing.T) {
	crates := []Crate{
		{ID: 1, Label: "A", Width: 2, Height: 2, Length: 2, Quantity: 3},
		{ID: 5, Label: "B", Width: 1, Height: 1, Length: 1, Quantity: 1},
	}

	expanded := ExpandCrates(crates)

	require.Len(t, expanded, 4)
	ids := make(map[int]bool)
	for _, c := range expanded {
		assert.Equal(t, 1, c.Quantity)
		assert.False(t, ids[c.ID], "duplicate id %d", c.ID)
		ids[c.ID] = true
	}
	// The first copy keeps the original id; extras are numbered above the
	// highest input id.
	assert.True(t, ids[1])
	assert.True(t, ids[5])
	assert.True(t, ids[6])
	assert.True(t, ids[7])
}

func TestExpandCrates_ZeroQuantityTreatedAsOne(t *testing.T) {
	expanded := ExpandCrates([]Crate{{ID: 1, Width: 1, Height: 1, Length: 1}})
	require.Len(t, expanded, 1)
	assert.Equal(t, 1, expanded[0].Quantity)
}

func TestPlacement_RotatedExtents(t *testing.T) {
	crate := NewCrate(1, "A", 2, 3, 4)

	original := Placement{Crate: crate}
	assert.Equal(t, 2, original.PlacedWidth())
	assert.Equal(t, 3, original.PlacedHeight())
	assert.Equal(t, 4, original.PlacedLength())

	horizontal := Placement{Crate: crate, TurnedHorizontal: true}
	assert.Equal(t, 4, horizontal.PlacedWidth())
	assert.Equal(t, 3, horizontal.PlacedHeight())
	assert.Equal(t, 2, horizontal.PlacedLength())

	vertical := Placement{Crate: crate, TurnedVertical: true}
	assert.Equal(t, 2, vertical.PlacedWidth())
	assert.Equal(t, 4, vertical.PlacedHeight())
	assert.Equal(t, 3, vertical.PlacedLength())
}

func TestPlanResult_Utilization(t *testing.T) {
	result := PlanResult{
		Truck: NewTruck("T", 4, 4, 4),
		Placements: []Placement{
			{Crate: NewCrate(1, "A", 2, 2, 2)},
			{Crate: NewCrate(2, "B", 2, 2, 2)},
		},
	}
	assert.Equal(t, 16, result.VolumeUsed())
	assert.InDelta(t, 25.0, result.Utilization(), 0.001)
}

func TestGetLoaderProfile_FallsBackToGeneric(t *testing.T) {
	p := GetLoaderProfile("does-not-exist")
	assert.Equal(t, "Generic", p.Name)

	agv := GetLoaderProfile("AGV-500")
	assert.Equal(t, "AGV-500", agv.Name)
	assert.True(t, agv.IsBuiltIn)
}

func TestNewProject_Defaults(t *testing.T) {
	p := NewProject()
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Untitled", p.Name)
	assert.InDelta(t, 0.75, p.Settings.SupportRatio, 0.001)
	assert.NotNil(t, p.Crates)
}

func TestCalculateLoadEstimate(t *testing.T) {
	truck := NewTruck("T", 4, 4, 4) // volume 64
	crates := []Crate{
		{ID: 1, Width: 2, Height: 2, Length: 2, Quantity: 4}, // 32 cells
	}

	est := CalculateLoadEstimate(crates, truck, 15)

	assert.Equal(t, 32, est.TotalCrateVolume)
	assert.Equal(t, 64, est.TruckVolume)
	assert.Equal(t, 4, est.CrateCount)
	assert.True(t, est.Fits)
	assert.InDelta(t, 50.0, est.UtilizationPct, 0.001)
	assert.Equal(t, 1, est.TrucksNeededMin)
	assert.Equal(t, 1, est.TrucksWithSlack)
}

func TestCalculateLoadEstimate_Oversubscribed(t *testing.T) {
	truck := NewTruck("T", 2, 2, 2) // volume 8
	crates := []Crate{
		{ID: 1, Width: 2, Height: 2, Length: 2, Quantity: 3}, // 24 cells
	}

	est := CalculateLoadEstimate(crates, truck, 10)

	assert.False(t, est.Fits)
	assert.Equal(t, 3, est.TrucksNeededMin)
	assert.GreaterOrEqual(t, est.TrucksWithSlack, est.TrucksNeededMin)
}

func TestCalculateLashing(t *testing.T) {
	placements := []Placement{
		{Crate: NewCrate(1, "A", 2, 2, 12)}, // girth 8, ceil(12/10)=2 straps
		{Crate: NewCrate(2, "B", 1, 1, 3)},  // girth 4, minimum 2 straps
	}

	sum := CalculateLashing(placements, DefaultStrapInterval, 10)

	assert.Equal(t, 4, sum.StrapCount)
	assert.InDelta(t, 24.0, sum.TotalLinearUnits, 0.001) // 8*2 + 4*2
	assert.InDelta(t, 2.4, sum.TotalLinearM, 0.001)
	assert.InDelta(t, 2.64, sum.TotalWithSlackM, 0.001)
}

func TestCalculateResidual(t *testing.T) {
	truck := NewTruck("T", 4, 4, 10) // volume 160, floor 40
	placements := []Placement{
		{Crate: NewCrate(1, "A", 4, 2, 4), X: 0, Y: 0, Z: 0},
		{Crate: NewCrate(2, "B", 2, 1, 2), X: 0, Y: 2, Z: 0},
	}

	report := CalculateResidual(truck, placements)

	assert.Equal(t, 36, report.UsedVolume)
	assert.Equal(t, 124, report.FreeVolume)
	assert.Equal(t, 24, report.FreeFloorCells) // 40 - 4x4 footprint
	assert.Equal(t, 6, report.TailClearance)   // 10 - (0+4)
	assert.Equal(t, 3, report.MaxStackHeight)  // B tops out at y=3
	assert.InDelta(t, 77.5, report.FreeVolumePercent, 0.001)
}

func TestCalculateResidual_EmptyPlan(t *testing.T) {
	truck := NewTruck("T", 2, 2, 5)
	report := CalculateResidual(truck, nil)

	assert.Equal(t, 20, report.FreeVolume)
	assert.Equal(t, 10, report.FreeFloorCells)
	assert.Equal(t, 5, report.TailClearance)
	assert.Equal(t, 0, report.MaxStackHeight)
}

func TestInventory_Lookups(t *testing.T) {
	inv := DefaultInventory()

	byName := inv.FindTruckByName("20ft Container")
	require.NotNil(t, byName)
	assert.Equal(t, 59, byName.Length)

	byID := inv.FindTruckByID(byName.ID)
	require.NotNil(t, byID)
	assert.Equal(t, byName.Name, byID.Name)

	assert.Nil(t, inv.FindTruckByName("no such truck"))
	assert.Len(t, inv.TruckNames(), len(inv.Trucks))

	crate := inv.FindCrateByName("Euro Pallet Box")
	require.NotNil(t, crate)
	c := crate.ToCrate(7, 3)
	assert.Equal(t, 7, c.ID)
	assert.Equal(t, 3, c.Quantity)
}

func TestAppConfig_RecentProjects(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("/a")
	cfg.AddRecentProject("/b")
	cfg.AddRecentProject("/a")

	require.Len(t, cfg.RecentProjects, 2)
	assert.Equal(t, "/a", cfg.RecentProjects[0])
	assert.Equal(t, "/b", cfg.RecentProjects[1])
}

func TestProjectTemplate_ToProjectRenumbersCrates(t *testing.T) {
	truck := NewTruck("T", 4, 4, 4)
	crates := []Crate{NewCrate(10, "A", 1, 1, 1), NewCrate(20, "B", 2, 2, 2)}
	tmpl := NewProjectTemplate("Weekly", "standard shipment", truck, crates, DefaultSettings())

	p := tmpl.ToProject("Week 34")

	assert.Equal(t, "Week 34", p.Name)
	require.Len(t, p.Crates, 2)
	assert.Equal(t, 1, p.Crates[0].ID)
	assert.Equal(t, 2, p.Crates[1].ID)
	// Template crates are untouched
	assert.Equal(t, 10, tmpl.Crates[0].ID)
}

func TestTemplateStore_FindByName(t *testing.T) {
	truck := NewTruck("T", 4, 4, 4)
	store := NewTemplateStore()
	store.Templates = append(store.Templates,
		NewProjectTemplate("Weekly", "", truck, nil, DefaultSettings()),
		NewProjectTemplate("Monthly", "", truck, nil, DefaultSettings()),
	)

	found := store.FindByName("Monthly")
	require.NotNil(t, found)
	assert.Equal(t, "Monthly", found.Name)

	assert.Nil(t, store.FindByName("Quarterly"))
	assert.Equal(t, []string{"Weekly", "Monthly"}, store.Names())
}
