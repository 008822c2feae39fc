// Package engine implements the greedy largest-first placement algorithm
// that turns a crate list and a truck interior into an ordered sequence of
// loading instructions.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/StowPlan/internal/model"
)

// CapacityError reports that the aggregate crate volume exceeds the truck
// volume. It is detected up front; no placement is attempted.
type CapacityError struct {
	CrateVolume int
	TruckVolume int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("total crate volume %d exceeds truck volume %d", e.CrateVolume, e.TruckVolume)
}

// PlacementError reports that a specific crate exhausted every rotation and
// position without a feasible placement. The run is aborted; no partial
// plan is returned.
type PlacementError struct {
	CrateID int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("no feasible placement for crate %d", e.CrateID)
}

// Planner runs the placement algorithm.
type Planner struct {
	Settings model.StowSettings
}

func New(settings model.StowSettings) *Planner {
	return &Planner{Settings: settings}
}

// rotation is one of the three permitted orientations of a crate.
type rotation struct {
	w, h, l          int
	turnedHorizontal bool
	turnedVertical   bool
}

// rotationsOf enumerates the three candidate rotations in search order:
// original, width/length swapped, height/length swapped. Rotations that
// would swap the height axis with width are deliberately not explored.
func rotationsOf(c model.Crate) [3]rotation {
	return [3]rotation{
		{w: c.Width, h: c.Height, l: c.Length},
		{w: c.Length, h: c.Height, l: c.Width, turnedHorizontal: true},
		{w: c.Width, h: c.Length, l: c.Height, turnedVertical: true},
	}
}

// Plan computes a placement for every crate, largest volume first, and
// returns the instruction map keyed by crate ID. Crates must carry unique
// IDs and be pre-expanded to quantity 1 (see model.ExpandCrates).
//
// Plan either succeeds for the whole crate list or fails with a typed
// error: *CapacityError when the volumes cannot fit, *PlacementError when a
// crate has no feasible position. On failure the returned result is empty;
// no partial plan escapes.
func (p *Planner) Plan(truck model.Truck, crates []model.Crate) (model.PlanResult, error) {
	var totalVolume int
	for _, c := range crates {
		totalVolume += c.Volume()
	}
	if totalVolume > truck.Volume() {
		return model.PlanResult{}, &CapacityError{CrateVolume: totalVolume, TruckVolume: truck.Volume()}
	}

	// Largest volume first; ties keep input order so repeated runs on the
	// same manifest produce identical plans.
	sorted := make([]model.Crate, len(crates))
	copy(sorted, crates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume() > sorted[j].Volume()
	})

	grid := newOccupancyGrid(truck.Width, truck.Height, truck.Length)
	result := model.PlanResult{
		Truck:        truck,
		Instructions: make(map[int]model.LoadingInstruction, len(sorted)),
	}

	for _, crate := range sorted {
		placement, ok := p.searchPlacement(grid, truck, crate)
		if !ok {
			return model.PlanResult{}, &PlacementError{CrateID: crate.ID}
		}

		grid.occupy(placement.X, placement.Y, placement.Z,
			placement.PlacedWidth(), placement.PlacedHeight(), placement.PlacedLength())

		step := len(result.Placements) + 1
		result.Placements = append(result.Placements, placement)
		result.Instructions[crate.ID] = model.LoadingInstruction{
			Step:             step,
			CrateID:          crate.ID,
			X:                placement.X,
			Y:                placement.Y,
			Z:                placement.Z,
			TurnedHorizontal: placement.TurnedHorizontal,
			TurnedVertical:   placement.TurnedVertical,
		}
	}

	return result, nil
}

// searchPlacement scans rotations (outer) and minimum-corner positions in
// ascending x, y, z order and returns the first feasible placement. The
// first rotation that yields any feasible position wins, even if a later
// rotation would reach a lower position.
func (p *Planner) searchPlacement(grid *occupancyGrid, truck model.Truck, crate model.Crate) (model.Placement, bool) {
	for _, rot := range rotationsOf(crate) {
		if rot.w > truck.Width || rot.h > truck.Height || rot.l > truck.Length {
			continue
		}
		required := requiredSupport(rot.w*rot.l, p.Settings.SupportRatio)

		for x := 0; x <= truck.Width-rot.w; x++ {
			for y := 0; y <= truck.Height-rot.h; y++ {
				for z := 0; z <= truck.Length-rot.l; z++ {
					if !p.feasible(grid, x, y, z, rot, required) {
						continue
					}
					return model.Placement{
						Crate:            crate,
						X:                x,
						Y:                y,
						Z:                z,
						TurnedHorizontal: rot.turnedHorizontal,
						TurnedVertical:   rot.turnedVertical,
					}, true
				}
			}
		}
	}
	return model.Placement{}, false
}

// feasible checks support then overlap for a candidate box. Crates on the
// truck floor always pass the support check.
func (p *Planner) feasible(grid *occupancyGrid, x, y, z int, rot rotation, requiredSupport int) bool {
	if y > 0 && grid.supportedCells(x, y, z, rot.w, rot.l) < requiredSupport {
		return false
	}
	return grid.boxFree(x, y, z, rot.w, rot.h, rot.l)
}

// requiredSupport returns the number of footprint cells that must be
// occupied one layer below: ceil(ratio × footprint).
func requiredSupport(footprintCells int, ratio float64) int {
	return int(math.Ceil(ratio * float64(footprintCells)))
}
