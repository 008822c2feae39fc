package model

// ResidualReport describes the capacity left in the truck after planning.
// It is derived from the committed placements alone, so it can be computed
// for a loaded project without re-running the planner.
type ResidualReport struct {
	TruckVolume       int     `json:"truck_volume"`        // Interior volume (grid cells)
	UsedVolume        int     `json:"used_volume"`         // Volume occupied by crates
	FreeVolume        int     `json:"free_volume"`         // Remaining volume
	FreeVolumePercent float64 `json:"free_volume_percent"` // Remaining volume as a percentage
	FreeFloorCells    int     `json:"free_floor_cells"`    // Unoccupied floor cells (y = 0)
	TailClearance     int     `json:"tail_clearance"`      // Clear length at the rear doors, full cross-section
	MaxStackHeight    int     `json:"max_stack_height"`    // Highest occupied layer + 1
}

// CalculateResidual computes the leftover capacity of a plan. Placements
// are assumed non-overlapping (the planner guarantees this), so footprint
// areas can be summed directly.
func CalculateResidual(truck Truck, placements []Placement) ResidualReport {
	report := ResidualReport{
		TruckVolume:    truck.Volume(),
		FreeFloorCells: truck.Width * truck.Length,
		TailClearance:  truck.Length,
	}

	for _, p := range placements {
		report.UsedVolume += p.Crate.Volume()

		if p.Y == 0 {
			report.FreeFloorCells -= p.PlacedWidth() * p.PlacedLength()
		}

		if top := p.Y + p.PlacedHeight(); top > report.MaxStackHeight {
			report.MaxStackHeight = top
		}
		if clear := truck.Length - (p.Z + p.PlacedLength()); clear < report.TailClearance {
			report.TailClearance = clear
		}
	}

	report.FreeVolume = report.TruckVolume - report.UsedVolume
	if report.TruckVolume > 0 {
		report.FreeVolumePercent = float64(report.FreeVolume) / float64(report.TruckVolume) * 100.0
	}
	if len(placements) == 0 {
		report.TailClearance = truck.Length
	}
	return report
}
