package model

import "math"

// DefaultSlackPercent is the headroom applied to estimates and lashing
// lengths when the caller has no better figure.
const DefaultSlackPercent = 10.0

// LoadEstimate holds the results of a pre-planning capacity calculation.
type LoadEstimate struct {
	TotalCrateVolume int     `json:"total_crate_volume"` // Sum of all crate volumes (grid cells)
	TruckVolume      int     `json:"truck_volume"`       // Interior volume of one truck (grid cells)
	CrateCount       int     `json:"crate_count"`        // Number of physical crates after quantity expansion
	UtilizationPct   float64 `json:"utilization_pct"`    // Crate volume as a percentage of one truck
	Fits             bool    `json:"fits"`               // Whether the volume pre-check passes for one truck
	TrucksNeededMin  int     `json:"trucks_needed_min"`  // Minimum trucks by raw volume (ceiling)
	TrucksWithSlack  int     `json:"trucks_with_slack"`  // Recommended trucks including the slack factor
	SlackPercent     float64 `json:"slack_percent"`      // Slack factor applied (e.g. 15 for 15%)
}

// CalculateLoadEstimate computes how much of the truck a crate list will
// consume and how many trucks a larger shipment would need. Volume is an
// upper bound on feasibility: the greedy placement can fail earlier, but a
// shipment that fails this check can never be planned. slackPercent adds
// headroom for the geometric waste the volume figure cannot see.
func CalculateLoadEstimate(crates []Crate, truck Truck, slackPercent float64) LoadEstimate {
	expanded := ExpandCrates(crates)

	var totalVolume int
	for _, c := range expanded {
		totalVolume += c.Volume()
	}

	est := LoadEstimate{
		TotalCrateVolume: totalVolume,
		TruckVolume:      truck.Volume(),
		CrateCount:       len(expanded),
		SlackPercent:     slackPercent,
	}

	if truck.Volume() <= 0 {
		return est
	}

	exact := float64(totalVolume) / float64(truck.Volume())
	est.UtilizationPct = exact * 100.0
	est.Fits = totalVolume <= truck.Volume()
	est.TrucksNeededMin = int(math.Ceil(exact))

	slackFactor := 1.0 + (slackPercent / 100.0)
	est.TrucksWithSlack = int(math.Ceil(exact * slackFactor))
	if est.TrucksWithSlack < est.TrucksNeededMin {
		est.TrucksWithSlack = est.TrucksNeededMin
	}

	return est
}
