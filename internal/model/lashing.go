package model

import "math"

// LashingSummary holds the calculated tie-down strap requirements for a plan.
type LashingSummary struct {
	StrapCount       int     `json:"strap_count"`        // Total number of straps
	TotalLinearUnits float64 `json:"total_linear_units"` // Total strap length in grid units (no slack)
	TotalLinearM     float64 `json:"total_linear_m"`     // Total strap length in meters (no slack)
	SlackPercent     float64 `json:"slack_percent"`      // Slack percentage applied
	TotalWithSlackM  float64 `json:"total_with_slack_m"` // Total with slack in meters
}

// unitsPerMeter converts grid units (10 cm each) to meters.
const unitsPerMeter = 10.0

// DefaultStrapInterval is the placed length (grid units) covered by one
// strap; a 12-unit crate with the default gets ceil(12/10) = 2 straps.
const DefaultStrapInterval = 10

// minStrapsPerCrate is the minimum number of straps for any secured crate.
const minStrapsPerCrate = 2

// CalculateLashing computes the total strap length needed to secure the
// placed crates. Each strap wraps the crate's vertical girth (twice width
// plus twice height in the placed orientation); straps are spaced along the
// placed length at strapInterval, with at least two per crate. slackPercent
// adds extra length for tensioners and knots (e.g. 10 for 10%).
func CalculateLashing(placements []Placement, strapInterval int, slackPercent float64) LashingSummary {
	if strapInterval <= 0 {
		strapInterval = DefaultStrapInterval
	}

	var totalUnits float64
	var strapCount int

	for _, p := range placements {
		straps := int(math.Ceil(float64(p.PlacedLength()) / float64(strapInterval)))
		if straps < minStrapsPerCrate {
			straps = minStrapsPerCrate
		}
		girth := float64(2 * (p.PlacedWidth() + p.PlacedHeight()))

		totalUnits += girth * float64(straps)
		strapCount += straps
	}

	totalM := totalUnits / unitsPerMeter
	return LashingSummary{
		StrapCount:       strapCount,
		TotalLinearUnits: totalUnits,
		TotalLinearM:     totalM,
		SlackPercent:     slackPercent,
		TotalWithSlackM:  totalM * (1.0 + slackPercent/100.0),
	}
}
