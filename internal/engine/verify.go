package engine

import (
	"fmt"

	"github.com/piwi3910/StowPlan/internal/model"
)

// ViolationKind classifies a plan defect found during verification.
type ViolationKind string

const (
	ViolationOutOfBounds   ViolationKind = "out-of-bounds"
	ViolationOverlap       ViolationKind = "overlap"
	ViolationUnsupported   ViolationKind = "unsupported"
	ViolationBadStep       ViolationKind = "bad-step"
	ViolationInstruction   ViolationKind = "instruction-mismatch"
	ViolationDuplicateID   ViolationKind = "duplicate-id"
	ViolationDoubleRotated ViolationKind = "double-rotation"
)

// Violation describes a single defect in a plan.
type Violation struct {
	Kind    ViolationKind
	CrateID int
	Detail  string
}

func (v Violation) String() string {
	return fmt.Sprintf("crate %d: %s (%s)", v.CrateID, v.Kind, v.Detail)
}

// Verify re-checks a finished plan independently of the planner: bounds,
// pairwise overlap, the support ratio, step numbering, and consistency
// between placements and instructions. It returns nil for a sound plan.
//
// The support check replays placements in step order against a fresh grid,
// matching the state each crate was committed under.
func Verify(truck model.Truck, settings model.StowSettings, result model.PlanResult) []Violation {
	var violations []Violation

	seen := make(map[int]bool, len(result.Placements))
	grid := newOccupancyGrid(truck.Width, truck.Height, truck.Length)

	for i, p := range result.Placements {
		id := p.Crate.ID

		if seen[id] {
			violations = append(violations, Violation{
				Kind: ViolationDuplicateID, CrateID: id,
				Detail: "crate appears more than once",
			})
			continue
		}
		seen[id] = true

		if p.TurnedHorizontal && p.TurnedVertical {
			violations = append(violations, Violation{
				Kind: ViolationDoubleRotated, CrateID: id,
				Detail: "both turn flags set; only three rotations are modeled",
			})
		}

		w, h, l := p.PlacedWidth(), p.PlacedHeight(), p.PlacedLength()
		if p.X < 0 || p.Y < 0 || p.Z < 0 ||
			p.X+w > truck.Width || p.Y+h > truck.Height || p.Z+l > truck.Length {
			violations = append(violations, Violation{
				Kind: ViolationOutOfBounds, CrateID: id,
				Detail: fmt.Sprintf("box (%d,%d,%d)+%dx%dx%d outside %dx%dx%d truck",
					p.X, p.Y, p.Z, w, h, l, truck.Width, truck.Height, truck.Length),
			})
			continue
		}

		if !grid.boxFree(p.X, p.Y, p.Z, w, h, l) {
			violations = append(violations, Violation{
				Kind: ViolationOverlap, CrateID: id,
				Detail: "box intersects an earlier placement",
			})
			continue
		}

		if p.Y > 0 {
			required := requiredSupport(w*l, settings.SupportRatio)
			if got := grid.supportedCells(p.X, p.Y, p.Z, w, l); got < required {
				violations = append(violations, Violation{
					Kind: ViolationUnsupported, CrateID: id,
					Detail: fmt.Sprintf("%d of %d required footprint cells supported", got, required),
				})
			}
		}

		grid.occupy(p.X, p.Y, p.Z, w, h, l)

		inst, ok := result.Instructions[id]
		switch {
		case !ok:
			violations = append(violations, Violation{
				Kind: ViolationInstruction, CrateID: id,
				Detail: "placement has no instruction",
			})
		case inst.Step != i+1:
			violations = append(violations, Violation{
				Kind: ViolationBadStep, CrateID: id,
				Detail: fmt.Sprintf("instruction step %d, expected %d", inst.Step, i+1),
			})
		case inst.X != p.X || inst.Y != p.Y || inst.Z != p.Z ||
			inst.TurnedHorizontal != p.TurnedHorizontal || inst.TurnedVertical != p.TurnedVertical:
			violations = append(violations, Violation{
				Kind: ViolationInstruction, CrateID: id,
				Detail: "instruction position or rotation disagrees with placement",
			})
		}
	}

	for id := range result.Instructions {
		if !seen[id] {
			violations = append(violations, Violation{
				Kind: ViolationInstruction, CrateID: id,
				Detail: "instruction has no placement",
			})
		}
	}

	return violations
}
