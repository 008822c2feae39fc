package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/StowPlan/internal/model"
)

// Generator produces a loader script from a finished stow plan.
type Generator struct {
	Settings model.StowSettings
	profile  model.LoaderProfile
}

func New(settings model.StowSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetLoaderProfile(settings.LoaderProfile),
	}
}

// NewWithProfile builds a generator for an explicit profile, bypassing the
// built-in lookup. Used for custom profiles loaded from disk.
func NewWithProfile(settings model.StowSettings, profile model.LoaderProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// Profile returns the dialect the generator emits.
func (g *Generator) Profile() model.LoaderProfile {
	return g.profile
}

// Generate produces the full loader script for one plan. Crates appear in
// loading-step order; each gets an orient, a move and a place command.
func (g *Generator) Generate(result model.PlanResult) string {
	var b strings.Builder

	g.writeHeader(&b, result)

	for _, p := range orderedPlacements(result) {
		g.writeCrate(&b, p, result.Instructions[p.Crate.ID])
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, result model.PlanResult) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("StowPlan loader script — %s", result.Truck.Label)))
	b.WriteString(g.comment(fmt.Sprintf("Truck: %d x %d x %d units",
		result.Truck.Width, result.Truck.Height, result.Truck.Length)))
	b.WriteString(g.comment(fmt.Sprintf("Crates: %d, Utilization: %.1f%%",
		result.Steps(), result.Utilization())))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString(p.HomeCommand + "\n")
	b.WriteString("\n")
}

func (g *Generator) writeCrate(b *strings.Builder, p model.Placement, inst model.LoadingInstruction) {
	b.WriteString(g.comment(fmt.Sprintf("--- Step %d: crate %d %s (%dx%dx%d)%s ---",
		inst.Step, p.Crate.ID, p.Crate.Label,
		p.Crate.Width, p.Crate.Height, p.Crate.Length,
		turnedStr(inst))))

	b.WriteString(fmt.Sprintf(g.profile.RotateCommand+"\n",
		boolFlag(inst.TurnedHorizontal), boolFlag(inst.TurnedVertical)))
	b.WriteString(fmt.Sprintf(g.profile.MoveCommand+"\n", inst.X, inst.Y, inst.Z))
	b.WriteString(fmt.Sprintf(g.profile.PlaceCommand+"\n", p.Crate.ID))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString(g.comment("=== Plan complete ==="))
	b.WriteString(g.profile.HomeCommand + "\n")
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + "\n"
}

// orderedPlacements returns placements sorted by loading step.
func orderedPlacements(result model.PlanResult) []model.Placement {
	ordered := append([]model.Placement(nil), result.Placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return result.Instructions[ordered[i].Crate.ID].Step <
			result.Instructions[ordered[j].Crate.ID].Step
	})
	return ordered
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func turnedStr(inst model.LoadingInstruction) string {
	switch {
	case inst.TurnedHorizontal:
		return " [turned horizontal]"
	case inst.TurnedVertical:
		return " [turned vertical]"
	default:
		return ""
	}
}
