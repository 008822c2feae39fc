package script

import (
	"fmt"
	"strings"

	"github.com/piwi3910/StowPlan/internal/model"
)

// ParsedStep is one reconstructed loading instruction plus the raw lines it
// came from.
type ParsedStep struct {
	Instruction model.LoadingInstruction
	Lines       []string
}

// Parser reconstructs loading instructions from a loader script written in a
// known profile dialect. It is the inverse of Generate for scripts the
// generator produced and is tolerant of reordered or missing comments.
type Parser struct {
	profile model.LoaderProfile
}

func NewParser(profile model.LoaderProfile) *Parser {
	return &Parser{profile: profile}
}

// Parse scans the script and returns one step per place command. Orient and
// move commands update pending state; a place command commits it.
func (p *Parser) Parse(text string) ([]ParsedStep, error) {
	var steps []ParsedStep

	var pending model.LoadingInstruction
	var pendingLines []string

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, p.profile.CommentPrefix) {
			continue
		}
		if p.isBoilerplate(line) {
			continue
		}

		var h, v, x, y, z, id int
		switch {
		case scanLine(line, p.profile.RotateCommand, &h, &v):
			pending.TurnedHorizontal = h != 0
			pending.TurnedVertical = v != 0
			pendingLines = append(pendingLines, line)

		case scanLine(line, p.profile.MoveCommand, &x, &y, &z):
			pending.X, pending.Y, pending.Z = x, y, z
			pendingLines = append(pendingLines, line)

		case scanLine(line, p.profile.PlaceCommand, &id):
			pending.CrateID = id
			pending.Step = len(steps) + 1
			steps = append(steps, ParsedStep{
				Instruction: pending,
				Lines:       append(pendingLines, line),
			})
			pending = model.LoadingInstruction{}
			pendingLines = nil

		default:
			return nil, fmt.Errorf("line %d: unrecognized command %q for profile %s",
				lineNo+1, line, p.profile.Name)
		}
	}

	return steps, nil
}

// Instructions returns the parsed steps as an instruction map keyed by
// crate ID, matching the shape a plan result carries.
func (p *Parser) Instructions(text string) (map[int]model.LoadingInstruction, error) {
	steps, err := p.Parse(text)
	if err != nil {
		return nil, err
	}
	out := make(map[int]model.LoadingInstruction, len(steps))
	for _, s := range steps {
		if _, dup := out[s.Instruction.CrateID]; dup {
			return nil, fmt.Errorf("crate %d placed twice", s.Instruction.CrateID)
		}
		out[s.Instruction.CrateID] = s.Instruction
	}
	return out, nil
}

// isBoilerplate reports whether the line is part of the profile's fixed
// start, end or homing sequence.
func (p *Parser) isBoilerplate(line string) bool {
	if line == p.profile.HomeCommand {
		return true
	}
	for _, code := range p.profile.StartCode {
		if line == code {
			return true
		}
	}
	for _, code := range p.profile.EndCode {
		if line == code {
			return true
		}
	}
	return false
}

// scanLine matches a line against a command format string. The scan must
// fill every verb, and the line must not carry extra fields beyond the
// format (Sscanf stops at the last verb, so the count check catches those).
func scanLine(line, format string, args ...any) bool {
	n, err := fmt.Sscanf(line, format, args...)
	if err != nil || n != len(args) {
		return false
	}
	return len(strings.Fields(line)) == len(strings.Fields(format))
}
