package model

import "github.com/google/uuid"

// All dimensions are integer grid units. One unit corresponds to 10 cm,
// which keeps real-world truck interiors exact while the occupancy grid
// stays small enough to scan exhaustively.

// Crate represents a rectangular box to be loaded. Extents are immutable
// once handed to the planner; the ID must be unique within one plan.
type Crate struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Length   int    `json:"length"`
	Quantity int    `json:"quantity"`
}

// NewCrate creates a crate with quantity 1.
func NewCrate(id int, label string, w, h, l int) Crate {
	return Crate{
		ID:       id,
		Label:    label,
		Width:    w,
		Height:   h,
		Length:   l,
		Quantity: 1,
	}
}

// Volume returns the crate volume in grid cells.
func (c Crate) Volume() int {
	return c.Width * c.Height * c.Length
}

// ExpandCrates expands crates with Quantity > 1 into individual crates.
// Extra copies receive fresh IDs above the highest ID in the input so
// every physical box keeps a unique identity in the instruction map.
func ExpandCrates(crates []Crate) []Crate {
	maxID := 0
	for _, c := range crates {
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	var expanded []Crate
	for _, c := range crates {
		qty := c.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			cp := c
			cp.Quantity = 1
			if i > 0 {
				maxID++
				cp.ID = maxID
			}
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// Truck represents the cargo volume crates are loaded into.
type Truck struct {
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Length int    `json:"length"`
}

// NewTruck creates a truck with the given interior extents.
func NewTruck(label string, w, h, l int) Truck {
	return Truck{Label: label, Width: w, Height: h, Length: l}
}

// Volume returns the truck interior volume in grid cells.
func (t Truck) Volume() int {
	return t.Width * t.Height * t.Length
}

// LoadingInstruction is the per-crate output of a planning run: where the
// crate goes, in which orientation, and in which order. Step numbers are
// 1-based and follow commit order. Z is included so the instruction alone
// is enough to position the crate without replaying the planner.
type LoadingInstruction struct {
	Step             int  `json:"step"`
	CrateID          int  `json:"crate_id"`
	X                int  `json:"x"`
	Y                int  `json:"y"`
	Z                int  `json:"z"`
	TurnedHorizontal bool `json:"turned_horizontal"` // width/length swapped
	TurnedVertical   bool `json:"turned_vertical"`   // height/length swapped
}

// Placement is a committed crate position inside the truck.
type Placement struct {
	Crate            Crate `json:"crate"`
	X                int   `json:"x"`
	Y                int   `json:"y"`
	Z                int   `json:"z"`
	TurnedHorizontal bool  `json:"turned_horizontal"`
	TurnedVertical   bool  `json:"turned_vertical"`
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() int {
	if p.TurnedHorizontal {
		return p.Crate.Length
	}
	return p.Crate.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() int {
	if p.TurnedVertical {
		return p.Crate.Length
	}
	return p.Crate.Height
}

// PlacedLength returns the effective length considering rotation.
func (p Placement) PlacedLength() int {
	switch {
	case p.TurnedHorizontal:
		return p.Crate.Width
	case p.TurnedVertical:
		return p.Crate.Height
	default:
		return p.Crate.Length
	}
}

// PlanResult holds the full solution of one planning run. Placements are
// ordered by step; Instructions is keyed by crate ID.
type PlanResult struct {
	Truck        Truck                      `json:"truck"`
	Placements   []Placement                `json:"placements"`
	Instructions map[int]LoadingInstruction `json:"instructions"`
}

// VolumeUsed returns the total volume of all placed crates in grid cells.
func (pr PlanResult) VolumeUsed() int {
	var total int
	for _, p := range pr.Placements {
		total += p.Crate.Volume()
	}
	return total
}

// Utilization returns the volume usage percentage.
func (pr PlanResult) Utilization() float64 {
	tv := pr.Truck.Volume()
	if tv == 0 {
		return 0
	}
	return float64(pr.VolumeUsed()) / float64(tv) * 100.0
}

// Steps returns the number of loading steps in the plan.
func (pr PlanResult) Steps() int {
	return len(pr.Placements)
}

// StowSettings holds planner and output configuration.
type StowSettings struct {
	// SupportRatio is the fraction of a crate's footprint that must rest
	// on occupied cells one layer below (floor placements always pass).
	SupportRatio float64 `json:"support_ratio"`

	// LoaderProfile names the output script dialect for machine loaders.
	LoaderProfile string `json:"loader_profile"`
}

// DefaultSettings returns the standard planner configuration.
func DefaultSettings() StowSettings {
	return StowSettings{
		SupportRatio:  0.75,
		LoaderProfile: "Generic",
	}
}

// LoaderProfile defines an output dialect for automated loading equipment.
// Command fields are fmt format strings: MoveCommand takes X, Y, Z as
// integers, RotateCommand takes the two turn flags as 0/1 integers, and
// PlaceCommand takes the crate ID.
type LoaderProfile struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	StartCode     []string `json:"start_code"`
	HomeCommand   string   `json:"home_command"`
	MoveCommand   string   `json:"move_command"`
	RotateCommand string   `json:"rotate_command"`
	PlaceCommand  string   `json:"place_command"`
	EndCode       []string `json:"end_code"`
	CommentPrefix string   `json:"comment_prefix"`
	IsBuiltIn     bool     `json:"is_built_in,omitempty"`
}

// Built-in loader profiles.
var LoaderProfiles = []LoaderProfile{
	{
		Name:          "AGV-500",
		Description:   "Automated guided vehicle with onboard lift",
		StartCode:     []string{"MODE AUTO", "LIFT UP"},
		HomeCommand:   "GOTO 0 0 0",
		MoveCommand:   "GOTO %d %d %d",
		RotateCommand: "ORIENT %d %d",
		PlaceCommand:  "DROP %d",
		EndCode:       []string{"LIFT DOWN", "MODE IDLE"},
		CommentPrefix: ";",
		IsBuiltIn:     true,
	},
	{
		Name:          "Gantry",
		Description:   "Overhead gantry crane controller",
		StartCode:     []string{"G90", "M80"},
		HomeCommand:   "G28",
		MoveCommand:   "G0 X%d Y%d Z%d",
		RotateCommand: "M71 H%d V%d",
		PlaceCommand:  "M70 P%d",
		EndCode:       []string{"G28", "M81"},
		CommentPrefix: ";",
		IsBuiltIn:     true,
	},
	{
		Name:          "Generic",
		Description:   "Plain command set for generic loaders",
		StartCode:     []string{"BEGIN PLAN"},
		HomeCommand:   "MOVE X0 Y0 Z0",
		MoveCommand:   "MOVE X%d Y%d Z%d",
		RotateCommand: "ROTATE H%d V%d",
		PlaceCommand:  "PLACE %d",
		EndCode:       []string{"END PLAN"},
		CommentPrefix: "#",
		IsBuiltIn:     true,
	},
}

// GetLoaderProfile returns a built-in profile by name, or the Generic
// profile if the name is unknown.
func GetLoaderProfile(name string) LoaderProfile {
	for _, p := range LoaderProfiles {
		if p.Name == name {
			return p
		}
	}
	return LoaderProfiles[len(LoaderProfiles)-1] // Generic (last one)
}

// GetLoaderProfileNames returns the names of all built-in profiles.
func GetLoaderProfileNames() []string {
	var names []string
	for _, p := range LoaderProfiles {
		names = append(names, p.Name)
	}
	return names
}

// Project ties everything together for save/load.
type Project struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Truck    Truck        `json:"truck"`
	Crates   []Crate      `json:"crates"`
	Settings StowSettings `json:"settings"`
	Result   *PlanResult  `json:"result,omitempty"`
}

// NewProject creates an empty project with defaults and a generated ID.
func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Crates:   []Crate{},
		Settings: DefaultSettings(),
	}
}
