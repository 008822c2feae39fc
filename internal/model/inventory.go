package model

import "github.com/google/uuid"

// TruckPreset represents a reusable truck interior definition.
type TruckPreset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Length int    `json:"length"`
}

// NewTruckPreset creates a new TruckPreset with a generated ID.
func NewTruckPreset(name string, w, h, l int) TruckPreset {
	return TruckPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
		Length: l,
	}
}

// ToTruck converts the preset into a Truck for planning.
func (tp TruckPreset) ToTruck() Truck {
	return NewTruck(tp.Name, tp.Width, tp.Height, tp.Length)
}

// CratePreset represents a reusable crate type definition.
type CratePreset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Length int    `json:"length"`
}

// NewCratePreset creates a new CratePreset with a generated ID.
func NewCratePreset(name string, w, h, l int) CratePreset {
	return CratePreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
		Length: l,
	}
}

// ToCrate converts the preset into a Crate with the given id and quantity.
func (cp CratePreset) ToCrate(id, qty int) Crate {
	c := NewCrate(id, cp.Name, cp.Width, cp.Height, cp.Length)
	c.Quantity = qty
	return c
}

// Inventory holds the user's saved truck and crate presets.
type Inventory struct {
	Trucks []TruckPreset `json:"trucks"`
	Crates []CratePreset `json:"crates"`
}

// DefaultInventory returns an inventory populated with common vehicle
// interiors and crate types (extents in grid units of 10 cm).
func DefaultInventory() Inventory {
	return Inventory{
		Trucks: []TruckPreset{
			NewTruckPreset("Cargo Van", 17, 13, 30),
			NewTruckPreset("7.5t Box Truck", 24, 22, 61),
			NewTruckPreset("20ft Container", 23, 23, 59),
			NewTruckPreset("40ft Container", 23, 23, 120),
			NewTruckPreset("53ft Trailer", 25, 27, 161),
		},
		Crates: []CratePreset{
			NewCratePreset("Euro Pallet Box", 8, 10, 12),
			NewCratePreset("Half Pallet Box", 8, 10, 6),
			NewCratePreset("Drum Crate", 6, 9, 6),
			NewCratePreset("Appliance Crate", 8, 18, 8),
			NewCratePreset("Beam Crate", 4, 4, 30),
		},
	}
}

// FindTruckByID returns a pointer to the truck preset with the given ID, or nil.
func (inv *Inventory) FindTruckByID(id string) *TruckPreset {
	for i := range inv.Trucks {
		if inv.Trucks[i].ID == id {
			return &inv.Trucks[i]
		}
	}
	return nil
}

// FindCrateByID returns a pointer to the crate preset with the given ID, or nil.
func (inv *Inventory) FindCrateByID(id string) *CratePreset {
	for i := range inv.Crates {
		if inv.Crates[i].ID == id {
			return &inv.Crates[i]
		}
	}
	return nil
}

// FindTruckByName returns a pointer to the first truck preset with the given name, or nil.
func (inv *Inventory) FindTruckByName(name string) *TruckPreset {
	for i := range inv.Trucks {
		if inv.Trucks[i].Name == name {
			return &inv.Trucks[i]
		}
	}
	return nil
}

// FindCrateByName returns a pointer to the first crate preset with the given name, or nil.
func (inv *Inventory) FindCrateByName(name string) *CratePreset {
	for i := range inv.Crates {
		if inv.Crates[i].Name == name {
			return &inv.Crates[i]
		}
	}
	return nil
}

// TruckNames returns the preset truck names.
func (inv *Inventory) TruckNames() []string {
	names := make([]string, len(inv.Trucks))
	for i, t := range inv.Trucks {
		names[i] = t.Name
	}
	return names
}

// CrateNames returns the preset crate names.
func (inv *Inventory) CrateNames() []string {
	names := make([]string, len(inv.Crates))
	for i, c := range inv.Crates {
		names[i] = c.Name
	}
	return names
}
