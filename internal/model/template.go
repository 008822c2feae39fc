package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable manifest that captures crates, the
// truck, and settings but not planning results.
type ProjectTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Truck       Truck        `json:"truck"`
	Crates      []Crate      `json:"crates"`
	Settings    StowSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
// It copies the truck, crates, and settings but intentionally excludes
// results.
func NewProjectTemplate(name, description string, truck Truck, crates []Crate, settings StowSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Truck:       truck,
		Crates:      copyCrates(crates),
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template. Crates are
// renumbered from 1 so the new project's IDs are independent of whatever
// manifest the template was captured from.
func (t ProjectTemplate) ToProject(projectName string) Project {
	p := NewProject()
	p.Name = projectName
	p.Truck = t.Truck
	p.Settings = t.Settings
	p.Crates = copyCrates(t.Crates)
	for i := range p.Crates {
		p.Crates[i].ID = i + 1
	}
	return p
}

// Touch updates the UpdatedAt timestamp.
func (t *ProjectTemplate) Touch() {
	t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

func copyCrates(crates []Crate) []Crate {
	out := make([]Crate, len(crates))
	copy(out, crates)
	return out
}

// TemplateStore holds all saved templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore returns an empty store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProjectTemplate{}}
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (s *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			return &s.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (s *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range s.Templates {
		if s.Templates[i].Name == name {
			return &s.Templates[i]
		}
	}
	return nil
}

// Names returns the saved template names.
func (s *TemplateStore) Names() []string {
	names := make([]string, len(s.Templates))
	for i, t := range s.Templates {
		names[i] = t.Name
	}
	return names
}

// Remove deletes the template with the given ID. Returns true if removed.
func (s *TemplateStore) Remove(id string) bool {
	for i := range s.Templates {
		if s.Templates[i].ID == id {
			s.Templates = append(s.Templates[:i], s.Templates[i+1:]...)
			return true
		}
	}
	return false
}
