package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that captures
// walls, stairs, roofs, and settings for starting new drawings.
type ProjectTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Walls       []Wall        `json:"walls"`
	Stairs      []Stairs      `json:"stairs"`
	Roofs       []Roof        `json:"roofs"`
	Settings    DraftSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
func NewProjectTemplate(name, description string, p Project) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Walls:       copyWalls(p.Walls),
		Stairs:      append([]Stairs{}, p.Stairs...),
		Roofs:       append([]Roof{}, p.Roofs...),
		Settings:    p.Settings,
	}
}

// ToProject creates a new Project from this template.
// Elements get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	walls := make([]Wall, len(t.Walls))
	for i, w := range t.Walls {
		walls[i] = NewWall(w.Label, w.Start, w.End, w.Thickness, w.Height)
		walls[i].Material = w.Material
		for _, op := range w.Openings {
			walls[i].Openings = append(walls[i].Openings,
				NewOpening(op.Kind, op.Position, op.Width, op.Height, op.SillHeight))
		}
	}

	stairs := make([]Stairs, len(t.Stairs))
	for i, s := range t.Stairs {
		stairs[i] = s
		stairs[i].ID = uuid.New().String()[:8]
	}

	roofs := make([]Roof, len(t.Roofs))
	for i, r := range t.Roofs {
		roofs[i] = r
		roofs[i].ID = uuid.New().String()[:8]
	}

	return Project{
		Name:     projectName,
		Walls:    walls,
		Stairs:   stairs,
		Roofs:    roofs,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyWalls creates a deep copy of a walls slice including opening lists.
func copyWalls(walls []Wall) []Wall {
	if walls == nil {
		return []Wall{}
	}
	cp := make([]Wall, len(walls))
	for i, w := range walls {
		cp[i] = w
		cp[i].Openings = append([]WallOpening{}, w.Openings...)
	}
	return cp
}
