package model

import (
	"time"

	"github.com/google/uuid"
)

// OperationPreset represents a reusable named parameter bundle for one
// operation kind. Presets capture the full parameter record but not any
// generated program.
type OperationPreset struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Kind        OperationKind     `json:"kind"`
	Pocket      *PocketParams     `json:"pocket,omitempty"`
	Thread      *ThreadMillParams `json:"thread,omitempty"`
	Drill       *PeckDrillParams  `json:"drill,omitempty"`
}

// NewPresetFromOperation creates a preset capturing the operation's
// parameters.
func NewPresetFromOperation(name, description string, op Operation) OperationPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	preset := OperationPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Kind:        op.Kind,
	}
	// Copy the parameter record so later edits to the operation do not
	// mutate the preset.
	switch op.Kind {
	case KindPocket:
		if op.Pocket != nil {
			cp := *op.Pocket
			preset.Pocket = &cp
		}
	case KindThreadMill:
		if op.Thread != nil {
			cp := *op.Thread
			preset.Thread = &cp
		}
	case KindPeckDrill:
		if op.Drill != nil {
			cp := *op.Drill
			cp.Positions = append([]Point2D(nil), cp.Positions...)
			preset.Drill = &cp
		}
	}
	return preset
}

// ToOperation creates a fresh operation from this preset.
func (p OperationPreset) ToOperation(label string) Operation {
	switch p.Kind {
	case KindThreadMill:
		if p.Thread != nil {
			return NewThreadMillOperation(label, *p.Thread)
		}
		return NewThreadMillOperation(label, DefaultThreadMillParams())
	case KindPeckDrill:
		if p.Drill != nil {
			cp := *p.Drill
			cp.Positions = append([]Point2D(nil), cp.Positions...)
			return NewPeckDrillOperation(label, cp)
		}
		return NewPeckDrillOperation(label, DefaultPeckDrillParams())
	default:
		if p.Pocket != nil {
			return NewPocketOperation(label, *p.Pocket)
		}
		return NewPocketOperation(label, DefaultPocketParams())
	}
}

// PresetStore holds a collection of operation presets.
type PresetStore struct {
	Presets []OperationPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{Presets: []OperationPreset{}}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p OperationPreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *OperationPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *OperationPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
