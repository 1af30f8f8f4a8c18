package model

import "github.com/google/uuid"

// ToolType classifies a library tool.
type ToolType string

const (
	ToolEndMill    ToolType = "endmill"
	ToolThreadMill ToolType = "threadmill"
	ToolDrill      ToolType = "drill"
)

// Tool represents a reusable cutting tool held in the changer.
type Tool struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         ToolType `json:"type"`
	Diameter     float64  `json:"diameter"`      // in
	ToolNumber   int      `json:"tool_number"`   // Changer slot
	FeedRate     float64  `json:"feed_rate"`     // Default cutting feed (in/min)
	SpindleSpeed int      `json:"spindle_speed"` // Default RPM
}

// NewTool creates a Tool with a generated ID.
func NewTool(name string, toolType ToolType, diameter float64, slot int, feedRate float64, spindleSpeed int) Tool {
	return Tool{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Type:         toolType,
		Diameter:     diameter,
		ToolNumber:   slot,
		FeedRate:     feedRate,
		SpindleSpeed: spindleSpeed,
	}
}

// ApplyToPocket copies this tool's parameters into pocket params.
func (t Tool) ApplyToPocket(p *PocketParams) {
	p.ToolDiameter = t.Diameter
	p.ToolNumber = t.ToolNumber
	p.FeedRate = t.FeedRate
	p.SpindleSpeed = t.SpindleSpeed
}

// ApplyToThread copies this tool's parameters into thread mill params.
func (t Tool) ApplyToThread(p *ThreadMillParams) {
	p.ToolDiameter = t.Diameter
	p.ToolNumber = t.ToolNumber
	p.FeedRate = t.FeedRate
	p.SpindleSpeed = t.SpindleSpeed
}

// ApplyToDrill copies this tool's parameters into drill params.
func (t Tool) ApplyToDrill(p *PeckDrillParams) {
	p.ToolDiameter = t.Diameter
	p.ToolNumber = t.ToolNumber
	p.FeedRate = t.FeedRate
	p.SpindleSpeed = t.SpindleSpeed
}

// Library holds the user's saved tools.
type Library struct {
	Tools []Tool `json:"tools"`
}

// DefaultLibrary returns a library populated with common imperial tooling.
func DefaultLibrary() Library {
	return Library{
		Tools: []Tool{
			NewTool("1/2\" End Mill", ToolEndMill, 0.5, 1, 12.0, 3500),
			NewTool("1/4\" End Mill", ToolEndMill, 0.25, 2, 10.0, 4500),
			NewTool("3/8\" End Mill", ToolEndMill, 0.375, 3, 11.0, 4000),
			NewTool("1/4\" Thread Mill", ToolThreadMill, 0.25, 4, 8.0, 4500),
			NewTool("1/4\" Drill", ToolDrill, 0.25, 5, 5.0, 2800),
			NewTool("#7 Drill (0.201\")", ToolDrill, 0.201, 6, 4.5, 3000),
		},
	}
}

// FindByID returns a pointer to the tool with the given ID, or nil.
func (l *Library) FindByID(id string) *Tool {
	for i := range l.Tools {
		if l.Tools[i].ID == id {
			return &l.Tools[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first tool with the given name, or nil.
func (l *Library) FindByName(name string) *Tool {
	for i := range l.Tools {
		if l.Tools[i].Name == name {
			return &l.Tools[i]
		}
	}
	return nil
}

// Names returns tool names for UI dropdowns, optionally filtered by type.
func (l *Library) Names(types ...ToolType) []string {
	var names []string
	for _, t := range l.Tools {
		if len(types) == 0 {
			names = append(names, t.Name)
			continue
		}
		for _, tt := range types {
			if t.Type == tt {
				names = append(names, t.Name)
				break
			}
		}
	}
	return names
}
