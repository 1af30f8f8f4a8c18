package model

// MachineProfile defines a post-processor configuration for different CNC
// controllers. The emitter consumes these verbatim; it contains no decision
// logic of its own.
type MachineProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	Units       string `json:"units"`       // "inch" or "mm"

	// Startup codes
	StartCode    []string `json:"start_code"`    // Commands at start of program
	ToolChange   string   `json:"tool_change"`   // Tool change command (e.g., "T%d M06")
	WorkOffset   string   `json:"work_offset"`   // Work coordinate selection (e.g., "G54")
	SpindleStart string   `json:"spindle_start"` // Spindle on command (e.g., "S%d M03")
	SpindleStop  string   `json:"spindle_stop"`  // Spindle off command
	CoolantOn    string   `json:"coolant_on"`    // Coolant on command, empty to skip
	CoolantOff   string   `json:"coolant_off"`   // Coolant off command

	// Motion verbs
	RapidMove  string `json:"rapid_move"`  // G00 or equivalent
	FeedMove   string `json:"feed_move"`   // G01 or equivalent
	ArcCW      string `json:"arc_cw"`      // G02 clockwise arc
	ArcCCW     string `json:"arc_ccw"`     // G03 counter-clockwise arc
	CompLeft   string `json:"comp_left"`   // G41 cutter compensation left
	CompRight  string `json:"comp_right"`  // G42 cutter compensation right
	CompCancel string `json:"comp_cancel"` // G40 compensation cancel

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of program

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., "(")
	CommentSuffix string `json:"comment_suffix"` // Comment end (e.g., ")")

	// Number formatting
	DecimalPlaces int  `json:"decimal_places"` // Decimal places for coordinate words
	IsBuiltIn     bool `json:"is_built_in"`    // Built-in profiles cannot be edited
}

// Built-in machine profiles.
var MachineProfiles = []MachineProfile{
	{
		Name:          "Haas",
		Description:   "Haas VF-series mill control",
		Units:         "inch",
		StartCode:     []string{"G20 G17 G40 G49 G80 G90"},
		ToolChange:    "T%d M06",
		WorkOffset:    "G54",
		SpindleStart:  "S%d M03",
		SpindleStop:   "M05",
		CoolantOn:     "M08",
		CoolantOff:    "M09",
		RapidMove:     "G00",
		FeedMove:      "G01",
		ArcCW:         "G02",
		ArcCCW:        "G03",
		CompLeft:      "G41",
		CompRight:     "G42",
		CompCancel:    "G40",
		EndCode:       []string{"G00 Z[SafeZ]", "G28 G91 Z0.", "G90", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
	{
		Name:          "Fanuc",
		Description:   "Fanuc 0i/30i series mill control",
		Units:         "inch",
		StartCode:     []string{"G20 G17 G40 G49 G80", "G90"},
		ToolChange:    "T%d M06",
		WorkOffset:    "G54",
		SpindleStart:  "S%d M03",
		SpindleStop:   "M05",
		CoolantOn:     "M08",
		CoolantOff:    "M09",
		RapidMove:     "G00",
		FeedMove:      "G01",
		ArcCW:         "G02",
		ArcCCW:        "G03",
		CompLeft:      "G41",
		CompRight:     "G42",
		CompCancel:    "G40",
		EndCode:       []string{"G00 Z[SafeZ]", "G91 G28 Z0.", "G90", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		Units:         "inch",
		StartCode:     []string{"G20 G17 G40 G49 G90", "G94"},
		ToolChange:    "T%d M6",
		WorkOffset:    "G54",
		SpindleStart:  "S%d M3",
		SpindleStop:   "M5",
		CoolantOn:     "M8",
		CoolantOff:    "M9",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		ArcCCW:        "G3",
		CompLeft:      "G41",
		CompRight:     "G42",
		CompCancel:    "G40",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
	{
		Name:          "Generic",
		Description:   "Generic word-address G-code",
		Units:         "inch",
		StartCode:     []string{"G20 G90 G17"},
		ToolChange:    "T%d M06",
		WorkOffset:    "G54",
		SpindleStart:  "S%d M03",
		SpindleStop:   "M05",
		CoolantOn:     "",
		CoolantOff:    "",
		RapidMove:     "G00",
		FeedMove:      "G01",
		ArcCW:         "G02",
		ArcCCW:        "G03",
		CompLeft:      "G41",
		CompRight:     "G42",
		CompCancel:    "G40",
		EndCode:       []string{"G00 Z[SafeZ]", "G00 X0. Y0.", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
		IsBuiltIn:     true,
	},
}

// GetProfile returns a machine profile by name, or the Generic profile when
// the name is unknown.
func GetProfile(name string) MachineProfile {
	for _, p := range MachineProfiles {
		if p.Name == name {
			return p
		}
	}
	return MachineProfiles[len(MachineProfiles)-1] // Generic is last
}

// GetProfileNames returns the names of all built-in profiles.
func GetProfileNames() []string {
	var names []string
	for _, p := range MachineProfiles {
		names = append(names, p.Name)
	}
	return names
}
