package segment

// DefaultStructure is used for new states and unknown ids.
const DefaultStructure = "RTF"

// Structure is a named prompt framework.
type Structure struct {
	ID       string `json:"id"`
	TitleKey string `json:"titleKey"`
	// Sections lists the active segments. It also serves as the column order
	// applied when the structure is selected.
	Sections []ID `json:"sections"`
}

var structures = []Structure{
	{ID: "RTF", TitleKey: "structures.RTF.title", Sections: []ID{Role, Goal, OutputFormat}},
	{ID: "TAO", TitleKey: "structures.TAO.title", Sections: []ID{Goal, Constraints, OutputFormat}},
	{ID: "BAB", TitleKey: "structures.BAB.title", Sections: []ID{Context, Goal, Constraints}},
	{ID: "CARE", TitleKey: "structures.CARE.title", Sections: []ID{Context, Goal, OutputFormat, Examples}},
	{ID: "CO-STAR", TitleKey: "structures.CO-STAR.title", Sections: []ID{Context, Goal, Constraints, Inputs, OutputFormat, Role}},
	{ID: "CRISPE", TitleKey: "structures.CRISPE.title", Sections: []ID{Role, Context, Goal, Constraints, Examples}},
	{ID: "STAR", TitleKey: "structures.STAR.title", Sections: []ID{Context, Goal, Constraints, OutputFormat}},
}

var displayLabels = map[string]string{
	"CARE": "CASE",
}

// Structures returns the static structure catalog.
func Structures() []Structure {
	out := make([]Structure, len(structures))
	for i, s := range structures {
		out[i] = s
		out[i].Sections = append([]ID(nil), s.Sections...)
	}
	return out
}

// Lookup finds a structure by id.
func Lookup(id string) (Structure, bool) {
	for _, s := range structures {
		if s.ID == id {
			s.Sections = append([]ID(nil), s.Sections...)
			return s, true
		}
	}
	return Structure{}, false
}

// IsKnownStructure reports whether id names a catalog structure.
func IsKnownStructure(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Segments returns the active segments of a structure. Unknown structures
// activate every segment in canonical order.
func Segments(structureID string) []ID {
	if s, ok := Lookup(structureID); ok {
		return s.Sections
	}
	return All()
}

// DisplayLabel is the name shown for a structure in the UI.
func DisplayLabel(structureID string) string {
	if label, ok := displayLabels[structureID]; ok {
		return label
	}
	return structureID
}

// EffectiveOrder filters the user's segment order down to the segments the
// structure activates, keeping the user's relative order.
func EffectiveOrder(structureID string, userOrder []ID) []ID {
	active := make(map[ID]struct{})
	for _, id := range Segments(structureID) {
		active[id] = struct{}{}
	}
	out := make([]ID, 0, len(active))
	for _, id := range userOrder {
		if _, ok := active[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// IsActive reports whether seg is active in the structure.
func IsActive(structureID string, seg ID) bool {
	for _, id := range Segments(structureID) {
		if id == seg {
			return true
		}
	}
	return false
}
