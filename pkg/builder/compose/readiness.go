package compose

import (
	"fmt"
	"strings"

	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
)

// Readiness is the result of the validation gate.
type Readiness struct {
	Required []segment.ID `json:"required"`
	Missing  []segment.ID `json:"missing"`
}

// Ready is true when every required segment has content and there is at
// least one required segment.
func (r Readiness) Ready() bool {
	return len(r.Required) > 0 && len(r.Missing) == 0
}

// Check evaluates st without modifying it.
func Check(st state.BuilderState) Readiness {
	required := VisibleSegments(st)
	missing := make([]segment.ID, 0)
	for _, id := range required {
		if len(SegmentLines(st, id)) == 0 {
			missing = append(missing, id)
		}
	}
	return Readiness{Required: required, Missing: missing}
}

// BlockedError carries a failed gate to callers that speak errors.
type BlockedError struct {
	Missing []segment.ID
}

func (e *BlockedError) Error() string {
	if len(e.Missing) == 0 {
		return "prompt is empty"
	}
	names := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		names[i] = string(id)
	}
	return fmt.Sprintf("missing content in: %s", strings.Join(names, ", "))
}

// Err returns nil when ready, or a *BlockedError.
func (r Readiness) Err() error {
	if r.Ready() {
		return nil
	}
	return &BlockedError{Missing: append([]segment.ID{}, r.Missing...)}
}
