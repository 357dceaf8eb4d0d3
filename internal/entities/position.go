package entities

// Position identifies a place inside a document independently of the renderer
// that produced it. At most one of the locator fields carries meaning for a
// given document format: FlowLocator for reflowable documents, Page for
// fixed-layout paged documents, Line (plus Offset) for plain text. A nil
// locator field means "not applicable to this format", not zero.
//
// Percentage is always present and is the only cross-format comparable
// measure. Writers clamp it to [0, 100] before persisting.
type Position struct {
	FlowLocator *string `gorm:"size:2048" json:"flow_locator,omitempty"`
	Page        *int    `json:"page,omitempty"`   // 1-based
	Line        *int    `json:"line,omitempty"`   // 1-based
	Offset      *int    `json:"offset,omitempty"` // character offset within Line
	Percentage  float64 `json:"percentage"`       // 0-100
}

// Clamped returns a copy with Percentage bounded to [0, 100]. Renderers
// occasionally overshoot on rounding; the store never persists the overshoot.
func (p Position) Clamped() Position {
	if p.Percentage < 0 {
		p.Percentage = 0
	} else if p.Percentage > 100 {
		p.Percentage = 100
	}
	return p
}

// Complete reports whether the position marks the end of the document.
func (p Position) Complete() bool {
	return p.Percentage >= 100
}
