package game

// Style is the visual emphasis of a control. The transport decides how to
// express it (colors, emoji, nothing at all); games only state intent.
type Style int

const (
	StyleNeutral Style = iota
	StylePrimary
	StylePositive
	StyleDanger
)

// Control is one interactive element (a button) in a render directive.
// Data is the action payload a click submits back to the session.
type Control struct {
	Label    string
	Data     string
	Style    Style
	Disabled bool
}

// RenderDirective describes what a session should currently display.
// It is the engine's only outbound channel: the transport turns it into
// whatever UI primitives it supports. Terminal means the session is over
// and no further input will be accepted.
type RenderDirective struct {
	Text     string
	Controls [][]Control // rows of controls
	Terminal bool
}

// Row is a convenience constructor for a row of controls.
func Row(controls ...Control) []Control {
	return controls
}

// DisableAll returns a copy of the directive with every control disabled.
// Used for terminal and expired views.
func (d RenderDirective) DisableAll() RenderDirective {
	rows := make([][]Control, len(d.Controls))
	for i, row := range d.Controls {
		rows[i] = make([]Control, len(row))
		copy(rows[i], row)
		for j := range rows[i] {
			rows[i][j].Disabled = true
		}
	}
	d.Controls = rows
	return d
}
