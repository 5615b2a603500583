package render

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorPurple = lipgloss.Color("141")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var stateStyles = map[State]lipgloss.Style{
	StateNone:      lipgloss.NewStyle().Foreground(colorWhite),
	StateComparing: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	StateSwapping:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	StateSorted:    lipgloss.NewStyle().Foreground(colorGreen),
	StateCurrent:   lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	StateChecked:   lipgloss.NewStyle().Foreground(colorDim),
	StateFound:     lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	StateVisited:   lipgloss.NewStyle().Foreground(colorBlue),
	StatePath:      lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	StateWall:      lipgloss.NewStyle().Foreground(colorGray),
	StateStart:     lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	StateEnd:       lipgloss.NewStyle().Foreground(colorPurple).Bold(true),
}

// StateStyle returns the terminal style for a visual state.
func StateStyle(s State) lipgloss.Style {
	if st, ok := stateStyles[s]; ok {
		return st
	}
	return stateStyles[StateNone]
}

// Colors used by the SVG sink, keyed like the browser CSS classes.
var stateFill = map[State]string{
	StateNone:      "#5b8def",
	StateComparing: "#f5c542",
	StateSwapping:  "#e05d5d",
	StateSorted:    "#3fb37f",
	StateCurrent:   "#f5c542",
	StateChecked:   "#9aa0a6",
	StateFound:     "#3fb37f",
	StateVisited:   "#7fb8f0",
	StatePath:      "#f5c542",
	StateWall:      "#3c4043",
	StateStart:     "#1a9e9e",
	StateEnd:       "#a259d9",
}

// Fill returns the SVG fill color for a visual state.
func Fill(s State) string {
	if f, ok := stateFill[s]; ok {
		return f
	}
	return stateFill[StateNone]
}
