package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	textScopeStyle = lipgloss.NewStyle().Foreground(colorDim)
	textKindStyle  = lipgloss.NewStyle().Foreground(colorGray)
	textValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// Text writes one human-readable line per event, colored by state.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText creates a text sink writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Emit writes ev as a line.
func (t *Text) Emit(_ context.Context, ev Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.w, FormatEvent(ev))
	return err
}

// FormatEvent renders ev as a single styled line such as
// "[sort] highlight comparing 0,1".
func FormatEvent(ev Event) string {
	var b strings.Builder
	b.WriteString(textScopeStyle.Render("[" + string(ev.Scope) + "]"))
	b.WriteString(" ")
	b.WriteString(textKindStyle.Render(string(ev.Kind)))

	if ev.State != StateNone {
		b.WriteString(" ")
		b.WriteString(StateStyle(ev.State).Render(string(ev.State)))
	}

	switch {
	case ev.Kind == KindOutput:
		b.WriteString(" ")
		b.WriteString(textValueStyle.Render(ev.Text))
	case len(ev.Cells) > 0:
		parts := make([]string, len(ev.Cells))
		for i, c := range ev.Cells {
			parts[i] = c.String()
		}
		b.WriteString(" ")
		b.WriteString(textValueStyle.Render(strings.Join(parts, " ")))
	case ev.Kind == KindUpdate:
		parts := make([]string, 0, len(ev.Indices))
		for i, idx := range ev.Indices {
			if i < len(ev.Values) {
				parts = append(parts, fmt.Sprintf("%d=%d", idx, ev.Values[i]))
			}
		}
		b.WriteString(" ")
		b.WriteString(textValueStyle.Render(strings.Join(parts, ",")))
	case len(ev.Indices) > 0:
		b.WriteString(" ")
		b.WriteString(textValueStyle.Render(joinInts(ev.Indices, ",")))
	case len(ev.Values) > 0 || ev.Kind == KindItems || ev.Kind == KindReset:
		b.WriteString(" ")
		b.WriteString(textValueStyle.Render("[" + joinInts(ev.Values, " ") + "]"))
	}
	return b.String()
}

func joinInts(v []int, sep string) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}

var _ Sink = (*Text)(nil)
