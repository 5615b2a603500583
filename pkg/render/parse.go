package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/algoviz/pkg/errors"
)

// ParseCells parses cells written as "row:col", separated by commas or
// spaces, e.g. "4:5, 6:7". Bounds are not checked.
func ParseCells(raw string) ([]Cell, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	cells := make([]Cell, 0, len(fields))
	for _, f := range fields {
		rs, cs, ok := strings.Cut(f, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidCell, "cell %q is not row:col", f)
		}
		row, err1 := strconv.Atoi(rs)
		col, err2 := strconv.Atoi(cs)
		if err1 != nil || err2 != nil {
			return nil, errors.New(errors.ErrCodeInvalidCell, "cell %q is not row:col", f)
		}
		cells = append(cells, Cell{Row: row, Col: col})
	}
	return cells, nil
}
