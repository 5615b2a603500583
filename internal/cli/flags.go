package cli

import (
	"strings"

	"github.com/matzehuels/algoviz/pkg/errors"
)

// parseValues parses the --values flag. An empty flag yields nil.
func parseValues(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return errors.ParseInts(raw)
}
