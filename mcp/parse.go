package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atria-go/atria/domain"
)

// parseQueryVector parses a comma-separated list of floats into a query
// point, e.g. "1.0,2.5,3.0".
func parseQueryVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid query coordinate %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseExcludeRangeArg parses a "first:last" inclusive index band.
func parseExcludeRangeArg(s string) (*domain.ExcludeRange, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid exclude range %q, expected \"first:last\"", s)
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude range first index %q: %w", parts[0], err)
	}
	last, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude range last index %q: %w", parts[1], err)
	}
	return &domain.ExcludeRange{First: first, Last: last}, nil
}
