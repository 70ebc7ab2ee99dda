package dims

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePattern parses a comma-separated pattern string, for example
// "3,N,3", "4,..." or "2,...,N,5". Integer parts become Exact tokens,
// "..." becomes the run marker and anything else names a wildcard.
func ParsePattern(raw string) (Pattern, error) {
	parts := strings.Split(raw, ",")
	p := make(Pattern, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			return nil, fmt.Errorf("empty dimension token in pattern %q", raw)
		case part == "...":
			p = append(p, AnyRun{})
		default:
			if n, err := strconv.Atoi(part); err == nil {
				if n < 0 {
					return nil, fmt.Errorf("negative dimension %d in pattern %q", n, raw)
				}
				p = append(p, Exact{Size: n})
				continue
			}
			if !validLabel(part) {
				return nil, fmt.Errorf("invalid wildcard label %q in pattern %q", part, raw)
			}
			p = append(p, Wild{Label: part})
		}
	}
	return p, nil
}

// ParseShape parses a comma-separated shape string (for example: "4,4,3").
// An empty string is the zero-dimensional shape.
func ParseShape(raw string) (Shape, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Shape{}, nil
	}
	parts := strings.Split(raw, ",")
	s := make(Shape, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty dimension in shape %q", raw)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dimension %q: %w", part, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative dimension %d in shape %q", n, raw)
		}
		s = append(s, n)
	}
	return s, nil
}

func validLabel(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
