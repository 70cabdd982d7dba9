package client

import (
	"fmt"
	"strings"
)

// DateLayout is the calendar-date format used in observation paths.
const DateLayout = "2006-01-02"

// param is one named query parameter. A nil value means the parameter
// was not supplied and contributes nothing to the query string.
type param struct {
	name  string
	value any
}

// encodeParams renders the query string, keeping call-site order and
// skipping absent values. The API takes plain ASCII values, so no
// percent-encoding is applied.
func encodeParams(params []param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", p.name, p.value))
	}
	return strings.Join(parts, "&")
}

// joinComponents serializes a component list into the single
// semicolon-separated value the API expects, e.g. "NOx;PM10".
func joinComponents(components []string) any {
	if len(components) == 0 {
		return nil
	}
	return strings.Join(components, ";")
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func optInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

// Bool returns a pointer suitable for optional boolean parameters.
func Bool(v bool) *bool { return &v }

// Int returns a pointer suitable for optional integer parameters.
func Int(v int) *int { return &v }
