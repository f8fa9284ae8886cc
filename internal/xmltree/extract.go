package xmltree

import (
	"strconv"
	"strings"
	"time"

	"crediq/bureau-xml/internal/dateutils"
)

// Text extracts a best-effort scalar string from a node.
//   - Scalar: returned trimmed.
//   - Mapping with a text-content key: that value, trimmed.
//   - Mapping without one: the first Scalar value among its children in
//     lexical key order (element children before attributes).
//   - Sequence: the text of its first element.
//   - nil: empty string.
//
// Never fails; anything unextractable is an empty string.
func Text(n Node) string {
	switch val := n.(type) {
	case nil:
		return ""
	case Scalar:
		return strings.TrimSpace(string(val))
	case Sequence:
		if len(val) == 0 {
			return ""
		}
		return Text(val[0])
	case Mapping:
		if inner, ok := val[TextKey]; ok {
			return Text(inner)
		}
		// Element children first, attributes as a last resort.
		keys := sortedKeys(val)
		for _, k := range keys {
			if strings.HasPrefix(k, attrPrefix) {
				continue
			}
			if s, ok := val[k].(Scalar); ok {
				return strings.TrimSpace(string(s))
			}
		}
		for _, k := range keys {
			if !strings.HasPrefix(k, attrPrefix) {
				continue
			}
			if s, ok := val[k].(Scalar); ok {
				return strings.TrimSpace(string(s))
			}
		}
		return ""
	default:
		return ""
	}
}

// Number extracts a numeric value from a node. Non-numeric characters are
// stripped first (bureau amounts arrive with currency symbols and grouping
// separators). Returns 0 when nothing numeric remains.
func Number(n Node) float64 {
	text := Text(n)
	if text == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// Date extracts a date from a node, trying the bureau's fixed-width
// YYYYMMDD encoding first and falling back to generic formats. Returns nil
// when the node holds no parseable date.
func Date(n Node) *time.Time {
	text := Text(n)
	if text == "" {
		return nil
	}

	if t := dateutils.ParseCompact(text); t != nil {
		return t
	}

	t, err := dateutils.ParseFlexible(text)
	if err != nil {
		return nil
	}
	return &t
}
