package markit

import (
	"strconv"
	"strings"
)

// NumberRenderer renders numeric values with thousands grouping: integer
// kinds without decimals, floating kinds with exactly two. The grouped
// forms contain no characters the escaping policy would touch beyond "-"
// and ".", which stay literal so numbers read as numbers.
type NumberRenderer struct{}

// Supports accepts every built-in integer and float type.
func (NumberRenderer) Supports(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Render returns the grouped decimal form.
func (NumberRenderer) Render(value any, _ *Context) string {
	switch v := value.(type) {
	case int:
		return groupDigits(strconv.FormatInt(int64(v), 10))
	case int8:
		return groupDigits(strconv.FormatInt(int64(v), 10))
	case int16:
		return groupDigits(strconv.FormatInt(int64(v), 10))
	case int32:
		return groupDigits(strconv.FormatInt(int64(v), 10))
	case int64:
		return groupDigits(strconv.FormatInt(v, 10))
	case uint:
		return groupDigits(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return groupDigits(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return groupDigits(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return groupDigits(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return groupDigits(strconv.FormatUint(v, 10))
	case float32:
		return groupFloat(strconv.FormatFloat(float64(v), 'f', 2, 32))
	case float64:
		return groupFloat(strconv.FormatFloat(v, 'f', 2, 64))
	}
	return stringify(value)
}

// Priority implements [Renderer].
func (NumberRenderer) Priority() int { return 60 }

// Name implements [Renderer].
func (NumberRenderer) Name() string { return "number" }

// groupDigits inserts comma separators into a decimal integer string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	if pre := n % 3; pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := n % 3; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// groupFloat groups the integer part of a fixed-point decimal string.
func groupFloat(s string) string {
	intPart, frac, ok := strings.Cut(s, ".")
	if !ok {
		return groupDigits(s)
	}
	return groupDigits(intPart) + "." + frac
}
