package dissect

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Page numbers are read the way a browser would: skip leading whitespace,
// take the longest numeric prefix and ignore the rest.
var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

func nan() Stat {
	return Stat(math.NaN())
}

func parseInt(text string) Stat {
	m := intPrefix.FindString(strings.TrimSpace(text))
	if m == "" {
		return nan()
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nan()
	}
	return Stat(n)
}

func parseFloat(text string) Stat {
	m := floatPrefix.FindString(strings.TrimSpace(text))
	if m == "" {
		return nan()
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nan()
	}
	return Stat(n)
}

func parsePercentage(text string) Stat {
	return parseInt(strings.ReplaceAll(text, "%", ""))
}
