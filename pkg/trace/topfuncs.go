package trace

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// TopFunction is one row of the ranked function summary. It is derived from
// the tabular report, not from the call tree; the two views come from
// separate parses and are allowed to disagree.
type TopFunction struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percentage"`
	Samples int64   `json:"samples"`
}

// A data row looks like:
//
//	1.03s 21.55% 21.55%      1.03s 21.55%  main.fibonacci
//
// flat, flat%, sum%, cum, cum%, then the function name. The magnitude of the
// flat column becomes the sample count, unit stripped.
var topRowPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)[a-zA-Zµ]*\s+(\d+(?:\.\d+)?)%\s+\d+(?:\.\d+)?%\s+\d+(?:\.\d+)?[a-zA-Zµ]*\s+\d+(?:\.\d+)?%\s+(.+)$`)

// ParseTop extracts the ranked function list from a tabular report. Header
// lines and malformed rows are skipped; at most limit entries are returned,
// all of them when limit is zero or negative.
func ParseTop(r io.Reader, limit int) []TopFunction {
	var out []TopFunction

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if limit > 0 && len(out) >= limit {
			break
		}

		m := topRowPattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}

		flat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		percent, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		out = append(out, TopFunction{
			Name:    strings.TrimSpace(m[3]),
			Percent: percent,
			Samples: int64(flat),
		})
	}

	return out
}
