package trace

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind is the classification of one line of raw stack-trace text.
type LineKind int

const (
	// LineBoundary separates samples: the accumulated stack must be flushed.
	LineBoundary LineKind = iota
	// LineSampleCount carries the weight to attribute to the next flushed stack.
	LineSampleCount
	// LineFrame names one stack frame.
	LineFrame
	// LineNoise carries nothing usable and is skipped.
	LineNoise
)

// Classification is the result of inspecting one trace line.
type Classification struct {
	Kind LineKind

	// Frame holds the extracted frame name when Kind is LineFrame.
	Frame string

	// Weight holds the parsed sample count when Kind is LineSampleCount.
	Weight int64
}

var (
	sampleCountPattern  = regexp.MustCompile(`^(\d+)\s+\d+(?:\.\d+)?(?:ns|us|µs|ms|s|m|h)$`)
	indexedFramePattern = regexp.MustCompile(`^#\s*\d+\s+0x[0-9a-fA-F]+\s+(\S+)`)
	numericTokenPattern = regexp.MustCompile(`^\d+(?:\.\d+)?(?:ns|us|µs|ms|s|m|h|%|B|kB|MB|GB)?$`)
)

// Classify inspects one line of raw stack-trace text and decides whether it
// starts a new sample group, carries a sample count, or names a stack frame.
// It is a pure function: no state, no errors.
func Classify(line string) Classification {
	line = strings.TrimSpace(line)

	if line == "" || strings.HasPrefix(line, "--") {
		return Classification{Kind: LineBoundary}
	}

	if m := sampleCountPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			// Count too large to represent; treat the line as noise.
			return Classification{Kind: LineNoise}
		}
		return Classification{Kind: LineSampleCount, Weight: n}
	}

	// "#<index> <address> <name> <location>" frames carry the name in the
	// third column, everything else uses the first token on the line.
	if m := indexedFramePattern.FindStringSubmatch(line); m != nil {
		return Classification{Kind: LineFrame, Frame: m[1]}
	}

	token := strings.Fields(line)[0]
	if numericTokenPattern.MatchString(token) {
		return Classification{Kind: LineNoise}
	}

	return Classification{Kind: LineFrame, Frame: token}
}
