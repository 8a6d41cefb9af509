package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTopReport = `File: sample-app
Type: cpu
Duration: 5.11s, Total samples = 4.78s (93.54%)
Showing nodes accounting for 4.26s, 89.12% of 4.78s total
Dropped 63 nodes (cum <= 0.02s)
      flat  flat%   sum%        cum   cum%
     1030ms 21.55% 21.55%     1030ms 21.55%  main.fibonacci
      820ms 17.15% 38.70%      820ms 17.15%  main.bubbleSort
      540ms 11.30% 50.00%      600ms 12.55%  runtime.mallocgc
      not a row at all
      410ms  8.58% 58.58%      410ms  8.58%  crypto/sha256.(*digest).Write
`

func TestParseTop(t *testing.T) {
	got := ParseTop(strings.NewReader(sampleTopReport), 0)
	require.Len(t, got, 4)

	assert.Equal(t, TopFunction{Name: "main.fibonacci", Percent: 21.55, Samples: 1030}, got[0])
	assert.Equal(t, TopFunction{Name: "main.bubbleSort", Percent: 17.15, Samples: 820}, got[1])
	assert.Equal(t, "runtime.mallocgc", got[2].Name)
	assert.Equal(t, "crypto/sha256.(*digest).Write", got[3].Name)
}

func TestParseTopLimit(t *testing.T) {
	got := ParseTop(strings.NewReader(sampleTopReport), 2)
	require.Len(t, got, 2)
	assert.Equal(t, "main.fibonacci", got[0].Name)
	assert.Equal(t, "main.bubbleSort", got[1].Name)
}

func TestParseTopEmptyAndGarbage(t *testing.T) {
	assert.Empty(t, ParseTop(strings.NewReader(""), 10))
	assert.Empty(t, ParseTop(strings.NewReader("flat flat% sum% cum cum%\ngarbage\n"), 10))
}
