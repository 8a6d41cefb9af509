package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophertrace/flameprof/pkg/errors"
)

func TestLookup(t *testing.T) {
	s, err := Lookup("UA100")
	require.Nil(t, err)
	assert.Equal(t, "United", s.Airline)
	assert.Equal(t, "SFO", s.Origin)
	assert.Equal(t, "on time", s.Status)
}

func TestLookupNormalizesCode(t *testing.T) {
	for _, code := range []string{"ua100", " UA100 ", "Ua100"} {
		s, err := Lookup(code)
		require.Nil(t, err, code)
		assert.Equal(t, "UA100", s.Flight)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("XX000")
	assert.True(t, errors.IsInvalidError(err))

	_, err = Lookup("")
	assert.True(t, errors.IsInvalidError(err))
}

func TestKnownCoversSchedule(t *testing.T) {
	codes := Known()
	assert.Contains(t, codes, "DL89")
	assert.Contains(t, codes, "LH454")

	for _, code := range codes {
		_, err := Lookup(code)
		assert.Nil(t, err, code)
	}
}
