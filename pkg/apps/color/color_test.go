package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophertrace/flameprof/pkg/errors"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Conversion
	}{
		{
			name:  "pure red hex",
			input: "#ff0000",
			want:  Conversion{Hex: "#ff0000", RGB: RGB{255, 0, 0}, HSL: HSL{0, 100, 50}},
		},
		{
			name:  "hex without hash",
			input: "00ff00",
			want:  Conversion{Hex: "#00ff00", RGB: RGB{0, 255, 0}, HSL: HSL{120, 100, 50}},
		},
		{
			name:  "rgb blue",
			input: "rgb(0, 0, 255)",
			want:  Conversion{Hex: "#0000ff", RGB: RGB{0, 0, 255}, HSL: HSL{240, 100, 50}},
		},
		{
			name:  "white",
			input: "rgb(255,255,255)",
			want:  Conversion{Hex: "#ffffff", RGB: RGB{255, 255, 255}, HSL: HSL{0, 0, 100}},
		},
		{
			name:  "black",
			input: "#000000",
			want:  Conversion{Hex: "#000000", RGB: RGB{0, 0, 0}, HSL: HSL{0, 0, 0}},
		},
		{
			name:  "hsl round trip to rgb",
			input: "hsl(120, 100%, 50%)",
			want:  Conversion{Hex: "#00ff00", RGB: RGB{0, 255, 0}, HSL: HSL{120, 100, 50}},
		},
		{
			name:  "mid gray from hsl",
			input: "hsl(0, 0%, 50%)",
			want:  Conversion{Hex: "#808080", RGB: RGB{128, 128, 128}, HSL: HSL{0, 0, 50.2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestConvertRejectsBadInput(t *testing.T) {
	for _, input := range []string{
		"",
		"#12345",
		"rgb(256, 0, 0)",
		"hsl(361, 10%, 10%)",
		"hsl(10, 120%, 10%)",
		"not a color",
	} {
		_, err := Convert(input)
		assert.True(t, errors.IsInvalidError(err), input)
	}
}
