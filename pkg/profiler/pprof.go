package profiler

import (
	"github.com/google/pprof/profile"
	"github.com/spf13/afero"

	"github.com/gophertrace/flameprof/pkg/trace"
)

// ReadProfile parses a pprof protobuf file.
func ReadProfile(fs afero.Fs, path string) (*profile.Profile, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return profile.Parse(f)
}

// TreeFromProfile merges every sample of a parsed profile into a weighted
// call tree, using the sample value at valueIndex (negative or out of range
// picks the last one, which is cpu time and alloc space for the profiles the
// runner produces). Samples carry locations leaf-first; the merge wants them
// root-first.
func TreeFromProfile(p *profile.Profile, valueIndex int) *trace.Frame {
	root := &trace.Frame{Name: "root"}
	if p == nil || len(p.SampleType) == 0 {
		return root
	}
	if valueIndex < 0 || valueIndex >= len(p.SampleType) {
		valueIndex = len(p.SampleType) - 1
	}

	for _, sample := range p.Sample {
		if len(sample.Value) <= valueIndex {
			continue
		}
		value := sample.Value[valueIndex]
		if value <= 0 {
			continue
		}

		var stack []string
		for i := len(sample.Location) - 1; i >= 0; i-- {
			loc := sample.Location[i]
			if len(loc.Line) == 0 || loc.Line[0].Function == nil {
				continue
			}
			stack = append(stack, loc.Line[0].Function.Name)
		}
		if len(stack) == 0 {
			continue
		}

		trace.MergeStack(root, stack, value)
	}

	return root
}
