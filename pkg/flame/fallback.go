package flame

import (
	"fmt"

	"github.com/gophertrace/flameprof/pkg/trace"
)

// demoRootWeight is the fixed total weight of the synthesized tree. The
// top-level children always sum to it.
const demoRootWeight = 2000

// DemoTree synthesizes a fixed, richly structured weighted tree for when
// real trace data is absent, malformed, or too shallow to be worth drawing.
// It is static fixture data: no randomness, no input dependence beyond
// echoing the display name into one subtree label. The kind selects between
// a CPU-shaped and an allocation-shaped tree; durationSeconds is echoed only
// by DemoTitle, the weights never change.
func DemoTree(name string, durationSeconds int, kind string) *trace.Frame {
	if name == "" {
		name = "app"
	}

	var mainChildren []*trace.Frame
	if kind == "mem" {
		mainChildren = []*trace.Frame{
			{Name: "main.allocateWorkload", Value: 1900, Children: []*trace.Frame{
				{Name: fmt.Sprintf("%s.allocateAndProcess", name), Value: 820, Children: []*trace.Frame{
					{Name: "runtime.makeslice", Value: 700, Children: []*trace.Frame{
						{Name: "runtime.mallocgc", Value: 640, Children: []*trace.Frame{
							{Name: "runtime.heapBitsSetType", Value: 280},
						}},
					}},
				}},
				{Name: "main.jsonSerialization", Value: 560, Children: []*trace.Frame{
					{Name: "encoding/json.Marshal", Value: 500, Children: []*trace.Frame{
						{Name: "encoding/json.(*encodeState).marshal", Value: 430},
					}},
				}},
				{Name: "main.stringBuilder", Value: 520, Children: []*trace.Frame{
					{Name: "runtime.concatstrings", Value: 440, Children: []*trace.Frame{
						{Name: "runtime.growslice", Value: 380},
					}},
				}},
			}},
			{Name: "runtime.gcBgMarkWorker", Value: 100, Children: []*trace.Frame{
				{Name: "runtime.gcDrain", Value: 70},
			}},
		}
	} else {
		mainChildren = []*trace.Frame{
			{Name: "main.runWorkload", Value: 1880, Children: []*trace.Frame{
				{Name: "main.fibonacci", Value: 640, Children: []*trace.Frame{
					{Name: "main.fibonacci", Value: 520, Children: []*trace.Frame{
						{Name: "main.fibonacci", Value: 360},
					}},
				}},
				{Name: "main.bubbleSort", Value: 460, Children: []*trace.Frame{
					{Name: "main.compareAndSwap", Value: 380},
				}},
				{Name: fmt.Sprintf("%s.hashData", name), Value: 320, Children: []*trace.Frame{
					{Name: "crypto/sha256.(*digest).Write", Value: 270, Children: []*trace.Frame{
						{Name: "crypto/sha256.block", Value: 220},
					}},
				}},
				{Name: "main.matrixMultiply", Value: 280, Children: []*trace.Frame{
					{Name: "runtime.memmove", Value: 90},
				}},
				{Name: "main.stringConcat", Value: 180, Children: []*trace.Frame{
					{Name: "runtime.concatstrings", Value: 150, Children: []*trace.Frame{
						{Name: "runtime.mallocgc", Value: 120},
					}},
				}},
			}},
			{Name: "runtime.schedule", Value: 120, Children: []*trace.Frame{
				{Name: "runtime.findRunnable", Value: 80},
			}},
		}
	}

	return &trace.Frame{
		Name:  "root",
		Value: demoRootWeight,
		Children: []*trace.Frame{
			{Name: "main.main", Value: demoRootWeight, Children: mainChildren},
		},
	}
}

// DemoTopFunctions is the ranked list matching DemoTree, precomputed the
// same way the tree weights are.
func DemoTopFunctions(kind string) []trace.TopFunction {
	if kind == "mem" {
		return []trace.TopFunction{
			{Name: "main.allocateAndProcess", Percent: 41.0, Samples: 820},
			{Name: "runtime.makeslice", Percent: 35.0, Samples: 700},
			{Name: "runtime.mallocgc", Percent: 32.0, Samples: 640},
			{Name: "main.jsonSerialization", Percent: 28.0, Samples: 560},
			{Name: "main.stringBuilder", Percent: 26.0, Samples: 520},
			{Name: "encoding/json.Marshal", Percent: 25.0, Samples: 500},
			{Name: "runtime.concatstrings", Percent: 22.0, Samples: 440},
			{Name: "runtime.growslice", Percent: 19.0, Samples: 380},
			{Name: "runtime.heapBitsSetType", Percent: 14.0, Samples: 280},
			{Name: "runtime.gcBgMarkWorker", Percent: 5.0, Samples: 100},
		}
	}
	return []trace.TopFunction{
		{Name: "main.fibonacci", Percent: 32.0, Samples: 640},
		{Name: "main.bubbleSort", Percent: 23.0, Samples: 460},
		{Name: "main.hashData", Percent: 16.0, Samples: 320},
		{Name: "main.matrixMultiply", Percent: 14.0, Samples: 280},
		{Name: "crypto/sha256.(*digest).Write", Percent: 13.5, Samples: 270},
		{Name: "crypto/sha256.block", Percent: 11.0, Samples: 220},
		{Name: "main.stringConcat", Percent: 9.0, Samples: 180},
		{Name: "runtime.concatstrings", Percent: 7.5, Samples: 150},
		{Name: "runtime.mallocgc", Percent: 6.0, Samples: 120},
		{Name: "runtime.schedule", Percent: 6.0, Samples: 120},
	}
}

// DemoTitle renders the display label for synthesized data, echoing the
// caller-provided name, duration, and profile kind.
func DemoTitle(name string, durationSeconds int, kind string) string {
	if name == "" {
		name = "app"
	}
	return fmt.Sprintf("%s: %s profile over %ds (demo data)", name, kind, durationSeconds)
}
