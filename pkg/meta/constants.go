package meta

const (
	// RunPrefix is the prefix used for artifact directories created by flameprof
	RunPrefix = "flameprof-"

	// FlamegraphFile is the flamegraph tree artifact inside a run directory
	FlamegraphFile = "flamegraph.json"
	// TopFunctionsFile is the ranked function list artifact
	TopFunctionsFile = "top.json"
	// TracesFile is the raw stack-trace text captured from the external tool
	TracesFile = "traces.txt"
	// ResultFile is the full serialized pipeline result
	ResultFile = "result.json"
)
