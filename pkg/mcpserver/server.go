// Package mcpserver exposes the profiling pipeline and the bundled demo
// applications as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/gophertrace/flameprof/pkg/apps/color"
	"github.com/gophertrace/flameprof/pkg/apps/flights"
	"github.com/gophertrace/flameprof/pkg/apps/weather"
	"github.com/gophertrace/flameprof/pkg/errors"
	"github.com/gophertrace/flameprof/pkg/flame"
	"github.com/gophertrace/flameprof/pkg/profiler"
	"github.com/gophertrace/flameprof/pkg/trace"
)

const serverName = "flameprof"

// Server wires tool handlers to their backing implementations. The profile
// function and weather client are fields so tests can stand in fakes.
type Server struct {
	Fs      afero.Fs
	Weather *weather.Client
	Profile func(ctx context.Context, opts profiler.Options) (*profiler.Result, error)

	mcp *server.MCPServer
}

// New builds a Server with all tools registered.
func New(version string) *Server {
	s := &Server{
		Fs:      afero.NewOsFs(),
		Weather: weather.NewClient(),
		Profile: profiler.Run,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.register()
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) register() {
	s.mcp.AddTool(mcp.NewTool("profile_flamegraph",
		mcp.WithDescription("Profile a Go binary or package directory and return flame graph data with layout rectangles"),
		mcp.WithString("target", mcp.Required(), mcp.Description("Path to a Go binary or a package directory to build and profile")),
		mcp.WithString("kind", mcp.Description("Profile kind, cpu or mem (default cpu)")),
		mcp.WithNumber("duration_seconds", mcp.Description("How long to profile for (default 5)")),
		mcp.WithNumber("top_count", mcp.Description("How many top functions to report (default 10)")),
	), s.handleProfileFlamegraph)

	s.mcp.AddTool(mcp.NewTool("render_flamegraph",
		mcp.WithDescription("Parse pprof traces text into a call tree and flame graph layout rectangles"),
		mcp.WithString("traces", mcp.Required(), mcp.Description("Raw output of go tool pprof -traces")),
	), s.handleRenderFlamegraph)

	s.mcp.AddTool(mcp.NewTool("top_functions",
		mcp.WithDescription("Parse a pprof -top report into structured rows"),
		mcp.WithString("report", mcp.Required(), mcp.Description("Raw output of go tool pprof -top")),
		mcp.WithNumber("limit", mcp.Description("Maximum rows to return (default 10)")),
	), s.handleTopFunctions)

	s.mcp.AddTool(mcp.NewTool("get_weather",
		mcp.WithDescription("Current weather conditions for a city"),
		mcp.WithString("city", mcp.Required(), mcp.Description("City name, for example Berlin")),
	), s.handleGetWeather)

	s.mcp.AddTool(mcp.NewTool("convert_color",
		mcp.WithDescription("Convert a color between hex, rgb() and hsl() representations"),
		mcp.WithString("color", mcp.Required(), mcp.Description("Color as #rrggbb, rgb(r,g,b) or hsl(h,s%,l%)")),
	), s.handleConvertColor)

	s.mcp.AddTool(mcp.NewTool("flight_status",
		mcp.WithDescription("Status of a scheduled flight by code"),
		mcp.WithString("flight", mcp.Required(), mcp.Description("Flight code, for example UA100")),
	), s.handleFlightStatus)
}

func (s *Server) handleProfileFlamegraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.Profile(ctx, profiler.Options{
		Target:          target,
		Kind:            req.GetString("kind", ""),
		DurationSeconds: req.GetInt("duration_seconds", 0),
		TopCount:        req.GetInt("top_count", 0),
		Fs:              s.Fs,
	})
	if err != nil {
		return toolError(err)
	}
	return jsonResult(res)
}

func (s *Server) handleRenderFlamegraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	traces, err := req.RequireString("traces")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root := trace.Parse(strings.NewReader(traces))
	out := struct {
		Flamegraph *trace.Frame `json:"flamegraph"`
		Rects      []flame.Rect `json:"rects"`
		MaxDepth   int          `json:"maxDepth"`
	}{
		Flamegraph: root,
		Rects:      flame.Layout(root),
		MaxDepth:   flame.MaxDepth(root),
	}
	return jsonResult(out)
}

func (s *Server) handleTopFunctions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := req.RequireString("report")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := req.GetInt("limit", 10)
	return jsonResult(trace.ParseTop(strings.NewReader(report), limit))
}

func (s *Server) handleGetWeather(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	city, err := req.RequireString("city")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.Weather.Current(ctx, city)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(report)
}

func (s *Server) handleConvertColor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("color")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conv, err := color.Convert(input)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(conv)
}

func (s *Server) handleFlightStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("flight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := flights.Lookup(code)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(status)
}

// toolError keeps caller mistakes inside the protocol as tool errors and
// surfaces everything else to the transport.
func toolError(err error) (*mcp.CallToolResult, error) {
	if errors.IsInvalidError(err) || errors.IsUnavailableError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
