package mcp

import (
	"context"
	"errors"
	"fmt"

	"TrueArk/internal/domain/models"
	"TrueArk/internal/usecase"
	applogger "TrueArk/pkg/logger"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server and exposes chart computation tools. It runs
// in-process against the same ChartService the HTTP transport uses, so tool
// results and REST responses can never disagree.
type Server struct {
	MCPServer *sdkmcp.Server

	svc *usecase.ChartService
	l   *applogger.Logger
}

// NewServer creates an MCP server with natal chart tools.
func NewServer(svc *usecase.ChartService, l *applogger.Logger) *Server {
	s := &Server{svc: svc, l: l}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "trueark", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "calculate_chart",
		Description: "Compute a natal chart for a UTC timestamp and geographic coordinates. Returns planetary positions, Ascendant, Midheaven, and Whole Sign houses.",
	}, s.handleCalculateChart)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "store_chart",
		Description: "Compute a natal chart and persist it, optionally linked to an external entity. Returns the stored chart with its ID.",
	}, s.handleStoreChart)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_chart",
		Description: "Fetch a previously stored chart by its UUID.",
	}, s.handleGetChart)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_charts",
		Description: "List stored charts, optionally filtered by linked entity, newest first.",
	}, s.handleListCharts)
}

// Run serves MCP over the given transport (stdio in the CLI) until the context
// is cancelled or the peer disconnects.
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	return s.MCPServer.Run(ctx, transport)
}

// --- Tool input/output types ---

type calculateChartInput struct {
	DatetimeUTC string  `json:"datetime_utc" jsonschema:"ISO-8601 UTC timestamp, e.g. 1977-09-05T17:24:00Z"`
	Latitude    float64 `json:"latitude" jsonschema:"geographic latitude in decimal degrees, -90 to 90"`
	Longitude   float64 `json:"longitude" jsonschema:"geographic longitude in decimal degrees, -180 to 180"`
	HouseSystem string  `json:"house_system,omitempty" jsonschema:"house system code; only W (Whole Sign) is supported"`
	Zodiac      string  `json:"zodiac,omitempty" jsonschema:"zodiac reference frame; only tropical is supported"`
}

type storeChartInput struct {
	calculateChartInput
	EntityID   string `json:"entity_id,omitempty" jsonschema:"external entity identifier to link the chart to"`
	EntityType string `json:"entity_type,omitempty" jsonschema:"external entity type, e.g. person"`
}

type getChartInput struct {
	ID string `json:"id" jsonschema:"stored chart UUID"`
}

type listChartsInput struct {
	EntityID   string `json:"entity_id,omitempty" jsonschema:"filter by linked entity identifier"`
	EntityType string `json:"entity_type,omitempty" jsonschema:"filter by linked entity type"`
	Limit      int    `json:"limit,omitempty" jsonschema:"max results, default 100"`
}

type listChartsOutput struct {
	Charts []*models.StoredChart `json:"charts"`
	Total  int                   `json:"total"`
}

func (in calculateChartInput) chartInput() models.ChartInput {
	return models.ChartInput{
		DatetimeUTC: in.DatetimeUTC,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		HouseSystem: in.HouseSystem,
		Zodiac:      in.Zodiac,
	}
}

// --- Tool handlers ---

func (s *Server) handleCalculateChart(ctx context.Context, _ *sdkmcp.CallToolRequest, input calculateChartInput) (*sdkmcp.CallToolResult, *models.ChartOutput, error) {
	out, err := s.svc.Compute(ctx, input.chartInput())
	if err != nil {
		s.logToolError("calculate_chart", err)
		return nil, nil, toolError(err)
	}
	return nil, out, nil
}

func (s *Server) handleStoreChart(ctx context.Context, _ *sdkmcp.CallToolRequest, input storeChartInput) (*sdkmcp.CallToolResult, *models.StoredChart, error) {
	stored, err := s.svc.ComputeAndStore(ctx, input.chartInput(), input.EntityID, input.EntityType)
	if err != nil {
		s.logToolError("store_chart", err)
		return nil, nil, toolError(err)
	}
	return nil, stored, nil
}

func (s *Server) handleGetChart(ctx context.Context, _ *sdkmcp.CallToolRequest, input getChartInput) (*sdkmcp.CallToolResult, *models.StoredChart, error) {
	chart, err := s.svc.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrChartNotFound) {
			return nil, nil, fmt.Errorf("chart %s not found", input.ID)
		}
		s.logToolError("get_chart", err)
		return nil, nil, toolError(err)
	}
	return nil, chart, nil
}

func (s *Server) handleListCharts(ctx context.Context, _ *sdkmcp.CallToolRequest, input listChartsInput) (*sdkmcp.CallToolResult, listChartsOutput, error) {
	charts, err := s.svc.List(ctx, models.ChartFilter{
		EntityID:   input.EntityID,
		EntityType: input.EntityType,
		Limit:      input.Limit,
	})
	if err != nil {
		s.logToolError("list_charts", err)
		return nil, listChartsOutput{}, toolError(err)
	}
	return nil, listChartsOutput{Charts: charts, Total: len(charts)}, nil
}

func (s *Server) logToolError(tool string, err error) {
	if s.l == nil {
		return
	}
	var inputErr *usecase.InputError
	if errors.As(err, &inputErr) {
		return // caller mistake, not worth a server-side log line
	}
	s.l.Error("mcp tool error",
		applogger.String("tool", tool),
		applogger.Error(err),
	)
}

// toolError flattens engine errors into messages an MCP client can act on.
func toolError(err error) error {
	var inputErr *usecase.InputError
	if errors.As(err, &inputErr) {
		return fmt.Errorf("invalid input: %w", inputErr.Err)
	}
	return err
}
