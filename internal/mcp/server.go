// Package mcp exposes the retrieval engine as Model Context Protocol
// tools over stdio, so agent frontends can call it without linking the
// library.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evidenceai/grounder/internal/rag"
	"github.com/evidenceai/grounder/pkg/version"
)

// Server wraps the engine behind an MCP stdio server.
type Server struct {
	engine *rag.Engine
	logger *slog.Logger
	mcp    *mcp.Server
}

// NewServer creates the MCP server and registers its tools.
func NewServer(engine *rag.Engine, logger *slog.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{engine: engine, logger: logger}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "grounder",
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "retrieve_evidence",
		Description: "Retrieve ranked evidence sources for a query within a domain (medical, finance, general). Returns titles, content, reliability, and relevance scores.",
	}, s.retrieveHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "ground_response",
		Description: "Score how well retrieved evidence supports a query: term coverage, citation quality, and confidence improvement deltas.",
	}, s.groundHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "format_evidence",
		Description: "Retrieve evidence and render it as the prompt-ready evidence block with [Source N] citation markers.",
	}, s.formatHandler)

	s.logger.Info("mcp tools registered", slog.Int("count", 3))
}

// RetrieveInput is the retrieve_evidence tool input.
type RetrieveInput struct {
	Query  string `json:"query"`
	Domain string `json:"domain,omitempty"`
	TopK   int    `json:"top_k,omitempty"`
}

// SourceOutput is one ranked source in tool output.
type SourceOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Type        string  `json:"type"`
	Domain      string  `json:"domain"`
	URL         string  `json:"url,omitempty"`
	Reliability float64 `json:"reliability"`
	Score       float64 `json:"score"`
	Mode        string  `json:"mode"`
}

// RetrieveOutput is the retrieve_evidence tool output.
type RetrieveOutput struct {
	Sources []SourceOutput `json:"sources"`
}

func (s *Server) retrieveHandler(ctx context.Context, _ *mcp.CallToolRequest, input RetrieveInput) (
	*mcp.CallToolResult,
	RetrieveOutput,
	error,
) {
	if input.Query == "" {
		return nil, RetrieveOutput{}, errors.New("query parameter is required")
	}

	results := s.engine.Retrieve(ctx, input.Query, input.Domain, input.TopK)

	out := RetrieveOutput{Sources: make([]SourceOutput, 0, len(results))}
	for _, r := range results {
		out.Sources = append(out.Sources, SourceOutput{
			ID:          r.Source.ID,
			Title:       r.Source.Title,
			Content:     r.Source.Content,
			Type:        string(r.Source.Type),
			Domain:      r.Source.Domain,
			URL:         r.Source.URL,
			Reliability: r.Source.Reliability,
			Score:       r.Score,
			Mode:        string(r.Mode),
		})
	}
	return nil, out, nil
}

// GroundInput is the ground_response tool input.
type GroundInput struct {
	Query  string `json:"query"`
	Domain string `json:"domain,omitempty"`
	TopK   int    `json:"top_k,omitempty"`
}

// GroundOutput is the ground_response tool output.
type GroundOutput struct {
	Coverage           float64 `json:"evidence_coverage"`
	CitationQuality    float64 `json:"citation_quality"`
	Faithfulness       float64 `json:"faithfulness_improvement"`
	CitationAccuracy   float64 `json:"citation_accuracy_improvement"`
	FactualConsistency float64 `json:"factual_consistency_improvement"`
	SourceCount        int     `json:"source_count"`
}

func (s *Server) groundHandler(ctx context.Context, _ *mcp.CallToolRequest, input GroundInput) (
	*mcp.CallToolResult,
	GroundOutput,
	error,
) {
	if input.Query == "" {
		return nil, GroundOutput{}, errors.New("query parameter is required")
	}

	results := s.engine.Retrieve(ctx, input.Query, input.Domain, input.TopK)
	sources := rag.Sources(results)
	res := s.engine.Ground(input.Query, input.Domain, sources)

	return nil, GroundOutput{
		Coverage:           res.Coverage,
		CitationQuality:    res.CitationQuality,
		Faithfulness:       res.Improvements.Faithfulness,
		CitationAccuracy:   res.Improvements.CitationAccuracy,
		FactualConsistency: res.Improvements.FactualConsistency,
		SourceCount:        len(sources),
	}, nil
}

// FormatInput is the format_evidence tool input.
type FormatInput struct {
	Query  string `json:"query"`
	Domain string `json:"domain,omitempty"`
	TopK   int    `json:"top_k,omitempty"`
}

// FormatOutput is the format_evidence tool output.
type FormatOutput struct {
	Prompt      string `json:"prompt"`
	SourceCount int    `json:"source_count"`
}

func (s *Server) formatHandler(ctx context.Context, _ *mcp.CallToolRequest, input FormatInput) (
	*mcp.CallToolResult,
	FormatOutput,
	error,
) {
	if input.Query == "" {
		return nil, FormatOutput{}, errors.New("query parameter is required")
	}

	results := s.engine.Retrieve(ctx, input.Query, input.Domain, input.TopK)
	sources := rag.Sources(results)

	return nil, FormatOutput{
		Prompt:      s.engine.FormatForPrompt(sources),
		SourceCount: len(sources),
	}, nil
}
