// Package mcptools exposes word frequency analysis as MCP tools.
package mcptools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wordcharts/internal/models"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/validation"
)

// WordFrequencyInput defines input for the word_frequency tool.
type WordFrequencyInput struct {
	URL     string `json:"url" jsonschema:"URL of a UTF-8 encoded Chinese web page"`
	MinFreq int    `json:"min_freq,omitempty" jsonschema:"Minimum number of occurrences (optional, defaults to 5, clamped to the highest count)"`
}

// WordFrequencyOutput defines output for the word_frequency tool.
type WordFrequencyOutput struct {
	models.WordFrequencyResponse
}

// Tools holds the handlers backed by a pipeline.
type Tools struct {
	pipeline *pipeline.Pipeline
}

// New creates the tool set.
func New(p *pipeline.Pipeline) *Tools {
	return &Tools{pipeline: p}
}

// WordFrequency fetches a page and returns its most frequent words.
func (t *Tools) WordFrequency(ctx context.Context, req *mcp.CallToolRequest, input WordFrequencyInput) (*mcp.CallToolResult, WordFrequencyOutput, error) {
	url := validation.SanitizeURL(input.URL)
	if valid, msg := validation.ValidateURL(url); !valid {
		return nil, WordFrequencyOutput{}, errors.New(msg)
	}

	a, err := t.pipeline.Analyze(ctx, url)
	if err != nil {
		return nil, WordFrequencyOutput{}, errors.New(pipeline.UserMessage(err))
	}

	ranked, used := t.pipeline.Rank(a.Counts, input.MinFreq)
	return nil, WordFrequencyOutput{
		WordFrequencyResponse: models.NewWordFrequencyResponse(url, a.Counts, ranked, used, a.Language),
	}, nil
}

// Register adds every tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "word_frequency",
			Description: "Fetches a UTF-8 Chinese web page, segments its visible Chinese text into words and returns up to 20 words ranked by frequency, together with totals and the detected language.",
		},
		t.WordFrequency,
	)
}
