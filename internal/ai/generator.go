// Package ai delegates program generation to the Anthropic API. It is a
// collaborator boundary only: the deterministic planner in internal/toolpath
// never depends on it, and a failure here propagates to the caller as a
// plain error with no retry.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when the app config does not name one.
const DefaultModel = "claude-sonnet-4-5"

const systemPrompt = `You are a CNC programming assistant. Given machining
parameters you produce a word-address G-code program for a 3-axis mill in
inch units, preceded by a self-review.

Respond with a single JSON object and nothing else:
{"program": "<complete G-code program, newline separated>",
 "checks": ["<one line per safety/consistency check performed>"],
 "passed": <true if every check passed>}`

// Result is the structured outcome of a delegated generation request.
type Result struct {
	Program string   `json:"program"`
	Checks  []string `json:"checks"`
	Passed  bool     `json:"passed"`
}

// Generator wraps an Anthropic client for one-shot program generation.
type Generator struct {
	client anthropic.Client
	model  anthropic.Model
}

// New creates a Generator. An empty model name selects DefaultModel.
func New(apiKey, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Generate requests a program for the given feature diameter, total depth
// and feed rate. The response must satisfy the declared result shape or the
// call fails.
func (g *Generator) Generate(ctx context.Context, diameter, depth, feedRate float64) (Result, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{{
			Text: systemPrompt,
			Type: "text",
		}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(diameter, depth, feedRate))),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("delegated generation failed: %w", err)
	}
	if resp == nil || len(resp.Content) == 0 {
		return Result{}, fmt.Errorf("delegated generation failed: empty response")
	}

	var text string
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}
	return parseResult(text)
}

func buildPrompt(diameter, depth, feedRate float64) string {
	return fmt.Sprintf(
		"Feature diameter: %.4f in\nTotal depth: %.4f in\nFeed rate: %.1f in/min\n\n"+
			"Generate the program and review it before answering.",
		diameter, depth, feedRate)
}

// parseResult decodes the model's JSON reply, tolerating a markdown code
// fence around it. A reply that does not match the result shape is a
// generation failure, not a partial success.
func parseResult(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return Result{}, fmt.Errorf("delegated generation failed: malformed reply: %w", err)
	}
	if res.Program == "" {
		return Result{}, fmt.Errorf("delegated generation failed: reply contains no program")
	}
	if len(res.Checks) == 0 {
		return Result{}, fmt.Errorf("delegated generation failed: reply contains no checks")
	}
	return res, nil
}
