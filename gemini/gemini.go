// Package gemini implements the copilot text generator on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultTemperature = 0.3

// Generator calls a Gemini model with the grounding as system instruction.
type Generator struct {
	client    *genai.Client
	modelName string
}

// New connects to Gemini with an API key.
func New(ctx context.Context, apiKey, modelName string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Generator{client: client, modelName: modelName}, nil
}

// Generate sends the user query with systemContext as the system instruction
// and returns the concatenated text of the first candidate.
func (g *Generator) Generate(ctx context.Context, systemContext, userQuery string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(defaultTemperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemContext)}}

	resp, err := model.GenerateContent(ctx, genai.Text(userQuery))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return responseText(resp)
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content received from AI")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content received from AI")
	}
	return sb.String(), nil
}
