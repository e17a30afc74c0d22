package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Gemini API client for apiKey
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, toContents(req.Messages), toConfig(req))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *GeminiGenerator) Stream(ctx context.Context, req Request) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		for resp, err := range g.client.Models.GenerateContentStream(ctx, req.Model, toContents(req.Messages), toConfig(req)) {
			if err != nil {
				select {
				case out <- Chunk{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case out <- Chunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func toContents(msgs []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if m.Speaker == SpeakerModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(role)))
	}
	return contents
}

func toConfig(req Request) *genai.GenerateContentConfig {
	if req.SystemInstruction == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
	}
}
