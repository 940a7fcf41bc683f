/*
Package ai asks Gemini for short, personal birthday greetings to accompany the daily digest.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/shanehull/birthdaybot/internal/types"
)

const DefaultModel = "gemini-2.5-flash"

type Greeting struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type Greeter struct {
	client *genai.Client
	model  string
}

func NewGreeter(ctx context.Context, apiKey, modelName string) (*Greeter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Greeter{client: client, model: modelName}, nil
}

// Greetings returns one message per patient name. Names the model leaves out are absent
// from the map.
func (g *Greeter) Greetings(ctx context.Context, records []types.BirthdayRecord) (map[string]string, error) {
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	userContent := &genai.Content{
		Parts: []*genai.Part{
			{Text: buildPrompt(records)},
		},
		Role: "user",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{userContent}, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   getResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseGreetings(resp.Text())
}

func parseGreetings(respText string) (map[string]string, error) {
	var greetings []Greeting
	if err := json.Unmarshal([]byte(respText), &greetings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	out := make(map[string]string, len(greetings))
	for _, gr := range greetings {
		if gr.Name == "" || gr.Message == "" {
			continue
		}
		out[gr.Name] = gr.Message
	}
	return out, nil
}

func getResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":    {Type: genai.TypeString, Description: "The patient name exactly as given."},
				"message": {Type: genai.TypeString, Description: "A one or two sentence greeting in Spanish."},
			},
			Required: []string{"name", "message"},
		},
	}
}
