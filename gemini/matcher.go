// Package gemini provides a qalink.Matcher implementation backed by the
// Google Gemini API, selectable as an alternative to the external
// command-line tool.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/qalink"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Matcher implements qalink.Matcher at compile time.
var _ qalink.Matcher = (*Matcher)(nil)

// Matcher implements qalink.Matcher using Google Gemini.
type Matcher struct {
	client *genai.Client
}

// NewMatcher creates a new Matcher.
func NewMatcher(client *genai.Client) *Matcher {
	return &Matcher{client: client}
}

// Query sends the prompt to Gemini and returns the trimmed reply text.
func (m *Matcher) Query(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", qalink.Errorf(qalink.EINVALID, "prompt required")
	}

	result, err := m.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", qalink.Errorf(qalink.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls. The
// temperature is zero: the reply contract is a single identifier, not
// prose.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You match free-text queries against a numbered list of stored questions. Follow the reply format requested in the prompt exactly; never add explanations.",
			}},
		},
		Temperature: &temp,
	}
}
