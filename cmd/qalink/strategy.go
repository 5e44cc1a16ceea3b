package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/exec"
	"github.com/fwojciec/qalink/gemini"
	"github.com/fwojciec/qalink/ollama"
	"github.com/fwojciec/qalink/ratelimit"
	"github.com/fwojciec/qalink/search"
	qaslog "github.com/fwojciec/qalink/slog"
	"google.golang.org/genai"
)

// strategy builds the configured fallback strategy, or nil for none. A
// backend that cannot be set up disables the fallback with a warning
// instead of failing the command: exact and substring search still work.
func (f *FallbackFlags) strategy(deps *Dependencies) search.Strategy {
	switch f.Fallback {
	case "matcher":
		matcher, err := f.matcher(deps)
		if err != nil {
			deps.Logger.Warn("matcher fallback disabled", "err", err)
			return nil
		}
		return search.NewMatcherStrategy(matcher, deps.Store,
			search.WithMatcherTimeout(f.MatcherTimeout))

	case "embedding":
		embedder := ollama.NewEmbedder(
			ollama.WithBaseURL(f.OllamaURL),
			ollama.WithModel(f.OllamaModel),
		)
		if err := embedder.Ping(deps.Ctx); err != nil {
			deps.Logger.Warn("embedding fallback disabled", "url", f.OllamaURL, "err", err)
			return nil
		}
		strategy, err := search.NewEmbeddingStrategy(deps.Ctx, embedder, deps.Store)
		if err != nil {
			deps.Logger.Warn("embedding fallback disabled", "err", err)
			return nil
		}
		return strategy

	default:
		return nil
	}
}

// matcher builds the configured matcher backend, wrapped with logging and
// rate limiting.
func (f *FallbackFlags) matcher(deps *Dependencies) (qalink.Matcher, error) {
	var matcher qalink.Matcher

	switch f.Matcher {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		matcher = gemini.NewMatcher(client)

	default:
		matcher = exec.NewMatcher(f.MatcherCmd,
			exec.WithArgs(f.MatcherArg...),
			exec.WithTimeout(f.MatcherTimeout),
		)
	}

	matcher = qaslog.NewLoggingMatcher(matcher, deps.Logger)
	return ratelimit.NewMatcher(matcher, f.MatcherRPS), nil
}
