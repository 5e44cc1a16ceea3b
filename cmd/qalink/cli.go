package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/qalink"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Store     qalink.StoreService
	StorePath string
	SearchLog qalink.SearchLogService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve       ServeCmd       `cmd:"" help:"Run the HTTP search server"`
	Search      SearchCmd      `cmd:"" help:"Search questions from the command line"`
	Audit       AuditCmd       `cmd:"" help:"Check link consistency of the store file"`
	AddQuestion AddQuestionCmd `cmd:"" name:"add-question" help:"Add a question"`
	AddAnswer   AddAnswerCmd   `cmd:"" name:"add-answer" help:"Add an answer, optionally linked to questions"`
	Link        LinkCmd        `cmd:"" help:"Link an answer to a question"`
	Unlink      UnlinkCmd      `cmd:"" help:"Remove a link between an answer and a question"`
	Export      ExportCmd      `cmd:"" help:"Export question texts to a plain text file"`
	Stats       StatsCmd       `cmd:"" help:"Show search log statistics"`
}

// FallbackFlags configures the search fallback shared by serve and search.
type FallbackFlags struct {
	Fallback       string        `enum:"none,matcher,embedding" default:"none" help:"Fallback used when exact and substring stages find nothing (none, matcher, embedding)"`
	Matcher        string        `enum:"exec,gemini" default:"exec" help:"Matcher backend for --fallback=matcher"`
	MatcherCmd     string        `default:"copilot" help:"External matching command for --matcher=exec"`
	MatcherArg     []string      `help:"Extra argument passed to the matching command before the prompt (repeatable)"`
	MatcherRPS     float64       `default:"1" help:"Rate limit for matcher calls, in requests per second"`
	MatcherTimeout time.Duration `default:"150s" help:"Timeout for a single matcher call"`
	OllamaURL      string        `default:"http://localhost:11434" help:"Ollama base URL for --fallback=embedding"`
	OllamaModel    string        `default:"nomic-embed-text" help:"Ollama embedding model"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string `default:":5000" help:"HTTP listen address"`
	FallbackFlags `embed:""`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query         string `arg:"" help:"Query text or question id"`
	JSON          bool   `help:"Print results as JSON"`
	FallbackFlags `embed:""`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	Fix bool `help:"Repair one-directional links in place"`
}

// AddQuestionCmd is the "add-question" subcommand.
type AddQuestionCmd struct {
	Text string `arg:"" help:"Question text"`
}

// AddAnswerCmd is the "add-answer" subcommand.
type AddAnswerCmd struct {
	Text     string   `arg:"" help:"Answer text"`
	Question []string `short:"q" help:"Question id to link to (repeatable)"`
}

// LinkCmd is the "link" subcommand.
type LinkCmd struct {
	AnswerID   string `arg:"" help:"Answer id"`
	QuestionID string `arg:"" help:"Question id"`
}

// UnlinkCmd is the "unlink" subcommand.
type UnlinkCmd struct {
	AnswerID   string `arg:"" help:"Answer id"`
	QuestionID string `arg:"" help:"Question id"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" default:"questions.txt" help:"Output file path"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
