package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/jsonfile"
)

// Run executes the export command. It reads the store file directly with
// the lenient reader, so a hand-edited file with comment lines still
// exports.
func (c *ExportCmd) Run(deps *Dependencies) error {
	doc, err := jsonfile.ReadDocumentLenient(deps.StorePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	var sb strings.Builder
	ids := doc.QuestionIDs()
	for _, id := range ids {
		sb.WriteString(doc.Questions[id].Text)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(c.Output, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", c.Output, err)
	}

	fmt.Fprintf(deps.Stdout, "exported %d question(s) to %s\n", len(ids), c.Output)
	return nil
}
