package main

import (
	"fmt"

	"github.com/fwojciec/qalink"
)

// Run executes the link command.
func (c *LinkCmd) Run(deps *Dependencies) error {
	if err := deps.Store.Link(deps.Ctx, c.AnswerID, c.QuestionID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "linked answer [%s] to question [%s]\n", c.AnswerID, c.QuestionID)
	return nil
}

// Run executes the unlink command.
func (c *UnlinkCmd) Run(deps *Dependencies) error {
	if err := deps.Store.Unlink(deps.Ctx, c.AnswerID, c.QuestionID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "unlinked answer [%s] from question [%s]\n", c.AnswerID, c.QuestionID)
	return nil
}
