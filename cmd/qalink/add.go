package main

import (
	"fmt"

	"github.com/fwojciec/qalink"
)

// Run executes the add-question command.
func (c *AddQuestionCmd) Run(deps *Dependencies) error {
	id, err := deps.Store.AddQuestion(deps.Ctx, c.Text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "added question [%s] %s\n", id, c.Text)
	return nil
}

// Run executes the add-answer command.
func (c *AddAnswerCmd) Run(deps *Dependencies) error {
	id, err := deps.Store.AddAnswer(deps.Ctx, c.Text, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "added answer [%s] %s\n", id, c.Text)
	for _, id := range c.Question {
		fmt.Fprintf(deps.Stdout, "linked to question [%s]\n", id)
	}
	return nil
}
