// Package audit provides an offline consistency check for the persisted
// question/answer store. It verifies that the bidirectional link invariant
// holds (every link is recorded on both sides) and reports dangling
// references and orphan entities. In fix mode, missing backlinks are
// repaired and the corrected document is written back once, atomically.
package audit

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/jsonfile"
)

// Auditor checks a store file for consistency violations. It operates on
// the persisted format directly so it can run against stores no process is
// serving, including externally edited or legacy data.
type Auditor struct {
	path string
}

// New creates an Auditor for the store file at path.
func New(path string) *Auditor {
	return &Auditor{path: path}
}

// Run performs the consistency pass. With fix set, missing backlinks are
// appended to the short side and the document is saved at the end iff any
// fix was applied. Dangling references and orphans are never auto-fixed.
func (a *Auditor) Run(ctx context.Context, fix bool) (*qalink.AuditReport, error) {
	doc, err := jsonfile.ReadDocument(a.path)
	if err != nil {
		return nil, qalink.Errorf(qalink.ENOTFOUND, "store file %q could not be read: %s", a.path, err)
	}

	report := &qalink.AuditReport{
		Questions: len(doc.Questions),
		Answers:   len(doc.Answers),
	}

	// Pass 1: answer.questions -> question.answers.
	for _, aid := range doc.AnswerIDs() {
		answer := doc.Answers[aid]
		for _, qid := range answer.Questions {
			question, ok := doc.Questions[qid]
			if !ok {
				report.Errors = append(report.Errors,
					fmt.Sprintf("answer [%s] references non-existent question [%s]", aid, qid))
				continue
			}
			if slices.Contains(question.Answers, aid) {
				continue
			}
			report.Errors = append(report.Errors,
				fmt.Sprintf("answer [%s] lists question [%s] but question does not list it back", aid, qid))
			if fix {
				question.Answers = append(question.Answers, aid)
				report.Fixes++
			}
		}
	}

	// Pass 2: question.answers -> answer.questions.
	for _, qid := range doc.QuestionIDs() {
		question := doc.Questions[qid]
		for _, aid := range question.Answers {
			answer, ok := doc.Answers[aid]
			if !ok {
				report.Errors = append(report.Errors,
					fmt.Sprintf("question [%s] references non-existent answer [%s]", qid, aid))
				continue
			}
			if slices.Contains(answer.Questions, qid) {
				continue
			}
			report.Errors = append(report.Errors,
				fmt.Sprintf("question [%s] lists answer [%s] but answer does not list it back", qid, aid))
			if fix {
				answer.Questions = append(answer.Questions, qid)
				report.Fixes++
			}
		}
	}

	// Orphans are informational only.
	for _, qid := range doc.QuestionIDs() {
		if len(doc.Questions[qid].Answers) == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("question [%s] has no answers: %s", qid, truncate(doc.Questions[qid].Text, 80)))
		}
	}
	for _, aid := range doc.AnswerIDs() {
		if len(doc.Answers[aid].Questions) == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("answer [%s] has no questions: %s", aid, truncate(doc.Answers[aid].Text, 50)))
		}
	}

	if fix && report.Fixes > 0 {
		if err := jsonfile.WriteDocument(a.path, doc); err != nil {
			return nil, qalink.Errorf(qalink.EINTERNAL, "failed to save fixes: %s", err)
		}
	}

	return report, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
