// Package qalink provides a small bidirectional question/answer lookup
// service: a persisted store of questions and answers with many-to-many
// links, a staged search resolver over it, and an offline consistency
// auditor for the persisted data.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., jsonfile/, sqlite/, gemini/,
// ollama/).
package qalink
