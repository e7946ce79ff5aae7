package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"proofgraph/domain/config"
	pkgerrors "proofgraph/pkg/errors"
)

// StatementContent is a value object for the text of a statement
type StatementContent struct {
	text string
}

// NewStatementContent creates content with validation using default configuration
func NewStatementContent(text string) (StatementContent, error) {
	return NewStatementContentWithConfig(text, config.DefaultDomainConfig())
}

// NewStatementContentWithConfig creates content with validation and configuration
func NewStatementContentWithConfig(text string, cfg *config.DomainConfig) (StatementContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	text = strings.TrimSpace(text)

	if text == "" {
		return StatementContent{}, pkgerrors.NewValidationError("statement content cannot be empty")
	}

	length := utf8.RuneCountInString(text)
	if length < cfg.MinStatementLength {
		return StatementContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("statement content too short: minimum %d characters required", cfg.MinStatementLength))
	}
	if length > cfg.MaxStatementLength {
		return StatementContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("statement content exceeds maximum length of %d characters", cfg.MaxStatementLength))
	}

	return StatementContent{text: text}, nil
}

// Text returns the statement text
func (c StatementContent) Text() string {
	return c.text
}

// IsEmpty checks if content is empty
func (c StatementContent) IsEmpty() bool {
	return c.text == ""
}

// Equals checks if two contents are equal
func (c StatementContent) Equals(other StatementContent) bool {
	return c.text == other.text
}

// WordCount returns the approximate word count
func (c StatementContent) WordCount() int {
	return len(strings.Fields(c.text))
}

// Summary returns a truncated summary of the content
func (c StatementContent) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(c.text) <= maxLength {
		return c.text
	}
	runes := []rune(c.text)
	return string(runes[:maxLength-3]) + "..."
}
