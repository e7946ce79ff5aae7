package entities

import (
	"time"

	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// Statement is a reusable unit of proof text. Its usage count mirrors how
// many ordered-set slots across the owning proof reference it; the count is
// derived state maintained by the Proof aggregate, never set directly by
// callers outside the domain.
type Statement struct {
	id         valueobjects.StatementID
	content    valueobjects.StatementContent
	usageCount int
	createdAt  time.Time
	modifiedAt time.Time
}

// NewStatement creates a new statement with zero usage
func NewStatement(content valueobjects.StatementContent) (*Statement, error) {
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("statement content cannot be empty")
	}

	now := time.Now()
	return &Statement{
		id:         valueobjects.NewStatementID(),
		content:    content,
		usageCount: 0,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

// ReconstructStatement recreates a statement from stored data. The usage
// count is intentionally not an input: the reconstruction path re-derives it
// from ordered-set membership.
func ReconstructStatement(
	id valueobjects.StatementID,
	content valueobjects.StatementContent,
	createdAt, modifiedAt time.Time,
) (*Statement, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("statement ID cannot be empty")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("statement content cannot be empty")
	}

	return &Statement{
		id:         id,
		content:    content,
		usageCount: 0,
		createdAt:  createdAt,
		modifiedAt: modifiedAt,
	}, nil
}

// ID returns the statement's unique identifier
func (s *Statement) ID() valueobjects.StatementID {
	return s.id
}

// Content returns the statement's content
func (s *Statement) Content() valueobjects.StatementContent {
	return s.content
}

// UsageCount returns how many ordered-set slots reference this statement
func (s *Statement) UsageCount() int {
	return s.usageCount
}

// IsUsed reports whether any ordered set references this statement
func (s *Statement) IsUsed() bool {
	return s.usageCount > 0
}

// CreatedAt returns when the statement was created
func (s *Statement) CreatedAt() time.Time {
	return s.createdAt
}

// ModifiedAt returns when the statement was last modified
func (s *Statement) ModifiedAt() time.Time {
	return s.modifiedAt
}

// UpdateContent replaces the statement text. Content change does not change
// identity; every ordered set referencing this id sees the new text.
func (s *Statement) UpdateContent(content valueobjects.StatementContent) error {
	if content.IsEmpty() {
		return pkgerrors.NewValidationError("statement content cannot be empty")
	}
	if content.Equals(s.content) {
		return nil
	}

	s.content = content
	s.modifiedAt = time.Now()
	return nil
}

// IncrementUsage records one more ordered-set slot referencing this
// statement. Called by the Proof aggregate only.
func (s *Statement) IncrementUsage() {
	s.usageCount++
}

// DecrementUsage records one fewer ordered-set slot referencing this
// statement. Called by the Proof aggregate only.
func (s *Statement) DecrementUsage() error {
	if s.usageCount == 0 {
		return pkgerrors.NewConsistencyError("statement usage count cannot go negative")
	}
	s.usageCount--
	return nil
}
