package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"proofgraph/domain/config"
	pkgerrors "proofgraph/pkg/errors"
)

// SideLabels holds the optional human-readable annotations displayed beside
// an atomic argument. Whitespace-only input normalizes to absent; an absent
// label is stored as the empty string and reported through HasLeft/HasRight,
// never surfaced as an empty-string value.
type SideLabels struct {
	left  string
	right string
}

// NewSideLabels creates side labels, normalizing empty and whitespace-only
// values to absent.
func NewSideLabels(left, right string) (SideLabels, error) {
	return NewSideLabelsWithConfig(left, right, config.DefaultDomainConfig())
}

// NewSideLabelsWithConfig creates side labels with configuration
func NewSideLabelsWithConfig(left, right string, cfg *config.DomainConfig) (SideLabels, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)

	if utf8.RuneCountInString(left) > cfg.MaxSideLabelLength {
		return SideLabels{}, pkgerrors.NewValidationError(
			fmt.Sprintf("left label exceeds maximum length of %d characters", cfg.MaxSideLabelLength))
	}
	if utf8.RuneCountInString(right) > cfg.MaxSideLabelLength {
		return SideLabels{}, pkgerrors.NewValidationError(
			fmt.Sprintf("right label exceeds maximum length of %d characters", cfg.MaxSideLabelLength))
	}

	return SideLabels{left: left, right: right}, nil
}

// EmptySideLabels returns labels with both sides absent
func EmptySideLabels() SideLabels {
	return SideLabels{}
}

// Left returns the left label text
func (l SideLabels) Left() string {
	return l.left
}

// Right returns the right label text
func (l SideLabels) Right() string {
	return l.right
}

// HasLeft reports whether a left label is present
func (l SideLabels) HasLeft() bool {
	return l.left != ""
}

// HasRight reports whether a right label is present
func (l SideLabels) HasRight() bool {
	return l.right != ""
}

// IsEmpty reports whether both labels are absent
func (l SideLabels) IsEmpty() bool {
	return l.left == "" && l.right == ""
}

// Equals checks if two label pairs are equal
func (l SideLabels) Equals(other SideLabels) bool {
	return l.left == other.left && l.right == other.right
}
