package valueobjects

import (
	pkgerrors "proofgraph/pkg/errors"
)

// Position is a value object for a tree's placement on the workspace canvas
type Position struct {
	x float64
	y float64
}

// NewPosition creates a new position
func NewPosition(x, y float64) Position {
	return Position{x: x, y: y}
}

// X returns the horizontal coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the vertical coordinate
func (p Position) Y() float64 {
	return p.y
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.x == other.x && p.y == other.y
}

// Translate returns a position offset by the given deltas
func (p Position) Translate(dx, dy float64) Position {
	return Position{x: p.x + dx, y: p.y + dy}
}

// PhysicalProperties holds the layout sizing hints for a tree
type PhysicalProperties struct {
	width    float64
	height   float64
	spacingX float64
	spacingY float64
}

// NewPhysicalProperties creates layout properties with validation
func NewPhysicalProperties(width, height, spacingX, spacingY float64) (PhysicalProperties, error) {
	if width < 0 || height < 0 {
		return PhysicalProperties{}, pkgerrors.NewValidationError("tree dimensions cannot be negative")
	}
	if spacingX < 0 || spacingY < 0 {
		return PhysicalProperties{}, pkgerrors.NewValidationError("node spacing cannot be negative")
	}
	return PhysicalProperties{width: width, height: height, spacingX: spacingX, spacingY: spacingY}, nil
}

// DefaultPhysicalProperties returns zero-valued sizing, meaning the
// presentation layer decides.
func DefaultPhysicalProperties() PhysicalProperties {
	return PhysicalProperties{}
}

// Width returns the tree width
func (p PhysicalProperties) Width() float64 {
	return p.width
}

// Height returns the tree height
func (p PhysicalProperties) Height() float64 {
	return p.height
}

// SpacingX returns the horizontal node spacing
func (p PhysicalProperties) SpacingX() float64 {
	return p.spacingX
}

// SpacingY returns the vertical node spacing
func (p PhysicalProperties) SpacingY() float64 {
	return p.spacingY
}

// HasBounds reports whether explicit dimensions were set
func (p PhysicalProperties) HasBounds() bool {
	return p.width > 0 || p.height > 0
}

// Equals checks if two property sets are equal
func (p PhysicalProperties) Equals(other PhysicalProperties) bool {
	return p == other
}
