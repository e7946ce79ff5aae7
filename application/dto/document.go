package dto

import (
	"time"
)

// The types in this package are the flat, serializable shape of a proof
// document, suitable for any document store or file format. They carry no
// behavior; mapping to and from the domain lives in mapper.go. Optional
// references and labels are pointers, never empty-string sentinels.

// StatementDTO is the wire shape of a statement
type StatementDTO struct {
	ID         string    `json:"id" dynamodbav:"ID"`
	Content    string    `json:"content" dynamodbav:"Content"`
	UsageCount int       `json:"usage_count" dynamodbav:"UsageCount"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"CreatedAt"`
	ModifiedAt time.Time `json:"modified_at" dynamodbav:"ModifiedAt"`
}

// UsedByDTO records one argument using an ordered set in one role
type UsedByDTO struct {
	ArgumentID string `json:"argument_id" dynamodbav:"ArgumentID"`
	Usage      string `json:"usage" dynamodbav:"Usage"`
}

// OrderedSetDTO is the wire shape of an ordered set
type OrderedSetDTO struct {
	ID           string      `json:"id" dynamodbav:"ID"`
	StatementIDs []string    `json:"statement_ids" dynamodbav:"StatementIDs"`
	UsageCount   int         `json:"usage_count" dynamodbav:"UsageCount"`
	UsedBy       []UsedByDTO `json:"used_by" dynamodbav:"UsedBy"`
	CreatedAt    time.Time   `json:"created_at" dynamodbav:"CreatedAt"`
	ModifiedAt   time.Time   `json:"modified_at" dynamodbav:"ModifiedAt"`
}

// SideLabelsDTO is the wire shape of argument side annotations
type SideLabelsDTO struct {
	Left  *string `json:"left,omitempty" dynamodbav:"Left,omitempty"`
	Right *string `json:"right,omitempty" dynamodbav:"Right,omitempty"`
}

// AtomicArgumentDTO is the wire shape of an atomic argument
type AtomicArgumentDTO struct {
	ID              string         `json:"id" dynamodbav:"ID"`
	PremiseSetID    *string        `json:"premise_set_id" dynamodbav:"PremiseSetID"`
	ConclusionSetID *string        `json:"conclusion_set_id" dynamodbav:"ConclusionSetID"`
	SideLabels      *SideLabelsDTO `json:"side_labels,omitempty" dynamodbav:"SideLabels,omitempty"`
	CreatedAt       time.Time      `json:"created_at" dynamodbav:"CreatedAt"`
	ModifiedAt      time.Time      `json:"modified_at" dynamodbav:"ModifiedAt"`
}

// PositionDTO is a 2D workspace position
type PositionDTO struct {
	X float64 `json:"x" dynamodbav:"X"`
	Y float64 `json:"y" dynamodbav:"Y"`
}

// BoundsDTO is an optional layout sizing block
type BoundsDTO struct {
	Width  float64 `json:"width" dynamodbav:"Width"`
	Height float64 `json:"height" dynamodbav:"Height"`
}

// TreeNodeDTO is the wire shape of one tree node, including the explicit
// node-to-argument mapping
type TreeNodeDTO struct {
	ID         string  `json:"id" dynamodbav:"ID"`
	ArgumentID string  `json:"argument_id" dynamodbav:"ArgumentID"`
	ParentID   *string `json:"parent_id" dynamodbav:"ParentID"`
}

// TreeDTO is the wire shape of a derivation tree. NodeCount and RootNodeIDs
// are derived values included for consumers; reconstruction recomputes them.
type TreeDTO struct {
	ID          string        `json:"id" dynamodbav:"ID"`
	Position    PositionDTO   `json:"position" dynamodbav:"Position"`
	Bounds      *BoundsDTO    `json:"bounds,omitempty" dynamodbav:"Bounds,omitempty"`
	NodeCount   int           `json:"node_count" dynamodbav:"NodeCount"`
	RootNodeIDs []string      `json:"root_node_ids" dynamodbav:"RootNodeIDs"`
	Nodes       []TreeNodeDTO `json:"nodes" dynamodbav:"Nodes"`
	Version     int           `json:"version" dynamodbav:"Version"`
}

// StatsDTO is the derived statistics block of a document envelope
type StatsDTO struct {
	StatementCount       int    `json:"statement_count" dynamodbav:"StatementCount"`
	ArgumentCount        int    `json:"argument_count" dynamodbav:"ArgumentCount"`
	TreeCount            int    `json:"tree_count" dynamodbav:"TreeCount"`
	ConnectionCount      int    `json:"connection_count" dynamodbav:"ConnectionCount"`
	UnusedStatements     int    `json:"unused_statements" dynamodbav:"UnusedStatements"`
	UnconnectedArguments int    `json:"unconnected_arguments" dynamodbav:"UnconnectedArguments"`
	CyclesDetected       int    `json:"cycles_detected" dynamodbav:"CyclesDetected"`
	ValidationStatus     string `json:"validation_status" dynamodbav:"ValidationStatus"`
}

// DocumentDTO is the full envelope for one proof document and its trees
type DocumentDTO struct {
	ID              string                       `json:"id" dynamodbav:"ID"`
	Version         int                          `json:"version" dynamodbav:"Version"`
	Statements      map[string]StatementDTO      `json:"statements" dynamodbav:"Statements"`
	OrderedSets     map[string]OrderedSetDTO     `json:"ordered_sets" dynamodbav:"OrderedSets"`
	AtomicArguments map[string]AtomicArgumentDTO `json:"atomic_arguments" dynamodbav:"AtomicArguments"`
	Trees           map[string]TreeDTO           `json:"trees" dynamodbav:"Trees"`
	Stats           *StatsDTO                    `json:"stats,omitempty" dynamodbav:"Stats,omitempty"`
}
