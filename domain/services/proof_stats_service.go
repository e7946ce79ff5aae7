package services

import (
	"sort"

	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// ValidationStatus summarizes whether a proof document passed invariant
// checking.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// ProofStats is the read-only statistics surface derived over a proof
// document and its trees. Everything here is computed, never stored.
type ProofStats struct {
	StatementCount       int
	ArgumentCount        int
	TreeCount            int
	ConnectionCount      int
	UnusedStatements     []valueobjects.StatementID
	UnconnectedArguments []valueobjects.ArgumentID
	CyclesDetected       int
	ValidationStatus     ValidationStatus
}

// ProofStatsService derives document statistics and verifies the structural
// properties the aggregates themselves do not enforce, such as cycle-freedom
// of tree parent relations.
type ProofStatsService struct{}

// NewProofStatsService creates a new stats service
func NewProofStatsService() *ProofStatsService {
	return &ProofStatsService{}
}

// Derive computes the full statistics block for a proof and its trees
func (s *ProofStatsService) Derive(proof *aggregates.Proof, trees []*aggregates.Tree) (*ProofStats, error) {
	if proof == nil {
		return nil, pkgerrors.NewValidationError("proof cannot be nil")
	}

	stats := &ProofStats{
		StatementCount:       proof.StatementCount(),
		ArgumentCount:        proof.ArgumentCount(),
		TreeCount:            len(trees),
		ConnectionCount:      s.countConnections(proof),
		UnusedStatements:     s.unusedStatements(proof),
		UnconnectedArguments: s.unconnectedArguments(proof, trees),
		ValidationStatus:     ValidationStatusValid,
	}

	for _, tree := range trees {
		stats.CyclesDetected += s.CountTreeCycles(tree)
	}

	if proof.Validate() != nil || stats.CyclesDetected > 0 {
		stats.ValidationStatus = ValidationStatusInvalid
	}

	return stats, nil
}

// countConnections counts (producer, consumer) argument pairs: for every
// ordered set, each argument concluding into it connects to each argument
// drawing premises from it. Sharing the set id is what makes a connection.
func (s *ProofStatsService) countConnections(proof *aggregates.Proof) int {
	count := 0
	for _, set := range proof.OrderedSets() {
		count += len(set.ReferencedByAsConclusion()) * len(set.ReferencedByAsPremise())
	}
	return count
}

// unusedStatements lists statements no ordered set references
func (s *ProofStatsService) unusedStatements(proof *aggregates.Proof) []valueobjects.StatementID {
	unused := []valueobjects.StatementID{}
	for _, stmt := range proof.Statements() {
		if !stmt.IsUsed() {
			unused = append(unused, stmt.ID())
		}
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].String() < unused[j].String() })
	return unused
}

// unconnectedArguments lists arguments no tree node displays, resolved
// through the explicit node-to-argument mapping.
func (s *ProofStatsService) unconnectedArguments(
	proof *aggregates.Proof, trees []*aggregates.Tree,
) []valueobjects.ArgumentID {
	placed := make(map[string]struct{})
	for _, tree := range trees {
		for _, argID := range tree.ArgumentIDs() {
			placed[argID.String()] = struct{}{}
		}
	}

	unconnected := []valueobjects.ArgumentID{}
	for idStr, arg := range proof.Arguments() {
		if _, ok := placed[idStr]; !ok {
			unconnected = append(unconnected, arg.ID())
		}
	}
	sort.Slice(unconnected, func(i, j int) bool { return unconnected[i].String() < unconnected[j].String() })
	return unconnected
}

// CountTreeCycles counts the distinct cycles in a tree's parent relation.
// Parent pointers leading outside the node map terminate a walk, matching
// the derived root rule.
func (s *ProofStatsService) CountTreeCycles(tree *aggregates.Tree) int {
	if tree == nil {
		return 0
	}

	nodes := tree.Nodes()

	const (
		unvisited = 0
		inWalk    = 1
		done      = 2
	)
	state := make(map[string]int, len(nodes))
	cycles := 0

	for start := range nodes {
		if state[start] != unvisited {
			continue
		}

		// Walk parent pointers, coloring the path. Hitting a node from the
		// current walk closes a new cycle; hitting a finished node does not.
		walk := []string{}
		current := start
		for {
			if state[current] == inWalk {
				cycles++
				break
			}
			if state[current] == done {
				break
			}
			state[current] = inWalk
			walk = append(walk, current)

			node := nodes[current]
			if node.ParentID == nil {
				break
			}
			next := node.ParentID.String()
			if _, ok := nodes[next]; !ok {
				break
			}
			current = next
		}

		for _, id := range walk {
			state[id] = done
		}
	}

	return cycles
}

// VerifyTreeAcyclic reports an error when a tree's parent relation contains
// a cycle, for consumers that treat the relation as authoritative.
func (s *ProofStatsService) VerifyTreeAcyclic(tree *aggregates.Tree) error {
	if cycles := s.CountTreeCycles(tree); cycles > 0 {
		return pkgerrors.NewConsistencyError("tree parent relation contains a cycle")
	}
	return nil
}
