package dto

import (
	"fmt"
	"strings"

	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/entities"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/services"
	pkgerrors "proofgraph/pkg/errors"
)

// ToStatementDTO maps a statement to its wire shape
func ToStatementDTO(stmt *entities.Statement) StatementDTO {
	return StatementDTO{
		ID:         stmt.ID().String(),
		Content:    stmt.Content().Text(),
		UsageCount: stmt.UsageCount(),
		CreatedAt:  stmt.CreatedAt(),
		ModifiedAt: stmt.ModifiedAt(),
	}
}

// ToOrderedSetDTO maps an ordered set to its wire shape
func ToOrderedSetDTO(set *entities.OrderedSet) OrderedSetDTO {
	statementIDs := make([]string, 0, set.Size())
	for _, sid := range set.StatementIDs() {
		statementIDs = append(statementIDs, sid.String())
	}

	usedBy := make([]UsedByDTO, 0, set.TotalReferenceCount())
	for _, ref := range set.References() {
		usedBy = append(usedBy, UsedByDTO{
			ArgumentID: ref.ArgumentID.String(),
			Usage:      string(ref.Role),
		})
	}

	return OrderedSetDTO{
		ID:           set.ID().String(),
		StatementIDs: statementIDs,
		UsageCount:   set.TotalReferenceCount(),
		UsedBy:       usedBy,
		CreatedAt:    set.CreatedAt(),
		ModifiedAt:   set.ModifiedAt(),
	}
}

// ToAtomicArgumentDTO maps an atomic argument to its wire shape
func ToAtomicArgumentDTO(arg *entities.AtomicArgument) AtomicArgumentDTO {
	d := AtomicArgumentDTO{
		ID:         arg.ID().String(),
		CreatedAt:  arg.CreatedAt(),
		ModifiedAt: arg.ModifiedAt(),
	}

	if psID := arg.PremiseSetID(); psID != nil {
		s := psID.String()
		d.PremiseSetID = &s
	}
	if csID := arg.ConclusionSetID(); csID != nil {
		s := csID.String()
		d.ConclusionSetID = &s
	}

	labels := arg.SideLabels()
	if !labels.IsEmpty() {
		ld := &SideLabelsDTO{}
		if labels.HasLeft() {
			left := labels.Left()
			ld.Left = &left
		}
		if labels.HasRight() {
			right := labels.Right()
			ld.Right = &right
		}
		d.SideLabels = ld
	}

	return d
}

// ToTreeDTO maps a tree to its wire shape
func ToTreeDTO(tree *aggregates.Tree) TreeDTO {
	d := TreeDTO{
		ID: tree.ID().String(),
		Position: PositionDTO{
			X: tree.Position().X(),
			Y: tree.Position().Y(),
		},
		NodeCount:   tree.NodeCount(),
		RootNodeIDs: []string{},
		Nodes:       []TreeNodeDTO{},
		Version:     tree.Version(),
	}

	if props := tree.PhysicalProperties(); props.HasBounds() {
		d.Bounds = &BoundsDTO{Width: props.Width(), Height: props.Height()}
	}

	for _, rootID := range tree.RootNodeIDs() {
		d.RootNodeIDs = append(d.RootNodeIDs, rootID.String())
	}

	for _, node := range tree.Nodes() {
		nd := TreeNodeDTO{
			ID:         node.ID.String(),
			ArgumentID: node.ArgumentID.String(),
		}
		if node.ParentID != nil {
			pid := node.ParentID.String()
			nd.ParentID = &pid
		}
		d.Nodes = append(d.Nodes, nd)
	}

	return d
}

// ToStatsDTO maps derived statistics to their wire shape
func ToStatsDTO(stats *services.ProofStats) *StatsDTO {
	if stats == nil {
		return nil
	}
	return &StatsDTO{
		StatementCount:       stats.StatementCount,
		ArgumentCount:        stats.ArgumentCount,
		TreeCount:            stats.TreeCount,
		ConnectionCount:      stats.ConnectionCount,
		UnusedStatements:     len(stats.UnusedStatements),
		UnconnectedArguments: len(stats.UnconnectedArguments),
		CyclesDetected:       stats.CyclesDetected,
		ValidationStatus:     string(stats.ValidationStatus),
	}
}

// ToDocumentDTO maps a proof aggregate and its trees to the full envelope
func ToDocumentDTO(proof *aggregates.Proof, trees []*aggregates.Tree, stats *services.ProofStats) DocumentDTO {
	d := DocumentDTO{
		ID:              proof.ID().String(),
		Version:         proof.Version(),
		Statements:      make(map[string]StatementDTO),
		OrderedSets:     make(map[string]OrderedSetDTO),
		AtomicArguments: make(map[string]AtomicArgumentDTO),
		Trees:           make(map[string]TreeDTO),
		Stats:           ToStatsDTO(stats),
	}

	for idStr, stmt := range proof.Statements() {
		d.Statements[idStr] = ToStatementDTO(stmt)
	}
	for idStr, set := range proof.OrderedSets() {
		d.OrderedSets[idStr] = ToOrderedSetDTO(set)
	}
	for idStr, arg := range proof.Arguments() {
		d.AtomicArguments[idStr] = ToAtomicArgumentDTO(arg)
	}
	for _, tree := range trees {
		d.Trees[tree.ID().String()] = ToTreeDTO(tree)
	}

	return d
}

// DocumentFromDTO rebuilds a validated proof aggregate and its trees from an
// untrusted envelope. Usage counts and reference registries are re-derived
// from raw membership and wiring; the envelope's declared values are then
// checked against the derived ones and any mismatch rejects the document.
func DocumentFromDTO(d DocumentDTO) (*aggregates.Proof, []*aggregates.Tree, error) {
	proofID, err := valueobjects.NewProofIDFromString(d.ID)
	if err != nil {
		return nil, nil, pkgerrors.NewValidationError(err.Error())
	}

	statements := make([]*entities.Statement, 0, len(d.Statements))
	for key, sd := range d.Statements {
		stmt, err := statementFromDTO(key, sd)
		if err != nil {
			return nil, nil, err
		}
		statements = append(statements, stmt)
	}

	orderedSets := make([]*entities.OrderedSet, 0, len(d.OrderedSets))
	for key, od := range d.OrderedSets {
		set, err := orderedSetFromDTO(key, od)
		if err != nil {
			return nil, nil, err
		}
		orderedSets = append(orderedSets, set)
	}

	arguments := make([]*entities.AtomicArgument, 0, len(d.AtomicArguments))
	for key, ad := range d.AtomicArguments {
		arg, err := atomicArgumentFromDTO(key, ad)
		if err != nil {
			return nil, nil, err
		}
		arguments = append(arguments, arg)
	}

	proof, err := aggregates.ReconstructProof(proofID, d.Version, statements, orderedSets, arguments)
	if err != nil {
		return nil, nil, err
	}

	if err := checkDeclaredCounts(d, proof); err != nil {
		return nil, nil, err
	}

	trees := make([]*aggregates.Tree, 0, len(d.Trees))
	for key, td := range d.Trees {
		tree, err := treeFromDTO(key, td, proofID, proof)
		if err != nil {
			return nil, nil, err
		}
		trees = append(trees, tree)
	}

	return proof, trees, nil
}

func statementFromDTO(key string, d StatementDTO) (*entities.Statement, error) {
	if d.ID != "" && d.ID != key {
		return nil, pkgerrors.NewConsistencyError(
			fmt.Sprintf("statement map key %q does not match embedded ID %q", key, d.ID))
	}

	id, err := valueobjects.NewStatementIDFromString(key)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	content, err := valueobjects.NewStatementContent(d.Content)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("statement %q", key))
	}

	return entities.ReconstructStatement(id, content, d.CreatedAt, d.ModifiedAt)
}

func orderedSetFromDTO(key string, d OrderedSetDTO) (*entities.OrderedSet, error) {
	if d.ID != "" && d.ID != key {
		return nil, pkgerrors.NewConsistencyError(
			fmt.Sprintf("ordered set map key %q does not match embedded ID %q", key, d.ID))
	}

	id, err := valueobjects.NewOrderedSetIDFromString(key)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	statementIDs := make([]valueobjects.StatementID, 0, len(d.StatementIDs))
	for _, raw := range d.StatementIDs {
		sid, err := valueobjects.NewStatementIDFromString(raw)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		statementIDs = append(statementIDs, sid)
	}

	return entities.ReconstructOrderedSet(id, statementIDs, d.CreatedAt, d.ModifiedAt)
}

func atomicArgumentFromDTO(key string, d AtomicArgumentDTO) (*entities.AtomicArgument, error) {
	if d.ID != "" && d.ID != key {
		return nil, pkgerrors.NewConsistencyError(
			fmt.Sprintf("argument map key %q does not match embedded ID %q", key, d.ID))
	}

	id, err := valueobjects.NewArgumentIDFromString(key)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	premiseSetID, err := optionalSetID(d.PremiseSetID)
	if err != nil {
		return nil, err
	}
	conclusionSetID, err := optionalSetID(d.ConclusionSetID)
	if err != nil {
		return nil, err
	}

	var left, right string
	if d.SideLabels != nil {
		if d.SideLabels.Left != nil {
			left = *d.SideLabels.Left
		}
		if d.SideLabels.Right != nil {
			right = *d.SideLabels.Right
		}
	}
	labels, err := valueobjects.NewSideLabels(left, right)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("argument %q", key))
	}

	return entities.ReconstructAtomicArgument(id, premiseSetID, conclusionSetID, labels, d.CreatedAt, d.ModifiedAt)
}

func treeFromDTO(key string, d TreeDTO, proofID valueobjects.ProofID, proof *aggregates.Proof) (*aggregates.Tree, error) {
	if d.ID != "" && d.ID != key {
		return nil, pkgerrors.NewConsistencyError(
			fmt.Sprintf("tree map key %q does not match embedded ID %q", key, d.ID))
	}

	id, err := valueobjects.NewTreeIDFromString(key)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	props := valueobjects.DefaultPhysicalProperties()
	if d.Bounds != nil {
		props, err = valueobjects.NewPhysicalProperties(d.Bounds.Width, d.Bounds.Height, 0, 0)
		if err != nil {
			return nil, pkgerrors.Wrap(err, fmt.Sprintf("tree %q", key))
		}
	}

	nodes := make([]aggregates.TreeNode, 0, len(d.Nodes))
	for _, nd := range d.Nodes {
		nodeID, err := valueobjects.NewTreeNodeIDFromString(nd.ID)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		argID, err := valueobjects.NewArgumentIDFromString(nd.ArgumentID)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		if _, err := proof.GetArgument(argID); err != nil {
			return nil, pkgerrors.Wrap(err, fmt.Sprintf("tree %q node %q", key, nd.ID))
		}

		node := aggregates.TreeNode{ID: nodeID, ArgumentID: argID}
		if nd.ParentID != nil && strings.TrimSpace(*nd.ParentID) != "" {
			parentID, err := valueobjects.NewTreeNodeIDFromString(*nd.ParentID)
			if err != nil {
				return nil, pkgerrors.NewValidationError(err.Error())
			}
			node.ParentID = &parentID
		}
		nodes = append(nodes, node)
	}

	version := d.Version
	if version == 0 {
		version = 1
	}

	return aggregates.ReconstructTree(id, proofID, valueobjects.NewPosition(d.Position.X, d.Position.Y), props, nodes, version)
}

// checkDeclaredCounts compares the envelope's embedded usage counts and
// usedBy registries against the values re-derived during reconstruction. A
// document that declares counts its own membership does not back is corrupt.
func checkDeclaredCounts(d DocumentDTO, proof *aggregates.Proof) error {
	for key, sd := range d.Statements {
		stmt := proof.Statements()[key]
		if sd.UsageCount != stmt.UsageCount() {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("statement %q declares usage count %d but %d ordered set slot(s) reference it",
					key, sd.UsageCount, stmt.UsageCount()))
		}
	}

	for key, od := range d.OrderedSets {
		set := proof.OrderedSets()[key]
		if od.UsageCount != set.TotalReferenceCount() {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("ordered set %q declares usage count %d but %d argument reference(s) exist",
					key, od.UsageCount, set.TotalReferenceCount()))
		}

		declared := make(map[UsedByDTO]struct{}, len(od.UsedBy))
		for _, ub := range od.UsedBy {
			declared[ub] = struct{}{}
		}
		if len(declared) != set.TotalReferenceCount() {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("ordered set %q usedBy list does not match argument wiring", key))
		}
		for _, ref := range set.References() {
			ub := UsedByDTO{ArgumentID: ref.ArgumentID.String(), Usage: string(ref.Role)}
			if _, ok := declared[ub]; !ok {
				return pkgerrors.NewConsistencyError(
					fmt.Sprintf("ordered set %q usedBy list is missing argument %q as %s",
						key, ref.ArgumentID.String(), ref.Role))
			}
		}
	}

	return nil
}

func optionalSetID(raw *string) (*valueobjects.OrderedSetID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := valueobjects.NewOrderedSetIDFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return &id, nil
}
