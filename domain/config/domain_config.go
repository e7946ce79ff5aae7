package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Statement constraints
	MaxStatementLength int
	MinStatementLength int

	// Side label constraints
	MaxSideLabelLength int

	// Ordered set constraints
	MaxStatementsPerSet int

	// Proof constraints
	MaxStatementsPerProof int
	MaxSetsPerProof       int
	MaxArgumentsPerProof  int

	// Tree constraints
	MaxNodesPerTree  int
	MaxTreesPerProof int

	// Layout defaults
	DefaultTreeWidth  float64
	DefaultTreeHeight float64
	MinNodeSpacingX   float64
	MinNodeSpacingY   float64
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxStatementLength: 10000,
		MinStatementLength: 1,

		MaxSideLabelLength: 256,

		MaxStatementsPerSet: 200,

		MaxStatementsPerProof: 10000,
		MaxSetsPerProof:       10000,
		MaxArgumentsPerProof:  5000,

		MaxNodesPerTree:  1000,
		MaxTreesPerProof: 100,

		DefaultTreeWidth:  400,
		DefaultTreeHeight: 200,
		MinNodeSpacingX:   40,
		MinNodeSpacingY:   60,
	}
}
