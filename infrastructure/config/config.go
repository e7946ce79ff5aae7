package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	domaincfg "proofgraph/domain/config"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	EventBusName  string `yaml:"event_bus_name"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Authentication
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// Feature flags
	EnableCORS bool `yaml:"enable_cors"`

	// Domain limits, runtime-reloadable through the watcher
	Limits Limits `yaml:"limits"`
}

// Limits holds the document size limits enforced by the domain layer
type Limits struct {
	MaxStatementLength  int `yaml:"max_statement_length"`
	MaxSideLabelLength  int `yaml:"max_side_label_length"`
	MaxStatementsPerSet int `yaml:"max_statements_per_set"`
	MaxStatementsPerDoc int `yaml:"max_statements_per_doc"`
	MaxSetsPerDoc       int `yaml:"max_sets_per_doc"`
	MaxArgumentsPerDoc  int `yaml:"max_arguments_per_doc"`
	MaxNodesPerTree     int `yaml:"max_nodes_per_tree"`
	MaxTreesPerDoc      int `yaml:"max_trees_per_doc"`
}

// DefaultLimits returns the limits matching the domain defaults
func DefaultLimits() Limits {
	defaults := domaincfg.DefaultDomainConfig()
	return Limits{
		MaxStatementLength:  defaults.MaxStatementLength,
		MaxSideLabelLength:  defaults.MaxSideLabelLength,
		MaxStatementsPerSet: defaults.MaxStatementsPerSet,
		MaxStatementsPerDoc: defaults.MaxStatementsPerProof,
		MaxSetsPerDoc:       defaults.MaxSetsPerProof,
		MaxArgumentsPerDoc:  defaults.MaxArgumentsPerProof,
		MaxNodesPerTree:     defaults.MaxNodesPerTree,
		MaxTreesPerDoc:      defaults.MaxTreesPerProof,
	}
}

// LoadConfig loads configuration from environment variables, then overlays
// the optional YAML file named by CONFIG_FILE.
func LoadConfig() (*Config, error) {
	defaults := domaincfg.DefaultDomainConfig()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "proofgraph")),
		EventBusName:  getEnv("EVENT_BUS_NAME", "proofgraph-events"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "proofgraph"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),

		Limits: Limits{
			MaxStatementLength:  getEnvInt("MAX_STATEMENT_LENGTH", defaults.MaxStatementLength),
			MaxSideLabelLength:  getEnvInt("MAX_SIDE_LABEL_LENGTH", defaults.MaxSideLabelLength),
			MaxStatementsPerSet: getEnvInt("MAX_STATEMENTS_PER_SET", defaults.MaxStatementsPerSet),
			MaxStatementsPerDoc: getEnvInt("MAX_STATEMENTS_PER_DOC", defaults.MaxStatementsPerProof),
			MaxSetsPerDoc:       getEnvInt("MAX_SETS_PER_DOC", defaults.MaxSetsPerProof),
			MaxArgumentsPerDoc:  getEnvInt("MAX_ARGUMENTS_PER_DOC", defaults.MaxArgumentsPerProof),
			MaxNodesPerTree:     getEnvInt("MAX_NODES_PER_TREE", defaults.MaxNodesPerTree),
			MaxTreesPerDoc:      getEnvInt("MAX_TREES_PER_DOC", defaults.MaxTreesPerProof),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// overlayFile merges values from a YAML file over the current configuration
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
	}
	return c.Limits.Validate()
}

// Validate checks that every limit is positive
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"max_statement_length", l.MaxStatementLength},
		{"max_side_label_length", l.MaxSideLabelLength},
		{"max_statements_per_set", l.MaxStatementsPerSet},
		{"max_statements_per_doc", l.MaxStatementsPerDoc},
		{"max_sets_per_doc", l.MaxSetsPerDoc},
		{"max_arguments_per_doc", l.MaxArgumentsPerDoc},
		{"max_nodes_per_tree", l.MaxNodesPerTree},
		{"max_trees_per_doc", l.MaxTreesPerDoc},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return fmt.Errorf("%s must be positive", check.name)
		}
	}
	return nil
}

// ToDomainConfig maps the configured limits onto the domain configuration
func (c *Config) ToDomainConfig() *domaincfg.DomainConfig {
	dc := domaincfg.DefaultDomainConfig()
	dc.MaxStatementLength = c.Limits.MaxStatementLength
	dc.MaxSideLabelLength = c.Limits.MaxSideLabelLength
	dc.MaxStatementsPerSet = c.Limits.MaxStatementsPerSet
	dc.MaxStatementsPerProof = c.Limits.MaxStatementsPerDoc
	dc.MaxSetsPerProof = c.Limits.MaxSetsPerDoc
	dc.MaxArgumentsPerProof = c.Limits.MaxArgumentsPerDoc
	dc.MaxNodesPerTree = c.Limits.MaxNodesPerTree
	dc.MaxTreesPerProof = c.Limits.MaxTreesPerDoc
	return dc
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
