package config

// Config is the root configuration structure
type Config struct {
	Agent      AgentConfig      `yaml:"agent"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
	Predictor  PredictorConfig  `yaml:"predictor"`
	Healer     HealerConfig     `yaml:"healer"`
	Store      StoreConfig      `yaml:"store"`
	Exclusions ExclusionsConfig `yaml:"exclusions"`
	Severity   SeverityConfig   `yaml:"severity"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AgentConfig contains agent metadata
type AgentConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// AnalyzerConfig contains analysis settings
type AnalyzerConfig struct {
	MaxParallelFiles int  `yaml:"max_parallel_files"`
	CrossFileChecks  bool `yaml:"cross_file_checks"`
	SyntaxValidation bool `yaml:"syntax_validation"`
}

// PredictorConfig contains risk-prediction settings
type PredictorConfig struct {
	Enabled          bool             `yaml:"enabled"`
	MinProbability   float64          `yaml:"min_probability"`
	HighRiskCutoff   float64          `yaml:"high_risk_cutoff"`
	MediumRiskCutoff float64          `yaml:"medium_risk_cutoff"`
	Thresholds       ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig contains the fixed feature thresholds that decide
// whether a risk condition counts as met
type ThresholdsConfig struct {
	AvgComplexity     float64 `yaml:"avg_complexity"`
	NestedLoops       int     `yaml:"nested_loops"`
	Frameworks        int     `yaml:"frameworks"`
	Libraries         int     `yaml:"libraries"`
	UnvalidatedInputs int     `yaml:"unvalidated_inputs"`
	InlineHandlers    int     `yaml:"inline_handlers"`
	FixedWidths       int     `yaml:"fixed_widths"`
	MissingAltImages  int     `yaml:"missing_alt_images"`
	HoverOnlyStyles   int     `yaml:"hover_only_styles"`
}

// HealerConfig contains self-healing settings
type HealerConfig struct {
	Enabled          bool `yaml:"enabled"`
	MaxIterations    int  `yaml:"max_iterations"`
	MaxParallelFiles int  `yaml:"max_parallel_files"`
}

// StoreConfig contains metrics persistence settings
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ExclusionsConfig contains exclusion patterns for analyzed files
type ExclusionsConfig struct {
	FilePatterns []string `yaml:"file_patterns"`
	Files        []string `yaml:"files"`
}

// SeverityConfig contains severity settings
type SeverityConfig struct {
	MinSeverity string `yaml:"min_severity"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats            []string `yaml:"formats"`
	OutputDir          string   `yaml:"output_dir"`
	IncludeSuggestions bool     `yaml:"include_suggestions"`
	IncludeFixLog      bool     `yaml:"include_fix_log"`
	HotspotsTopN       int      `yaml:"hotspots_top_n"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	Format           string `yaml:"format"` // text, json
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
	IncludeCaller    bool   `yaml:"include_caller"`
}
