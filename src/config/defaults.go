package config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "webguard",
			Version:     "1.0.0",
			Description: "Error prevention engine for generated web artifacts",
		},
		Analyzer: AnalyzerConfig{
			MaxParallelFiles: 8,
			CrossFileChecks:  true,
			SyntaxValidation: true,
		},
		Predictor: PredictorConfig{
			Enabled:          true,
			MinProbability:   0.30,
			HighRiskCutoff:   0.70,
			MediumRiskCutoff: 0.50,
			Thresholds: ThresholdsConfig{
				AvgComplexity:     5.0,
				NestedLoops:       3,
				Frameworks:        1,
				Libraries:         3,
				UnvalidatedInputs: 0,
				InlineHandlers:    2,
				FixedWidths:       3,
				MissingAltImages:  0,
				HoverOnlyStyles:   0,
			},
		},
		Healer: HealerConfig{
			Enabled:          true,
			MaxIterations:    3,
			MaxParallelFiles: 8,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    ".webguard/metrics.db",
		},
		Exclusions: ExclusionsConfig{
			FilePatterns: []string{
				"**/node_modules/**", "**/vendor/**", "**/dist/**",
				"**/*.min.js", "**/*.min.css",
			},
		},
		Severity: SeverityConfig{
			MinSeverity: "warning",
		},
		Output: OutputConfig{
			Formats:            []string{"json"},
			OutputDir:          ".",
			IncludeSuggestions: true,
			IncludeFixLog:      true,
			HotspotsTopN:       10,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "text",
			IncludeTimestamp: true,
			IncludeCaller:    false,
		},
	}
}
