package predictor

import "webguard/src/config"

// Condition is one named threshold check over the extracted features
type Condition struct {
	Name string
	Met  func(f Features, t config.ThresholdsConfig) bool
}

// RiskPattern is a named cluster of conditions whose co-occurrence predicts
// a future defect class
type RiskPattern struct {
	Name              string
	PredictedError    string
	BaseProbability   float64
	Conditions        []Condition
	PreventionActions []string
}

// riskPatterns is the static, deterministic rule set. No signal in here is
// sampled or randomized: the same input always yields the same alerts.
func riskPatterns() []RiskPattern {
	return []RiskPattern{
		{
			Name:            "performance_degradation",
			PredictedError:  "Page interaction latency will degrade as data volume grows",
			BaseProbability: 0.85,
			Conditions: []Condition{
				{"high_complexity", func(f Features, t config.ThresholdsConfig) bool {
					return f.AvgComplexity > t.AvgComplexity
				}},
				{"many_nested_loops", func(f Features, t config.ThresholdsConfig) bool {
					return f.NestedLoops > t.NestedLoops
				}},
				{"heavy_library_mix", func(f Features, t config.ThresholdsConfig) bool {
					return f.Libraries > t.Libraries
				}},
			},
			PreventionActions: []string{
				"Flatten nested iteration or move it off the render path",
				"Replace repeated DOM queries with cached references",
				"Audit bundled libraries for overlap",
			},
		},
		{
			Name:            "framework_conflict",
			PredictedError:  "Competing UI frameworks will fight over the same DOM",
			BaseProbability: 0.75,
			Conditions: []Condition{
				{"multiple_frameworks", func(f Features, t config.ThresholdsConfig) bool {
					return f.Frameworks > t.Frameworks
				}},
				{"mixed_library_stack", func(f Features, t config.ThresholdsConfig) bool {
					return f.Libraries > t.Libraries
				}},
			},
			PreventionActions: []string{
				"Standardize on a single UI framework",
				"Isolate legacy widgets behind a defined mount point",
			},
		},
		{
			Name:            "security_vulnerability",
			PredictedError:  "User-controlled input will reach a dangerous sink",
			BaseProbability: 0.90,
			Conditions: []Condition{
				{"unvalidated_inputs", func(f Features, t config.ThresholdsConfig) bool {
					return f.UnvalidatedInputs > t.UnvalidatedInputs
				}},
				{"inline_handlers", func(f Features, t config.ThresholdsConfig) bool {
					return f.InlineHandlers > t.InlineHandlers
				}},
				{"dangerous_sinks", func(f Features, t config.ThresholdsConfig) bool {
					return f.DangerousSinks > 0
				}},
			},
			PreventionActions: []string{
				"Add validation attributes or a validation layer to form inputs",
				"Replace innerHTML assignment with textContent or a templating API",
				"Remove eval and inline handlers",
			},
		},
		{
			Name:            "accessibility_regression",
			PredictedError:  "Keyboard and screen-reader users will be locked out of core flows",
			BaseProbability: 0.80,
			Conditions: []Condition{
				{"images_missing_alt", func(f Features, t config.ThresholdsConfig) bool {
					return f.ImagesMissingAlt > t.MissingAltImages
				}},
				{"no_focus_styles", func(f Features, t config.ThresholdsConfig) bool {
					return !f.FocusStylePresent
				}},
				{"hover_only_styling", func(f Features, t config.ThresholdsConfig) bool {
					return f.HoverOnlyStyles > t.HoverOnlyStyles
				}},
			},
			PreventionActions: []string{
				"Add alt text to all informative images",
				"Pair every :hover rule with a :focus equivalent",
				"Define a visible :focus-visible style",
			},
		},
		{
			Name:            "responsive_layout_breakage",
			PredictedError:  "Layout will overflow or clip on small viewports",
			BaseProbability: 0.80,
			Conditions: []Condition{
				{"fixed_widths", func(f Features, t config.ThresholdsConfig) bool {
					return f.FixedWidths > t.FixedWidths
				}},
				{"no_viewport", func(f Features, t config.ThresholdsConfig) bool {
					return !f.ViewportPresent
				}},
			},
			PreventionActions: []string{
				"Add a responsive viewport meta tag",
				"Convert fixed pixel widths to max-width with relative units",
			},
		},
	}
}
