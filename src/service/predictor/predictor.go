// Package predictor derives code-health signals from a file set and its
// detected issues, then matches them against static risk patterns to emit
// probability-scored forecasts of future defect classes. The timeline on an
// alert is a coarse presentation bucket keyed off the risk level, not a
// calibrated temporal estimate.
package predictor

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/util"
)

// maxProbability caps every alert regardless of matched conditions
const maxProbability = 0.95

// Predictor matches extracted features against the risk pattern set
type Predictor struct {
	cfg      config.PredictorConfig
	patterns []RiskPattern
}

// New creates a new predictor
func New(cfg config.PredictorConfig) *Predictor {
	return &Predictor{cfg: cfg, patterns: riskPatterns()}
}

// Predict emits an alert for every risk pattern whose scaled probability
// clears the configured emission cutoff. It performs no mutation and cannot
// fail; missing features simply leave conditions unmet.
func (p *Predictor) Predict(files map[string]string, issues []model.Issue) []model.PredictiveAlert {
	if !p.cfg.Enabled {
		return nil
	}

	features := ExtractFeatures(files, issues)
	util.Debug("Predictor: features extracted: %+v", features)

	var alerts []model.PredictiveAlert
	for _, rp := range p.patterns {
		var matched []string
		for _, cond := range rp.Conditions {
			if cond.Met(features, p.cfg.Thresholds) {
				matched = append(matched, cond.Name)
			}
		}
		if len(matched) == 0 {
			continue
		}

		probability := rp.BaseProbability * float64(len(matched)) / float64(len(rp.Conditions))
		if probability > maxProbability {
			probability = maxProbability
		}
		if probability <= p.cfg.MinProbability {
			continue
		}

		level := model.RiskLevelFor(probability, p.cfg.HighRiskCutoff, p.cfg.MediumRiskCutoff)
		alerts = append(alerts, model.PredictiveAlert{
			ID:                alertID(rp.Name, matched),
			RiskLevel:         level,
			PredictedError:    rp.PredictedError,
			Probability:       probability,
			MatchedConditions: matched,
			PreventionActions: rp.PreventionActions,
			Timeline:          model.TimelineFor(level),
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Probability != alerts[j].Probability {
			return alerts[i].Probability > alerts[j].Probability
		}
		return alerts[i].PredictedError < alerts[j].PredictedError
	})

	util.Info("Predictor: %d alerts emitted", len(alerts))
	return alerts
}

// alertID is deterministic over the pattern name and matched conditions so
// identical input yields identical alerts
func alertID(name string, matched []string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", name, strings.Join(matched, ","))
	return fmt.Sprintf("%016x", h.Sum64())
}
