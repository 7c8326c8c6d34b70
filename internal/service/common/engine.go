//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/evaluator"
	"github.com/Snorps/better-medical-alerts/internal/i18n"
)

// NewEvaluator builds an evaluator tuned by the settings. The catalog file,
// when set, is layered over the built-in English templates.
func NewEvaluator(cfg *config.Config) (*evaluator.Evaluator, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}

	catalog, err := i18n.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return evaluator.New(
		evaluator.WithTranslator(catalog),
		evaluator.WithBleedOutThreshold(cfg.BleedOutThresholdTicks),
		evaluator.WithTicksPerDay(cfg.TicksPerDay),
	), nil
}
