package stats

import (
	"github.com/firestone-manager/firestone/internal/game/hero"
	"go.uber.org/zap"
)

// Engine binds a Catalog to a logger and logs every computation.
type Engine struct {
	cat    Catalog
	logger *zap.Logger
}

// NewLoggedEngine creates an Engine computing against cat and logging to logger.
//
// Precondition: cat and logger must be non-nil.
func NewLoggedEngine(cat Catalog, logger *zap.Logger) *Engine {
	return &Engine{cat: cat, logger: logger}
}

// Compute returns h's stats. Each diagnostic is logged at warn level and the
// result at debug level.
func (e *Engine) Compute(h *hero.Hero) Stats {
	return e.Evaluate(h).Stats
}

// Evaluate is Compute keeping the diagnostics.
func (e *Engine) Evaluate(h *hero.Hero) Result {
	res := Compute(h, e.cat)
	for _, d := range res.Diagnostics {
		e.logger.Warn("missing reference data",
			zap.String("hero", h.ID),
			zap.String("kind", string(d.Kind)),
			zap.String("id", d.ID),
			zap.String("item", d.Item),
		)
	}
	e.logger.Debug("hero stats",
		zap.String("hero", h.ID),
		zap.Float64("dmg", res.Dmg),
		zap.Float64("potential_dmg", res.PotentialDmg),
		zap.Float64("health", res.Health),
		zap.Float64("potential_health", res.PotentialHealth),
		zap.Float64("resist", res.Resist),
		zap.Float64("potential_resist", res.PotentialResist),
	)
	return res
}
