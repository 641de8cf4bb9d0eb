package filtering

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stacklok/fuzzymatch/internal/config"
	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

//go:generate mockgen -destination=mocks/mock_filter_service.go -package=mocks -source=filter_service.go FilterService

// FilterService applies pipeline configurations to fuzzy containers
type FilterService interface {
	// Apply runs the configured steps in order and returns the final container
	Apply(ctx context.Context, c *fuzzy.Container, cfg *config.Config) (*fuzzy.Container, error)
}

// defaultFilterService implements FilterService with the container's own matching
type defaultFilterService struct {
	keyFunc fuzzy.KeyFunc
}

// NewDefaultFilterService creates a new defaultFilterService
func NewDefaultFilterService() FilterService {
	return &defaultFilterService{keyFunc: fuzzy.DefaultKey}
}

// NewFilterService creates a FilterService that reports dropped elements using keyFunc
func NewFilterService(keyFunc fuzzy.KeyFunc) FilterService {
	if keyFunc == nil {
		keyFunc = fuzzy.DefaultKey
	}
	return &defaultFilterService{keyFunc: keyFunc}
}

// Apply filters the container based on the pipeline configuration
//
// The filtering process:
// 1. If no configuration is specified, return the original container unchanged
// 2. Resolve each step's match chain (step chain, then configuration chain, then container default)
// 3. Include or exclude the step's patterns, feeding the result into the next step
// 4. Return the container produced by the last step
func (s *defaultFilterService) Apply(
	ctx context.Context,
	c *fuzzy.Container,
	cfg *config.Config) (*fuzzy.Container, error) {
	// If no configuration is specified, return original container
	if cfg == nil {
		slog.Info("No filter configuration specified, returning original collection")
		return c, nil
	}
	if c == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	slog.Info("Applying filter pipeline",
		"steps", len(cfg.Steps),
		"originalCount", c.Len(),
		"kind", c.Kind().String())

	current := c
	for i := range cfg.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := &cfg.Steps[i]
		label := step.Label(i)

		chain, err := cfg.ChainFor(step)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}

		next, err := s.applyStep(current, step, chain)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}

		effective := chain
		if len(effective) == 0 {
			effective = current.MatchTypes()
		}
		slog.Info("Applied filter step",
			"step", label,
			"action", step.Action(),
			"patterns", step.Patterns(),
			"matchTypes", effective,
			"before", current.Len(),
			"after", next.Len())

		if slog.Default().Enabled(ctx, slog.LevelDebug) {
			for _, dropped := range s.dropped(current, next) {
				slog.Debug("Dropped element",
					"step", label,
					"key", dropped)
			}
		}

		current = next
	}

	slog.Info("Filter pipeline completed",
		"originalCount", c.Len(),
		"filteredCount", current.Len())

	return current, nil
}

func (*defaultFilterService) applyStep(
	c *fuzzy.Container,
	step *config.StepConfig,
	chain []fuzzy.MatchType) (*fuzzy.Container, error) {
	if step.Action() == config.ActionInclude {
		return c.IncludeWith(chain, step.Patterns()...)
	}
	return c.ExcludeWith(chain, step.Patterns()...)
}

// dropped lists the keys present in before but not in after, in order.
// Duplicate keys are counted so that dropping one of two equal elements is reported once.
func (s *defaultFilterService) dropped(before, after *fuzzy.Container) []string {
	remaining := make(map[string]int, after.Len())
	for _, k := range after.Keys() {
		remaining[s.keyFunc(k)]++
	}

	var out []string
	for _, k := range before.Keys() {
		key := s.keyFunc(k)
		if remaining[key] > 0 {
			remaining[key]--
			continue
		}
		out = append(out, key)
	}
	return out
}
