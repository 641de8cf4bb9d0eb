// Package filtering applies include and exclude rules to collections using the
// fuzzy matching engine.
//
// # Architecture
//
// The filtering system consists of three main components:
//
//   - FilterService: runs a pipeline configuration against a fuzzy.Container,
//     one step at a time, each step feeding the next
//   - NameFilter: decides whether a single name passes include/exclude patterns
//   - TagFilter: decides whether a set of tags passes include/exclude patterns
//
// # Match Chains
//
// Every decision goes through a fallback chain of match types. The first match
// type in the chain that yields a non-empty result decides the outcome, so with
// the chain [EXACT, PREFIX] the pattern "postgres" keeps only "postgres" when it
// is present and falls back to "postgres-client", "postgres-server" otherwise.
//
// # Filtering Logic
//
// NameFilter and TagFilter follow the same precedence rules:
//
//  1. If exclude patterns are specified and match -> exclude (precedence)
//  2. If include patterns are specified and match -> include
//  3. If include patterns are specified but no match -> exclude
//  4. If only exclude patterns are specified and no match -> include
//  5. If no patterns are specified -> include (default behavior)
//
// # Usage Example
//
//	service := NewDefaultFilterService()
//	cfg := &config.Config{
//		MatchTypes: []string{"EXACT", "PREFIX"},
//		Steps: []config.StepConfig{
//			{Include: []string{"postgres", "mysql"}},
//			{Exclude: []string{"*-experimental"}, MatchTypes: []string{"GLOB"}},
//		},
//	}
//
//	filtered, err := service.Apply(ctx, container, cfg)
//
// # Detailed Logging
//
// Each step is logged with its action, patterns and element counts. At debug
// level the keys dropped by each step are logged as well.
package filtering
