// Package observability exposes story activity as prometheus metrics.
//
// Metrics are fed through inkling.Hooks, so any Story can be instrumented
// without changes to the core packages:
//
//	m, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
//	story, _ := inkling.New(root, inkling.WithHooks(m.Hooks()))
package observability
