/*
Package observability provides Prometheus metrics for the cell generator.

Metrics are fed through domain.LifecycleHooks, so any host that drives a
Generator or a session.Manager can record them without touching the rule.
*/
package observability
