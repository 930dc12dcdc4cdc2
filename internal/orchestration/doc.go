// Package orchestration coordinates concurrent evaluation of fraction
// expressions and aggregates batch results. It decouples evaluation from
// presentation via ProgressReporter and ResultPresenter interfaces.
package orchestration
