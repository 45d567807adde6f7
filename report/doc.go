// Package report turns estimator runs into convergence summaries.
//
// It fits the log-log convergence slope of a curve (LogLogSlope), renders
// HTML pages of echarts charts (gradient norm against iterations and time on
// log axes, target measure against b, transport-plan heat map) and formats
// plain-text tables for terminals (SummaryTable, PlanTable).
//
// Report values are read-only consumers of estimator.Result; nothing here
// feeds back into an optimization.
package report
