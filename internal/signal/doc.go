// Package signal holds the numeric helpers used by the signal and fatigue views:
// turning chart relayout events into sample index selections, and fitting
// a least squares trend line over fatigue values.
package signal
