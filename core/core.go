// Package core implements the hrpulse pipeline: synthetic metrics
// generation, trend analysis, risk detection and narrative formatting.
package core
