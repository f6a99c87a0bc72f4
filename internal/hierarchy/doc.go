// Package hierarchy derives the reporting forest shown on the organization chart.
//
// Employees link to their supervisor only through a display name, so every build
// re-resolves those names against the chart-eligible subset of the directory. The
// package holds no state between calls: callers pass the current directory snapshot
// and receive a freshly assembled Forest they own exclusively.
package hierarchy
