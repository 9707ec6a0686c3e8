// Package output renders network summaries for the terminal.
//
//   - table.go: aligned tables for ShowNetworkInfo
//   - json.go: indented JSON for machine-readable summaries
package output
