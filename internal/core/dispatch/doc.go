// Package dispatch runs resolved invocations against the orchestration and
// test engines.
//
// The dispatcher is the only place a network session is registered. Errors
// are returned to the caller unhandled; the CLI layer decides whether they
// end the process as a pre-session report or as an unhandled fault.
package dispatch
