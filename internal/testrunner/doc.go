// Package testrunner executes network test definitions.
//
// A definition starts with a header naming the network and the creds, then
// lists one assertion per line:
//
//	Description: Small network smoke test
//	Network: ./small-network.yaml
//	Creds: config
//
//	alice: is up
//	bob: is up within 30 seconds
//
// The runner launches its own network, evaluates every assertion and always
// removes the network before returning. That network is never registered
// with the process session registry.
package testrunner
