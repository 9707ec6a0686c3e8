// Package config defines the network definition consumed by `spawn` and
// `test`, and the lookup of cluster credentials.
//
//   - spec.go: NetworkConfig and its sections
//   - default.go: defaults applied after loading
//   - verify.go: structural validation
//   - load.go: reading a JSON or YAML definition from disk
//   - creds.go: resolving a kubeconfig-style credentials file
package config
