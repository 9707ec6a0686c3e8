// Package invocation validates command-line arguments and resolves them into
// invocation descriptors for the dispatcher.
//
// Resolution happens before any network exists, so errors returned here never
// require teardown:
//
//	r := invocation.NewResolver()
//	inv, err := r.ResolveSpawn("network.yaml", "", "", "podman")
//	if domain.IsPreSession(err) {
//	    // report and exit
//	}
package invocation
