// Package engine provisions test networks on podman or kubernetes.
//
// The engine drives the provider CLIs (podman, kubectl) through a
// CommandRunner so it can be exercised without a container runtime. Start
// returns a *Network, which implements session.Session:
//
//	eng := engine.New()
//	net, err := eng.Start(ctx, creds, cfg, monitor)
//	defer net.Stop(ctx)
//
// Unless monitor mode is set, a network removes itself once the configured
// global timeout elapses.
package engine
