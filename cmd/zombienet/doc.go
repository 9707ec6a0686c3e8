// Package main provides the entry point for zombienet.
//
// zombienet spawns ephemeral test networks on podman or kubernetes and runs
// test definitions against them. Whatever ends the process (a finished
// command, Ctrl+C, a panic or an unhandled error), the running network is
// removed exactly once before exit.
package main
