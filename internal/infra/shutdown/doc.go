// Package shutdown guarantees that the network owned by the process is
// released exactly once, whatever ends the process.
//
// Four kinds of termination event reach one handler, Guardian.Handle:
//
//   - FatalFault: a panic escaped the command flow (exit 100)
//   - UnhandledAsyncFault: an error escaped the command flow (exit 1001)
//   - Interrupted: SIGINT or SIGTERM (exit 2)
//   - NaturalExit: the command flow finished (exit code set by the flow,
//     2 when none was set)
//
// The first event claims a single-use teardown ticket. Only a natural exit
// uploads logs before stopping the network; abnormal paths only stop it.
// Later events never touch the network again. They wait for the running
// teardown and then request their own exit code, which is ignored if the
// process already exited.
//
// Usage:
//
//	g := shutdown.NewGuardian(registry, shutdown.WithLogger(log))
//	defer g.Recover()
//	g.Install(shutdown.NewSignalSource())
//	runCommand()
//	g.Exit()
//
// Exit codes above 255 are truncated by the operating system; 1001 is
// observed as 233 on Linux.
package shutdown
