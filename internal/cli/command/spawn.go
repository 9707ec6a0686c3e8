package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/zombienet-go/internal/infra/confloader"
)

// SpawnCommand returns the spawn command.
func SpawnCommand() *cli.Command {
	return &cli.Command{
		Name:         "spawn",
		Usage:        "Spawn the network defined in the config",
		ArgsUsage:    "<networkConfig> [creds] [monitor]",
		Flags:        []cli.Flag{providerFlag("")},
		Action:       spawnAction,
		OnUsageError: usageError,
	}
}

func spawnAction(c *cli.Context) error {
	rt := RuntimeFrom(c)
	args := positional(c)

	// An unset provider leaves the one in the network config alone.
	provider, set := providerOption(c)
	if !set {
		provider = ""
	}

	inv, err := rt.Resolver.ResolveSpawn(arg(args, 0), arg(args, 1), arg(args, 2), provider)
	if err != nil {
		return err
	}

	if err := rt.Dispatcher.Spawn(c.Context, inv); err != nil {
		return err
	}

	if inv.Monitor {
		watchConfig(rt, inv.ConfigPath)
	}

	// The network stays up until a termination event ends the process.
	select {
	case <-rt.Guardian.Done():
	case <-c.Context.Done():
	}
	return nil
}

// watchConfig warns when the network definition changes under a running
// network. Failing to watch is not fatal.
func watchConfig(rt *Runtime, path string) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Log))
	if err != nil {
		rt.Log.Warn("cannot watch network config", "error", err)
		return
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		rt.Log.Warn("cannot watch network config", "file", path, "error", err)
		return
	}

	w.OnChange(func(file string) {
		rt.Log.Warn("network config changed; respawn the network to apply it", "file", file)
	})
	w.StartAsync()

	rt.Guardian.OnShutdown(func(context.Context) error {
		return w.Stop()
	})
}
