package command

import (
	"github.com/urfave/cli/v2"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:         "version",
		Usage:        "Prints zombienet version",
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			rt := RuntimeFrom(c)
			return rt.Dispatcher.Version(rt.Resolver.ResolveVersion())
		},
	}
}
