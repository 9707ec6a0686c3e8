package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/infra/buildinfo"
)

// App creates the CLI application bound to rt.
func App(rt *Runtime) *cli.App {
	return &cli.App{
		Name:      "zombienet",
		Usage:     "Spawn and test ephemeral blockchain networks",
		Version:   buildinfo.Version,
		Flags:     globalFlags(),
		Writer:    rt.Stdout,
		ErrWriter: rt.Stderr,
		Commands: []*cli.Command{
			SpawnCommand(),
			TestCommand(),
			VersionCommand(),
		},
		Metadata:     map[string]any{runtimeKey: rt},
		Before:       rt.setup,
		OnUsageError: usageError,
		// The guardian ends the process; urfave must not call os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// usageError turns a flag parsing failure into exit code 1.
func usageError(_ *cli.Context, err error, _ bool) error {
	return cli.Exit(err.Error(), 1)
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		providerFlag(domain.DefaultProvider),
		&cli.StringFlag{
			Name:    "settings",
			Usage:   "CLI settings file (yaml or json)",
			EnvVars: []string{"ZOMBIE_SETTINGS"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.DurationFlag{
			Name:  "teardown-timeout",
			Usage: "Upper bound for removing the network on exit",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file on exit",
		},
	}
}

// providerFlag is registered on the app and on every command that takes
// a provider, so the option is accepted before and after the command name.
func providerFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "provider",
		Aliases: []string{"p"},
		Usage:   fmt.Sprintf("Override provider to use (%s)", strings.Join(domain.AvailableProviders, ", ")),
		Value:   value,
	}
}

// providerOption returns the provider given on the command line and
// whether it was given at all. The command's own flag wins, then a
// provider written after the positional arguments, then the global flag.
func providerOption(c *cli.Context) (string, bool) {
	if c.IsSet("provider") {
		return c.String("provider"), true
	}
	if p, ok := trailingProvider(c.Args().Slice()); ok {
		return p, true
	}
	for _, ctx := range c.Lineage()[1:] {
		if ctx.IsSet("provider") {
			return ctx.String("provider"), true
		}
	}
	return domain.DefaultProvider, false
}

// positional returns the arguments before any trailing provider flag.
func positional(c *cli.Context) []string {
	args := c.Args().Slice()
	for i, a := range args {
		if isProviderFlag(a) {
			return args[:i]
		}
	}
	return args
}

func trailingProvider(args []string) (string, bool) {
	for i, a := range args {
		if !isProviderFlag(a) {
			continue
		}
		if _, v, ok := strings.Cut(a, "="); ok {
			return v, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
		return "", true
	}
	return "", false
}

func isProviderFlag(a string) bool {
	name, _, _ := strings.Cut(a, "=")
	return name == "-p" || name == "--provider" || name == "-provider"
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
