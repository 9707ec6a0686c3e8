package command

import (
	"github.com/urfave/cli/v2"
)

// TestCommand returns the test command.
func TestCommand() *cli.Command {
	return &cli.Command{
		Name:         "test",
		Usage:        "Run tests on the network defined",
		ArgsUsage:    "<testFile>",
		Flags:        []cli.Flag{providerFlag("")},
		Action:       testAction,
		OnUsageError: usageError,
	}
}

func testAction(c *cli.Context) error {
	rt := RuntimeFrom(c)
	provider, _ := providerOption(c)

	inv, err := rt.Resolver.ResolveTest(arg(positional(c), 0), provider)
	if err != nil {
		return err
	}
	return rt.Dispatcher.Test(c.Context, inv)
}
