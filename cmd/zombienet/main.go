package main

import (
	"context"
	"os"

	"github.com/yndnr/zombienet-go/internal/cli/command"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/infra/shutdown"
	"github.com/yndnr/zombienet-go/internal/telemetry/metric"
)

func main() {
	registry := session.NewRegistry()
	metrics := metric.NewRegistry()

	guardian := shutdown.NewGuardian(registry, shutdown.WithMetrics(metrics))
	defer guardian.Recover()

	guardian.Install(shutdown.NewSignalSource())

	rt := command.NewRuntime(guardian, registry, metrics)
	err := command.App(rt).RunContext(context.Background(), os.Args)
	command.HandleError(rt, err)

	guardian.Exit()
}
