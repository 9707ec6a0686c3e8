// Package session holds the handle to a running network and the registry
// that owns it for the lifetime of the process.
package session

import (
	"context"
	"io"
)

// Session is a running, provisioned test network.
type Session interface {
	// Namespace identifies the network on its provider.
	Namespace() string

	// Stop releases every resource held by the network.
	Stop(ctx context.Context) error

	// UploadLogs collects node logs before the network goes away.
	UploadLogs(ctx context.Context) error

	// ShowNetworkInfo writes a human-readable summary of the network.
	ShowNetworkInfo(w io.Writer)
}
