package main

import (
	"context"
	"errors"
)

type httpServer interface {
	Shutdown(ctx context.Context) error
}

type movementFlusher interface {
	Stop(ctx context.Context) error
}

// shutdown stops the server and then flushes pending stock movements. The
// flush runs even when the server fails to shut down cleanly.
func shutdown(ctx context.Context, srv httpServer, movements movementFlusher) error {
	srvErr := srv.Shutdown(ctx)
	return errors.Join(srvErr, movements.Stop(ctx))
}
