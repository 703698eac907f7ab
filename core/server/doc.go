// Package server runs an http.Handler with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return srv.Run(ctx, engine) })
//	return g.Wait()
//
// Configuration:
//
//	HOST                     (default: all interfaces)
//	PORT                     (default: 5000)
//	SERVER_READ_TIMEOUT      (default: 15s)
//	SERVER_WRITE_TIMEOUT     (default: 15s)
//	SERVER_IDLE_TIMEOUT      (default: 60s)
//	SERVER_SHUTDOWN_TIMEOUT  (default: 30s)
//	SERVER_MAX_HEADER_BYTES  (default: 1 MB)
//
// Run returns nil when the context is canceled and the in-flight requests
// finish within the shutdown timeout.
package server
