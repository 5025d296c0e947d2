// Package httpserver runs the billing HTTP API with graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives SIGINT
// or SIGTERM. Shutdown then waits up to the shutdown timeout for in-flight
// requests, which matters here because a subscribe request may be waiting on
// the payment gateway. Stop hooks run afterwards to close pools.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) { pool.Close() }),
//	)
//	err := srv.Run(ctx, router)
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes.
package httpserver
