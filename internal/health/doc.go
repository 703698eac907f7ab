// Package health serves the service health endpoints.
//
//	GET /api/health        {status, uptime, timestamp, database, environment, version}
//	GET /api/health/live   "ALIVE"
//	GET /api/health/ready  "READY" or 503 when a dependency check fails
//	GET /api/health/ping   204, no body
//
// /api/health answers 200 with database "connected" only when the database
// connection is ready; in any other state it answers 503 with "disconnected".
// Uptime is seconds since process start and timestamp is Unix milliseconds.
//
// Dependency checks follow the func(context.Context) error signature:
//
//	health.Register(router, tracker, cfg, log, mongo.Healthcheck(client))
package health
