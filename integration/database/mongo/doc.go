// Package mongo connects to MongoDB with retries and tracks whether the
// connection is currently usable.
//
// New pings the primary before returning and retries on failure, which covers
// Atlas cold starts and short network interruptions during startup.
//
// The connection state is tracked the way the health endpoint reports it:
//
//	tracker := mongo.NewTracker()
//	client, err := mongo.New(ctx, cfg, tracker)
//	if err != nil {
//		log.Fatal("Failed to connect to MongoDB:", err)
//	}
//	defer mongo.Close(ctx, client, tracker)
//
//	tracker.Ready()          // true while a writable server is known
//	tracker.State().String() // "connected", "disconnected", ...
//
// The tracker is driven by the driver's topology description events. It is
// connected while the deployment has a primary (or a standalone, mongos or
// load balancer), so a lagging secondary does not flip it and a reachable
// secondary does not hide a missing primary. No application command is
// issued to keep it current.
//
// # Configuration
//
// Configuration is handled through environment variables via the Config struct.
// The default values are optimized for MongoDB Atlas deployments:
//
//	MONGODB_URL                 (required by New; the app runs without it)
//	MONGODB_DATABASE            (default: fixora)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Health Checking
//
// The package provides a health check function for Kubernetes probes or HTTP endpoints:
//
//	healthCheck := mongo.Healthcheck(client)
//
//	// Use in HTTP handler
//	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
//		if err := healthCheck(r.Context()); err != nil {
//			http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
//			return
//		}
//		w.WriteHeader(http.StatusOK)
//	})
//
// # Error Handling
//
// The package defines domain-specific errors:
//
//	ErrMissingURL             - MONGODB_URL is empty
//	ErrFailedToConnectToMongo - Returned when all retry attempts are exhausted
//	ErrHealthcheckFailed      - Returned when health check ping fails
//
// The New function includes connection verification via Ping to ensure the connection
// is actually usable before returning.
package mongo
