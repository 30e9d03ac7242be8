// Package app wires the feedback reporter's HTTP service together: configuration,
// logging, OpenTelemetry, the session store, both pipeline services and the
// chi router.
//
// # Initialization Flow
//
//  1. Load configuration from environment and YAML file
//  2. Initialize logging and observability
//  3. Create the session store and pipeline services
//  4. Set up middleware and HTTP handlers
//  5. Configure the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run serves until SIGINT, SIGTERM or cancellation of its context, then
// drains in-flight requests and flushes telemetry. It never calls os.Exit.
package app
