// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper translates a component's own lifecycle into suture's
context-aware Serve method and implements fmt.Stringer so the supervisor
can name it in logs.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server, or anything with ListenAndServe and Shutdown
  - Shuts down gracefully when the supervisor cancels the context
  - Registered in the api-layer supervisor

Refit Loop (RefitService):
  - Restores the last model snapshot on start, or fits
  - Subscribes to catalog events and refits after a debounce window
  - Rate limits event-driven refits with golang.org/x/time/rate
  - Runs a periodic dirty check as a safety net for lost events
  - Saves a snapshot after every successful fit
  - Registered in the model-layer supervisor

# Error Handling

Return values determine supervisor behavior:

	nil         -> service stopped cleanly, will not restart
	error       -> service crashed, supervisor will restart it
	ctx.Err()   -> shutdown requested, normal termination

A failed refit is logged and does not stop the RefitService; the previous
model keeps serving. Only a failed event subscription is returned as an
error.

# Usage

	tree, _ := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())

	refit := services.NewRefitService(rec, snapshots, bus, services.RefitServiceConfig{
	    FitOnStartup: true,
	    Debounce:     2 * time.Second,
	    MinInterval:  time.Second,
	    Interval:     10 * time.Minute,
	}, logger)
	tree.AddModelService(refit)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	handler.SetRefitter(refit)
*/
package services
