// Package api serves the conversion pipeline over HTTP.
//
// # Endpoints
//
// Every POST endpoint takes the raw storyboard or xib XML as its request
// body. Generation options are query parameters.
//
//	GET  /healthz           liveness and build version
//	GET  /v1/stats          pipeline, cache and sink counters
//	POST /v1/convert        generated units (?mode= &child_content= &placeholder= &segue_kinds= &refresh=)
//	POST /v1/inspect        mapped components per screen (?xml=true)
//	POST /v1/graph          navigation graph (?format=json|dot|svg &detailed=true)
//
// # Errors
//
// Failures are JSON objects with the error code and message:
//
//	{"code": "PARSE_FAILED", "message": "parse descriptor"}
//
// The status code follows the error code: invalid input is 400, an
// unparsable descriptor or one with nothing to convert is 422.
//
// # Usage
//
//	srv := api.New(runner, counters, logger, api.Options{Timeout: 30 * time.Second})
//	http.ListenAndServe(":8080", srv.Handler())
//
// The `storyswift serve` command wires this up from the [server] config
// section.
package api
