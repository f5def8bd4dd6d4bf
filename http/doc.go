// Package http provides the HTTP surface of the challenge database.
//
// Four routes are mounted under a configurable base path (default
// "/api/challenge"):
//
//	POST   {base}           create, digest in the JSON body
//	PUT    {base}/{itemId}  replace, digest in the JSON body
//	DELETE {base}/{itemId}  delete, digest in the JSON body
//	GET    {base}/{itemId}  read, digest in the "digest" query parameter
//
// # Authentication
//
// AuthMiddleware checks the supplied digest with a RequestVerifier for the
// route's operation. A request that fails verification gets a 401 with an
// empty body. The signed material is the base path and the method only, so
// a digest works for every item of its method.
//
// # Responses
//
// Every authorized request is answered with 200 and a Response body. Failure
// is signalled by "result": false and a "reason":
//
//	{"challengeId": 1, "result": true}
//	{"result": false, "reason": "No such challenge"}
//
// # Usage
//
//	verifier := challengedb.NewDigestVerifier(secret, "/api/challenge")
//	handler := http.NewHandler(&http.HandlerConfig{
//	    BasePath: "/api/challenge",
//	    Verifier: verifier,
//	}, service)
//	server := &nethttp.Server{Addr: ":5708", Handler: handler.Router()}
//
// Metrics are optional; pass NewMetrics(registry) and a MetricsPath to expose
// request counters.
package http
