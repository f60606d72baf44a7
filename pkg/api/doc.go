// Package api serves the LGI codec and the batch translator over HTTP.
//
// Routes:
//
//	POST /v1/encode     {"source": "graph6", "input": "A_", "canonical": true} -> {"lgi": "AA"}
//	POST /v1/decode     {"lgi": "AA"} -> {"nodes": 2, "edges": [[0, 1]]}
//	POST /v1/translate  {"source": "graph6", "inputs": [...], "canonical": true}
//	GET  /healthz
//
// "canonical" defaults to true when omitted; pass false for randomized
// output, optionally with "seed" on /v1/translate.
//
// Failures are returned as {"code": ..., "message": ...} with a status
// derived from the error code: malformed or inconsistent inputs give 422,
// invalid requests 400, timeouts 504 and everything else 500.
package api
