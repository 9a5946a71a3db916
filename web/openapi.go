package web

import _ "embed"

// OpenAPIYAML is the API contract embedded at build time. The server
// converts it to JSON once and serves it at /api/openapi.json.
//
//go:embed openapi.yaml
var OpenAPIYAML []byte
