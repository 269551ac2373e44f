// Package openapi embeds the OpenAPI document for the Pack Rat API.
// The HTTP server serves it at /openapi.yaml; the request and response types
// in internal/handler/api follow its schemas.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
