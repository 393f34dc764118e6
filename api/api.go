// Package api holds the OpenAPI contract of the order service.
package api

import _ "embed"

// OpenAPI is the raw openapi.yaml document.
//
//go:embed openapi.yaml
var OpenAPI []byte
