// Package docs registers the OpenAPI document served by the Swagger UI.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPI string

type document struct{}

func (document) ReadDoc() string {
	return openAPI
}

func init() {
	swag.Register(swag.Name, document{})
}
