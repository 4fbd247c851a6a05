package handlers

import "github.com/danielgtaylor/huma/v2"

// APIConfig returns the huma config for the service. Docs live under /api
// so short codes own the root namespace, and response bodies carry no
// $schema link.
func APIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.DocsPath = "/api/docs"
	config.OpenAPIPath = "/api/openapi"
	config.SchemasPath = "/api/schemas"
	config.CreateHooks = nil

	return config
}
