package api

import (
	"github.com/faktura-io/faktura/internal/config"
	"github.com/faktura-io/faktura/pkg/openapi"
)

// buildSpec describes the invoice operations as an OpenAPI 3.1 document.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"QueryRequest": {
			Type:        "object",
			Description: "Document database query. The SQL must select the id column unaliased.",
			Properties: map[string]*openapi.Schema{
				"query": {
					Type:        "string",
					Description: "SQL query text",
					Example:     "SELECT c.id, c.NIP FROM c",
				},
				"parameters": {
					Type:        "array",
					Description: "Optional named query parameters",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"name":  {Type: "string", Example: "@nip"},
							"value": {Description: "Parameter value"},
						},
						Required: []string{"name", "value"},
					},
				},
			},
			Required: []string{"query"},
		},
		"QueryResult": {
			Type:        "object",
			Description: "Matched items keyed by their id field. An empty result is the string \"Query returned no items.\" instead.",
		},
	})

	spec.Paths["/invoices/query"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Query the invoice document database",
			Tags:        []string{"invoices"},
			RequestBody: openapi.RequestBodyJSON("QueryRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Matched items keyed by id", "QueryResult"),
				400: openapi.ResponseRef("BadRequest"),
				408: openapi.ResponseRef("Timeout"),
				413: openapi.ResponseRef("TooLarge"),
				500: openapi.ResponseRef("Internal"),
			},
		},
	}

	spec.Paths["/invoices/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Download an archived invoice as XML or PDF",
			Tags:    []string{"invoices"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("invoice_id", "string", "Archive identifier of the invoice", true),
				openapi.QueryParam("file_format", "string", "xml or pdf", true),
			},
			Responses: map[int]*openapi.Response{
				200: {Description: "Invoice content in the requested format"},
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				422: openapi.ResponseRef("Unprocessable"),
				500: openapi.ResponseRef("Internal"),
			},
		},
	}

	return spec
}
