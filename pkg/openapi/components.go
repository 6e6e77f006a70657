package openapi

import "maps"

// NewComponents creates Components with the shared fault envelope schema
// and the error responses built from it.
func NewComponents() *Components {
	faultSchema := &Schema{
		Type:        "object",
		Description: "Uniform error envelope. status_code mirrors the HTTP response status.",
		Properties: map[string]*Schema{
			"exception":   {Type: "string", Description: "Short exception classifier", Example: "ResourceNotFound"},
			"message":     {Type: "string", Description: "Operator-facing message"},
			"status_code": {Type: "integer", Description: "HTTP status code"},
			"details":     {Type: "string", Description: "Underlying error text", Nullable: true},
		},
		Required: []string{"exception", "message", "status_code", "details"},
	}

	faultResponse := func(description string) *Response {
		return &Response{
			Description: description,
			Content: map[string]*MediaType{
				"application/json": {Schema: SchemaRef("Fault")},
			},
		}
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Fault": faultSchema,
		},
		Responses: map[string]*Response{
			"BadRequest":    faultResponse("Invalid request"),
			"NotFound":      faultResponse("Resource not found"),
			"Timeout":       faultResponse("Backend request timed out"),
			"TooLarge":      faultResponse("Request body exceeds the size limit"),
			"Unprocessable": faultResponse("Invoice XML could not be transformed"),
			"Internal":      faultResponse("Unexpected failure"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
