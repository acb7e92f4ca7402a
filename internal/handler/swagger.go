package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/wishflow/wishflow-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string         `json:"openapi"`
	Info       map[string]any `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// transformRefs rewrites #/definitions/ refs to #/components/schemas/ and
// converts non-body parameters to the 3.0 shape
func transformRefs(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return transformParameter(v)
			}
		}

		result := make(map[string]any, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = transformRefs(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

// transformParameter moves the type fields of a 2.0 parameter into a schema
func transformParameter(param map[string]any) map[string]any {
	result := make(map[string]any)
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}
	if param["in"] == "body" {
		result["schema"] = transformRefs(param["schema"])
		return result
	}

	schema := make(map[string]any)
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = transformRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

// liftRequestBodies replaces "in: body" parameters with a JSON requestBody
// and wraps 2.0 response schemas in a content map
func liftRequestBodies(paths map[string]any) {
	for _, item := range paths {
		operations, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range operations {
			operation, ok := op.(map[string]any)
			if !ok {
				continue
			}

			if params, ok := operation["parameters"].([]any); ok {
				kept := params[:0]
				for _, p := range params {
					param, _ := p.(map[string]any)
					if param != nil && param["in"] == "body" {
						operation["requestBody"] = map[string]any{
							"required": param["required"],
							"content": map[string]any{
								echo.MIMEApplicationJSON: map[string]any{"schema": param["schema"]},
							},
						}
						continue
					}
					kept = append(kept, p)
				}
				if len(kept) == 0 {
					delete(operation, "parameters")
				} else {
					operation["parameters"] = kept
				}
			}

			if responses, ok := operation["responses"].(map[string]any); ok {
				for _, r := range responses {
					response, ok := r.(map[string]any)
					if !ok {
						continue
					}
					if schema, ok := response["schema"]; ok {
						response["content"] = map[string]any{
							echo.MIMEApplicationJSON: map[string]any{"schema": schema},
						}
						delete(response, "schema")
					}
				}
			}
		}
	}
}

// OpenAPI3Handler serves the generated swagger doc converted to OpenAPI 3.0
func OpenAPI3Handler(servers []Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return NewInternalError(c, "Failed to read API documentation")
		}

		var swagger2 map[string]any
		if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
			return NewInternalError(c, "Failed to parse API documentation")
		}

		info, _ := swagger2["info"].(map[string]any)
		paths, _ := swagger2["paths"].(map[string]any)
		transformed, _ := transformRefs(paths).(map[string]any)
		liftRequestBodies(transformed)

		components := make(map[string]any)
		if secDefs, ok := swagger2["securityDefinitions"].(map[string]any); ok {
			components["securitySchemes"] = secDefs
		}
		if definitions, ok := swagger2["definitions"].(map[string]any); ok {
			components["schemas"] = transformRefs(definitions)
		}

		return c.JSON(http.StatusOK, OpenAPI3Spec{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    servers,
			Paths:      transformed,
			Components: components,
		})
	}
}
