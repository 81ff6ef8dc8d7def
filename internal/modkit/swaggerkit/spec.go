package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	perr "codemix/internal/platform/errors"
	"codemix/internal/services/api/docs"
)

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// BasePath is where the versioned API is mounted
const BasePath = "/api/v1"

// envelopeSchema mirrors pnet.Envelope for error responses
var envelopeSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope returned by every route",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// Prepare parses the generated document and fills in what swag cannot
// express: an OAS 3.0 version, the server base path, the error envelope
// and default 400 and 500 responses on every operation.
func Prepare(doc []byte) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal(doc, &spec); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "parse swagger document")
	}

	// the UI renders 3.0 only; swagger 2 and 3.1 documents are relabelled
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": BasePath}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorEnvelope"]; !ok {
		schemas["ErrorEnvelope"] = envelopeSchema
	}

	defaults := map[string]any{
		"400": errorResponse("Bad Request", 400, perr.ErrorCodeValidation, "text is a required field"),
		"500": errorResponse("Internal Server Error", 500, perr.ErrorCodePanic, "internal error"),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for status, resp := range defaults {
				if _, ok := responses[status]; !ok {
					responses[status] = resp
				}
			}
		}
	}
	return spec, nil
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorResponse(desc string, status int, code perr.ErrorCode, msg string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorEnvelope"},
				"example": map[string]any{
					"status_code": status,
					"status":      desc,
					"code":        code,
					"error":       msg,
				},
			},
		},
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := Prepare([]byte(docReader()))
		if err != nil {
			http.Error(w, "swagger document unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
