package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"rewardsched/internal/core/version"
	"rewardsched/internal/platform/config"
)

//go:embed openapi.json
var openapiDoc []byte

const errorRef = "#/components/schemas/ErrorResponse"

// document is prepared once per process, DOCS_TITLE_SUFFIX is read at that point
// released builds replace info.version with their own
var document = sync.OnceValues(func() ([]byte, error) {
	suffix := config.New().Prefix("SCHED_API_").MayString("DOCS_TITLE_SUFFIX", "")
	ver := ""
	if bi := version.Info(); bi.Released() {
		ver = bi.Version
	}
	return prepare(openapiDoc, ver, suffix)
})

func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	doc, err := document()
	if err != nil {
		http.Error(w, "openapi document is invalid", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(doc)
}

// prepare stamps the build version and title suffix onto raw and fills in what every
// operation shares: the error envelope schema and default 400 and 500 replies
func prepare(raw []byte, ver, titleSuffix string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}

	// swagger UI renders 3.0 only
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	delete(spec, "swagger")
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": "/"}}
	}

	info := child(spec, "info")
	if ver != "" {
		info["version"] = ver
	}
	if title, _ := info["title"].(string); titleSuffix != "" {
		info["title"] = strings.TrimSpace(title + " " + titleSuffix)
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}

	defaults := map[string]any{
		"400": errorReply("Bad Request", 400, 2, "minGapHours must be at least 1", "minGapHours"),
		"500": errorReply("Internal Server Error", 500, 1, "panic recovered", ""),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, op := range ops {
			op, ok := op.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for code, reply := range defaults {
				if _, ok := responses[code]; !ok {
					responses[code] = reply
				}
			}
		}
	}
	return json.Marshal(spec)
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope, every failed request gets one",
	"required":    []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "description": "1 panic, 2 validation, 3 json, 4 unschedulable, 6 rate limited"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

func errorReply(desc string, status, code int, msg, field string) map[string]any {
	example := map[string]any{
		"status_code": status,
		"status":      desc,
		"code":        code,
		"error":       msg,
		"request_id":  "9f2c4e1a/abc-000001",
	}
	if field != "" {
		example["field"] = field
	}
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": errorRef},
				"example": example,
			},
		},
	}
}
