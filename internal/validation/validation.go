// Package validation checks incoming JSON payloads against embedded JSON
// Schemas before any store call. Schema violations surface as a single
// constraint message suitable for a 400 response.
package validation

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	SkillCreate   = mustLoad("schemas/skill_create.json")
	SkillUpdate   = mustLoad("schemas/skill_update.json")
	ContactSubmit = mustLoad("schemas/contact.json")
)

func mustLoad(name string) *jsonschema.Schema {
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("validation: read schema %s: %v", name, err))
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic(fmt.Sprintf("validation: parse schema %s: %v", name, err))
	}
	return rs
}

// Validate runs body through rs and returns the first violation, or an
// "invalid json" error when the body is not parseable at all.
func Validate(ctx context.Context, rs *jsonschema.Schema, body []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("invalid json body")
	}
	if len(keyErrs) > 0 {
		ke := keyErrs[0]
		if ke.PropertyPath == "" || ke.PropertyPath == "/" {
			return fmt.Errorf("%s", ke.Message)
		}
		return fmt.Errorf("%s: %s", ke.PropertyPath, ke.Message)
	}
	return nil
}
