package llm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds compiled schemas keyed by schemaKey. Two schemas
// that share a name but differ in definition compile separately.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema. A nil schema accepts
// anything; every failure is reported as *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid("empty reply for schema %q", schema.Name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return invalid("reply does not match %q: %w", schema.Name, verr)
		}
		return invalid("validate against %q: %w", schema.Name, err)
	}
	return nil
}

// schemaKey identifies a schema by name and definition content.
func schemaKey(schema *Schema) (string, []byte, error) {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return "", nil, fmt.Errorf("marshal definition: %w", err)
	}
	sum := sha256.Sum256(def)
	return schema.Name + "@" + hex.EncodeToString(sum[:8]), def, nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	key, def, err := schemaKey(schema)
	if err != nil {
		return nil, err
	}
	if cached, ok := compiledSchemas.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants the definition in its own decoded form.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "mem://schemas/" + key + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := compiledSchemas.LoadOrStore(key, compiled)
	return actual.(*jsonschema.Schema), nil
}
