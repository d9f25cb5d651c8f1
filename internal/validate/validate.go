// Package validate checks request bodies against embedded JSON schemas and
// reports failures as a *model.ValidationError.
package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shouta256/todo-next-spring/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://todo-next-spring.local/schemas/"

// Schema names, one per request body.
const (
	Auth         = "auth"
	FolderCreate = "folder_create"
	FolderRename = "folder_rename"
	TodoCreate   = "todo_create"
	TodoUpdate   = "todo_update"
)

// messages maps field and failed keyword to the message shown to clients.
var messages = map[string]map[string]string{
	"title": {
		"pattern":   "Task description must not be blank",
		"type":      "Task description must not be blank",
		"maxLength": "Task description must not exceed 255 characters",
	},
	"userId": {
		"type": "User ID is required",
	},
	"taskType": {
		"pattern": "Task type is required",
		"type":    "Task type is required",
	},
	"priority": {
		"pattern": "Priority is required",
		"type":    "Priority is required",
	},
	"startTime": {
		"pattern": "Start time is required",
		"type":    "Start time is required",
	},
	"username": {
		"pattern":   "Username must not be blank",
		"type":      "Username must not be blank",
		"maxLength": "Username must not exceed 50 characters",
	},
	"password": {
		"pattern":   "Password must not be blank",
		"type":      "Password must not be blank",
		"minLength": "Password must be at least 6 characters",
	},
	"name": {
		"pattern": "Folder name must not be blank",
		"type":    "Folder name must not be blank",
	},
}

// Validator holds the compiled request schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var names []string
	for _, entry := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		if err := compiler.AddResource(schemaBaseURL+entry.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", entry.Name(), err)
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(schemaBaseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// Validate checks req, marshalled to JSON, against the named schema.
func (v *Validator) Validate(name string, req interface{}) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal request: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	result := &model.ValidationError{}
	collectFieldErrors(result, ve)
	sort.SliceStable(result.Fields, func(i, j int) bool {
		if result.Fields[i].Field != result.Fields[j].Field {
			return result.Fields[i].Field < result.Fields[j].Field
		}
		return result.Fields[i].Message < result.Fields[j].Message
	})
	return result
}

func collectFieldErrors(result *model.ValidationError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		field := strings.TrimPrefix(strings.TrimPrefix(err.InstanceLocation, "#"), "/")
		keyword := path.Base(err.KeywordLocation)
		message := err.Message
		if custom, ok := messages[field][keyword]; ok {
			message = custom
		}
		result.Fields = append(result.Fields, model.FieldError{Field: field, Message: message})
		return
	}

	for _, cause := range err.Causes {
		collectFieldErrors(result, cause)
	}
}
