// internal/api/types.go
package api

import (
	"encoding/json"
	"sort"
)

// Module is one entry of the module list endpoint
type Module struct {
	ID    string `json:"_id"`
	Label string `json:"moduleLabel"`
	Icon  string `json:"moduleIcon"`
}

// Input is a single form input. Inputs of a subsection carry their own nested Inputs.
type Input struct {
	Name   string           `json:"name"`
	Label  string           `json:"label,omitempty"`
	Type   string           `json:"type,omitempty"`
	Inputs map[string]Input `json:"inputs,omitempty"`
}

// Section groups inputs of a form definition
type Section struct {
	Title       string           `json:"title,omitempty"`
	Inputs      map[string]Input `json:"inputs"`
	Subsections []Section        `json:"subsections,omitempty"`
}

// Form is a saved form definition of a module
type Form struct {
	Title    string    `json:"formTitle,omitempty"`
	Default  bool      `json:"default"`
	Sections []Section `json:"sections"`
}

// Suggestion is a raw snippet entry returned by the suggestion endpoint.
// Only one of the text fields is normally set.
type Suggestion struct {
	ExampleWithVariable string `json:"exampleWithVariable,omitempty"`
	Example             string `json:"example,omitempty"`
	Value               string `json:"value,omitempty"`
	Label               string `json:"label,omitempty"`
}

// Text returns the first non-empty insertion text in priority order
func (s Suggestion) Text() string {
	for _, v := range []string{s.ExampleWithVariable, s.Example, s.Value, s.Label} {
		if v != "" {
			return v
		}
	}
	return ""
}

// SyntaxResult is the answer of the syntax check endpoint
type SyntaxResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// FieldNames flattens every input name of the given sections, recursing into
// subsections and subsection-type inputs. Map keys stand in for missing names.
// Keys are visited in sorted order so the result is stable.
func FieldNames(sections []Section) []string {
	var names []string
	for _, s := range sections {
		names = appendInputs(names, s.Inputs)
		names = append(names, FieldNames(s.Subsections)...)
	}
	return names
}

func appendInputs(names []string, inputs map[string]Input) []string {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		in := inputs[k]
		if len(in.Inputs) > 0 {
			names = appendInputs(names, in.Inputs)
			continue
		}
		name := in.Name
		if name == "" {
			name = k
		}
		names = append(names, name)
	}
	return names
}

type syntaxRequest struct {
	Formula string         `json:"formula"`
	Data    map[string]any `json:"data"`
}

type suggestionRequest struct {
	Query   string            `json:"query"`
	Options suggestionOptions `json:"options"`
}

type suggestionOptions struct {
	Limit int `json:"limit"`
}

type suggestionResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type moduleResponse struct {
	FormData []Module `json:"formData"`
}

type formResponse struct {
	FormData []Form `json:"formData"`
}

type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}
