package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nhath/ezformula/internal/api"
)

// loadSections reads staged sections from a JSON file. Both a bare array of
// sections and a form object with a "sections" key are accepted.
func loadSections(path string) ([]api.Section, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sections []api.Section
	if err := json.Unmarshal(raw, &sections); err == nil {
		return sections, nil
	}
	var form api.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("%s: expected a section array or a form object: %w", path, err)
	}
	return form.Sections, nil
}

// loadData reads sample bindings from a JSON object file
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// readToken reads the token without echo when r is a terminal
func readToken(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, "API token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return validToken(string(b))
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return validToken(line)
}

func validToken(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty token")
	}
	return s, nil
}
