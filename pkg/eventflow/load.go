package eventflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// descriptorFile is the on-disk layout of a declaration file.
type descriptorFile struct {
	Handlers []Descriptor `yaml:"handlers" json:"handlers"`
}

// LoadDescriptors reads descriptors from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
//
// The file holds a top-level "handlers" list:
//
//	handlers:
//	  - owner: EventsController.createUser
//	    emit: user.created
//	  - owner: EventsController.onUserCreated
//	    emit: [email.sent]
//	    listen: [user.created]
func LoadDescriptors(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return ParseDescriptorsYAML(data)
	case ".json":
		return ParseDescriptorsJSON(data)
	default:
		return nil, fmt.Errorf("unsupported descriptor file extension: %s", ext)
	}
}

// ParseDescriptorsYAML parses YAML data into descriptors.
func ParseDescriptorsYAML(data []byte) ([]Descriptor, error) {
	var f descriptorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f.Handlers, nil
}

// ParseDescriptorsJSON parses JSON data into descriptors.
func ParseDescriptorsJSON(data []byte) ([]Descriptor, error) {
	var f descriptorFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return f.Handlers, nil
}
