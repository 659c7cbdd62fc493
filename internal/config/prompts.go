package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

// PromptEntry is a single named prompt of the catalogue.
type PromptEntry struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// PromptCatalog is the set of prompts the assistant works with.
type PromptCatalog struct {
	System   PromptEntry   `yaml:"system"`
	Greeting string        `yaml:"greeting"`
	Subject  PromptEntry   `yaml:"subject"`
	Extra    []PromptEntry `yaml:"extra"`
}

// All returns every prompt of the catalogue, system and subject prompts first.
func (c *PromptCatalog) All() []PromptEntry {
	entries := make([]PromptEntry, 0, len(c.Extra)+2)
	entries = append(entries, c.System, c.Subject)
	return append(entries, c.Extra...)
}

// LoadPromptCatalog reads the prompt catalogue from path, or the embedded default when path is empty.
func LoadPromptCatalog(path string) (*PromptCatalog, error) {
	data := defaultPromptsYAML
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompts file: %w", err)
		}
		data = raw
	}
	return ParsePromptCatalog(data)
}

// ParsePromptCatalog decodes and validates a YAML prompt catalogue.
func ParsePromptCatalog(data []byte) (*PromptCatalog, error) {
	var catalog PromptCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}

	catalog.Greeting = strings.TrimSpace(catalog.Greeting)
	if strings.TrimSpace(catalog.System.Content) == "" {
		return nil, errors.New("prompts: system prompt is required")
	}
	if strings.TrimSpace(catalog.Subject.Content) == "" {
		return nil, errors.New("prompts: subject prompt is required")
	}
	if catalog.Greeting == "" {
		return nil, errors.New("prompts: greeting is required")
	}

	seen := make(map[string]struct{})
	for _, entry := range catalog.All() {
		if entry.Key == "" {
			return nil, errors.New("prompts: every prompt needs a key")
		}
		if _, dup := seen[entry.Key]; dup {
			return nil, fmt.Errorf("prompts: duplicate key %q", entry.Key)
		}
		seen[entry.Key] = struct{}{}
	}

	return &catalog, nil
}
