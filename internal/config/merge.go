package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyService = "service"
	keyLogging = "logging"
	keyOutput  = "output"
	keyPeople  = "people"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyService: true,
	keyLogging: true,
	keyOutput:  true,
	keyPeople:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. A key present in the overlay replaces the whole
// section; absent keys are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one section into a fresh value so the overlay
// replaces the section instead of merging into it.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyService:
		var v ServiceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Service = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyPeople:
		var v []Person
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.People = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
