package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Rule is one row of the outfit rule dataset. Attribute fields hold
// comma-separated pools of values (e.g. "Kurta, Shalwar Kameez").
type Rule struct {
	Gender             string `json:"gender"`
	EventName          string `json:"event_name"`
	OutfitType         string `json:"outfittype"`
	Time               string `json:"time"`
	WeatherRange       string `json:"weather_range"`
	DressType          string `json:"dress_type"`
	DressColor         string `json:"dress_color"`
	DressFabricTexture string `json:"dress_fabric_texture"`
	ShoesType          string `json:"shoes_type"`
	ShoesColor         string `json:"shoes_color"`
	UpperLayer         string `json:"upper_layer"`
	UpperLayerColor    string `json:"upper_layer_color"`
}

// Dataset is the loaded rule dataset the engine recommends from
type Dataset struct {
	Rules []Rule `json:"rules"`
}

// Empty reports whether the dataset has no rules
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rules) == 0
}

// LoadDataset loads the rule dataset from a JSON file. A missing file is
// not fatal: the engine runs with an empty dataset and reports that in its
// status, matching how the service should degrade when the dataset has not
// been synced yet.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️  Dataset file %s not found, starting with empty dataset", path)
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	dataset, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	log.Printf("✓ Dataset loaded successfully with %d rules", len(dataset.Rules))
	return dataset, nil
}

// ParseDataset decodes rule data in either of the shapes the file
// appears in: a bare JSON array of rules (the shape dataset exports
// ship in) or an object with a rules field.
func ParseDataset(data []byte) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rules []Rule
		if err := json.Unmarshal(trimmed, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse rule array: %w", err)
		}
		return &Dataset{Rules: rules}, nil
	}

	var dataset Dataset
	if err := json.Unmarshal(trimmed, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &dataset, nil
}

// splitAndStrip splits a comma-separated pool into trimmed, non-empty values
func splitAndStrip(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
