package entities_test

import (
	"fmt"
	"testing"

	"pdfsqueeze/internal/domain/entities"
)

func TestNewCompressionConfig(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		expectedLevel int
	}{
		{"Normal level", 50, 50},
		{"Too low level", 5, 10},
		{"Too high level", 95, 90},
		{"Minimum level", 10, 10},
		{"Maximum level", 90, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := entities.NewCompressionConfig(tt.level)
			if config.Level != tt.expectedLevel {
				t.Errorf("Expected level %d, got %d", tt.expectedLevel, config.Level)
			}
			if config.CompatibilityLevel != entities.DefaultCompatibilityLevel {
				t.Errorf("Expected compatibility level %q, got %q", entities.DefaultCompatibilityLevel, config.CompatibilityLevel)
			}
			if config.GhostscriptPreset != entities.PresetForLevel(tt.expectedLevel) {
				t.Errorf("Expected preset %q, got %q", entities.PresetForLevel(tt.expectedLevel), config.GhostscriptPreset)
			}
		})
	}
}

func TestCompressionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *entities.CompressionConfig
		wantErr bool
	}{
		{
			name: "Valid config",
			config: &entities.CompressionConfig{
				Level:        50,
				ImageQuality: 75,
			},
			wantErr: false,
		},
		{
			name: "Valid config with preset",
			config: &entities.CompressionConfig{
				Level:             50,
				ImageQuality:      75,
				GhostscriptPreset: entities.PresetEbook,
			},
			wantErr: false,
		},
		{
			name: "Invalid compression level - too low",
			config: &entities.CompressionConfig{
				Level:        5,
				ImageQuality: 75,
			},
			wantErr: true,
		},
		{
			name: "Invalid compression level - too high",
			config: &entities.CompressionConfig{
				Level:        95,
				ImageQuality: 75,
			},
			wantErr: true,
		},
		{
			name: "Invalid image quality - too low",
			config: &entities.CompressionConfig{
				Level:        50,
				ImageQuality: 5,
			},
			wantErr: true,
		},
		{
			name: "Invalid image quality - too high",
			config: &entities.CompressionConfig{
				Level:        50,
				ImageQuality: 105,
			},
			wantErr: true,
		},
		{
			name: "Unknown preset",
			config: &entities.CompressionConfig{
				Level:             50,
				ImageQuality:      75,
				GhostscriptPreset: "default",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompressionConfigLevels(t *testing.T) {
	tests := []struct {
		level                int
		expectedImageQuality int
		expectedMetadata     bool
		expectedAnnotations  bool
		expectedAttachments  bool
	}{
		{15, 90, false, false, false}, // Слабое сжатие
		{30, 75, true, false, false},  // Умеренное сжатие
		{50, 60, true, true, false},   // Среднее сжатие
		{70, 40, true, true, true},    // Высокое сжатие
		{85, 25, true, true, true},    // Максимальное сжатие
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Level %d", tt.level), func(t *testing.T) {
			config := entities.NewCompressionConfig(tt.level)

			if config.ImageQuality != tt.expectedImageQuality {
				t.Errorf("Expected ImageQuality %d, got %d", tt.expectedImageQuality, config.ImageQuality)
			}

			if config.RemoveMetadata != tt.expectedMetadata {
				t.Errorf("Expected RemoveMetadata %v, got %v", tt.expectedMetadata, config.RemoveMetadata)
			}

			if config.RemoveAnnotations != tt.expectedAnnotations {
				t.Errorf("Expected RemoveAnnotations %v, got %v", tt.expectedAnnotations, config.RemoveAnnotations)
			}

			if config.RemoveAttachments != tt.expectedAttachments {
				t.Errorf("Expected RemoveAttachments %v, got %v", tt.expectedAttachments, config.RemoveAttachments)
			}
		})
	}
}

func TestPresetForLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected string
	}{
		{10, entities.PresetPrepress},
		{20, entities.PresetPrepress},
		{21, entities.PresetPrinter},
		{40, entities.PresetPrinter},
		{41, entities.PresetEbook},
		{60, entities.PresetEbook},
		{61, entities.PresetScreen},
		{85, entities.PresetScreen},
		{90, entities.PresetScreen},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Level %d", tt.level), func(t *testing.T) {
			if got := entities.PresetForLevel(tt.level); got != tt.expected {
				t.Errorf("PresetForLevel(%d) = %q, want %q", tt.level, got, tt.expected)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Plain name", "screen", entities.PresetScreen, false},
		{"Leading slash", "/ebook", entities.PresetEbook, false},
		{"Mixed case", "Printer", entities.PresetPrinter, false},
		{"Slash and case", "/PREPRESS", entities.PresetPrepress, false},
		{"Surrounding spaces", "  screen  ", entities.PresetScreen, false},
		{"Empty means default", "", entities.PresetScreen, false},
		{"Unknown preset", "default", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entities.ParsePreset(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreset(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
