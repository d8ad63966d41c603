// Package config provides configuration loading for the survey server.
// Everything here is fixed at startup; nothing is runtime-mutable.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ckp1990/population-ecology-games/internal/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	// HTTPAddr is the listen address used when the binary is started
	// without explicit serve arguments.
	HTTPAddr string

	// DetectionRadius is the distance at which a detector registers a
	// participant; DetectionTolerance is the extra slack the server-side
	// re-validation grants so a trigger sent at the edge of the radius is
	// not rejected by transit lag.
	DetectionRadius    float64
	DetectionTolerance float64

	// Survey map dimensions; participants spawn at the center.
	MapWidth  float64
	MapHeight float64

	Detectors []models.Detector
}

type detectorLayout struct {
	Detectors []models.Detector `yaml:"detectors"`
}

// Load builds the process configuration from the embedded defaults, an
// optional .env file, and environment variable overrides.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		HTTPAddr:           "0.0.0.0:8090",
		DetectionRadius:    60,
		DetectionTolerance: 10,
		MapWidth:           800,
		MapHeight:          600,
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if err := overrideFloat("DETECTION_RADIUS", &cfg.DetectionRadius); err != nil {
		return nil, err
	}
	if err := overrideFloat("DETECTION_TOLERANCE", &cfg.DetectionTolerance); err != nil {
		return nil, err
	}
	if err := overrideFloat("MAP_WIDTH", &cfg.MapWidth); err != nil {
		return nil, err
	}
	if err := overrideFloat("MAP_HEIGHT", &cfg.MapHeight); err != nil {
		return nil, err
	}

	detectors, err := loadDetectors(os.Getenv("DETECTORS_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Detectors = detectors

	return cfg, nil
}

// SpawnX and SpawnY give the position new participants appear at.
func (c *Config) SpawnX() float64 { return c.MapWidth / 2 }
func (c *Config) SpawnY() float64 { return c.MapHeight / 2 }

// DetectorByID looks up a detector station. The set is immutable, so a
// linear scan over a handful of stations is fine.
func (c *Config) DetectorByID(id int) (models.Detector, bool) {
	for _, d := range c.Detectors {
		if d.ID == id {
			return d, true
		}
	}
	return models.Detector{}, false
}

func loadDetectors(path string) ([]models.Detector, error) {
	data := defaultsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read detector layout: %w", err)
		}
		data = b
	}

	var layout detectorLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse detector layout: %w", err)
	}
	if len(layout.Detectors) == 0 {
		return nil, fmt.Errorf("detector layout defines no stations")
	}

	seen := make(map[int]bool, len(layout.Detectors))
	for _, d := range layout.Detectors {
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate detector id %d in layout", d.ID)
		}
		seen[d.ID] = true
	}

	return layout.Detectors, nil
}

func overrideFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}
