package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/salesdojo/salesdojo/internal/models"
)

// scenarioFile is the on-disk format consumed by `salesdojo scenario import`.
type scenarioFile struct {
	Scenarios []*models.Scenario `yaml:"scenarios"`
}

// LoadFile reads scenario definitions from a YAML file and validates them.
func LoadFile(path string) ([]*models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}

	for i, sc := range f.Scenarios {
		if sc.ID == "" || sc.Title == "" || sc.ProspectName == "" || sc.ProspectRole == "" {
			return nil, fmt.Errorf("scenario %d: id, title, prospect_name, and prospect_role are required", i+1)
		}
		if sc.InitialMood == "" {
			sc.InitialMood = models.MoodNeutral
		}
		if sc.Difficulty == "" {
			sc.Difficulty = models.DifficultyMedium
		}
	}

	return f.Scenarios, nil
}
