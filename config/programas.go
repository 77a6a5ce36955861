package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProgramaConfig holds per-course constants that are maintained by the
// program committees, not derived from the curriculum tables.
type ProgramaConfig struct {
	// Nome is informative only.
	Nome string `yaml:"nome"`

	// SemestreMinimo is the earliest semester in which the course allows
	// supervised internships, regardless of curriculum progress.
	SemestreMinimo int `yaml:"semestre_minimo"`
}

type programasFile struct {
	Programas map[string]ProgramaConfig `yaml:"programas"`
}

// LoadProgramas reads the per-course parameters file. A missing file is not
// an error: courses without an entry fall back to curriculum-derived values.
func LoadProgramas(path string) (map[string]ProgramaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ProgramaConfig{}, nil
		}
		return nil, fmt.Errorf("read programas file: %w", err)
	}

	var file programasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse programas file: %w", err)
	}

	for curso, p := range file.Programas {
		if p.SemestreMinimo < 0 {
			return nil, fmt.Errorf("programa %s: semestre_minimo must be non-negative", curso)
		}
	}

	if file.Programas == nil {
		file.Programas = map[string]ProgramaConfig{}
	}
	return file.Programas, nil
}
