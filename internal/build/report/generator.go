package report

import (
	"fmt"

	"github.com/rocm-build/amdify/internal/build/infra/filesystem"
	"gopkg.in/yaml.v3"
)

// Generator writes the YAML run report.
type Generator struct {
	writer filesystem.Writer
}

func NewGenerator(writer filesystem.Writer) *Generator {
	return &Generator{writer: writer}
}

func (g *Generator) Generate(path string, model Model) error {
	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal run report: %w", err)
	}

	if err := g.writer.WriteBytes(path, data); err != nil {
		return fmt.Errorf("could not write run report: %w", err)
	}

	return nil
}
