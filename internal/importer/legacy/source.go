package legacy

import (
	"fmt"
	"os"

	"github.com/firestone-manager/firestone/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Source implements importer.Source for a legacy dump file.
type Source struct{}

// NewSource constructs a Source.
func NewSource() *Source { return &Source{} }

// Load reads and converts the dump at path.
//
// Precondition: path must name a JSON object file.
// Postcondition: returns a non-nil Batch or a non-nil error.
func (s *Source) Load(path string) (*importer.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading legacy dump %s: %w", path, err)
	}
	entries, err := ParseDump(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	heroes, warnings := Convert(entries)
	return &importer.Batch{Heroes: heroes, Warnings: warnings}, nil
}
