package importer

import "github.com/firestone-manager/firestone/internal/game/hero"

// Batch is the common intermediate result produced by every Source: heroes
// in the current record shape plus the non-fatal problems met while
// converting them.
type Batch struct {
	Heroes   []*hero.Hero
	Warnings []string
}

// Source loads hero data from a format-specific file.
//
// Precondition: path must name a readable file in the source's format.
// Postcondition: returns a non-nil Batch, or a non-nil error when the file
// cannot be read or parsed at all.
type Source interface {
	Load(path string) (*Batch, error)
}
