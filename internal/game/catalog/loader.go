package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// File names expected in a catalog directory.
const (
	FileRarities        = "rarities.yaml"
	FileSpecializations = "specializations.yaml"
	FileCharacters      = "characters.yaml"
	FileGear            = "gear.yaml"
	FileJewels          = "jewels.yaml"
	FileSoulstones      = "soulstones.yaml"
	FileUpgrades        = "upgrades.yaml"
	FileWarMachines     = "warmachines.yaml"
)

var itemFiles = map[Category]string{
	CategoryGear:      FileGear,
	CategoryJewel:     FileJewels,
	CategorySoulstone: FileSoulstones,
}

type raritiesFile struct {
	Rarities []*Rarity `yaml:"rarities"`
}

type specializationsFile struct {
	Specializations []*Specialization `yaml:"specializations"`
}

type charactersFile struct {
	Characters []*Character `yaml:"characters"`
}

type itemsFile struct {
	Items []*ItemDef `yaml:"items"`
}

type upgradesFile struct {
	UpgradeEffects map[Category][]float64 `yaml:"upgrade_effects"`
}

type warMachinesFile struct {
	WarMachines []string `yaml:"war_machines"`
}

//go:embed data/*.yaml
var embeddedFS embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog bundled with the binary.
//
// Postcondition: Returns the same *Catalog on every call, or the load error.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedFS, "data")
		if err != nil {
			defaultErr = fmt.Errorf("opening embedded catalog: %w", err)
			return
		}
		defaultCatalog, defaultErr = LoadFS(sub)
	})
	return defaultCatalog, defaultErr
}

// LoadDir reads a catalog from the YAML files in dir.
//
// Precondition: dir must be a readable directory holding every catalog file.
// Postcondition: Returns a validated Catalog or a non-nil error.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a catalog from the YAML files at the root of fsys.
//
// Postcondition: Returns a validated Catalog or a non-nil error.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	t, err := ReadTables(fsys)
	if err != nil {
		return nil, err
	}
	return Build(t)
}

// ReadTables parses every catalog file in fsys without validating cross references.
func ReadTables(fsys fs.FS) (Tables, error) {
	var t Tables

	var rf raritiesFile
	if err := decodeFile(fsys, FileRarities, &rf); err != nil {
		return Tables{}, err
	}
	t.Rarities = rf.Rarities

	var sf specializationsFile
	if err := decodeFile(fsys, FileSpecializations, &sf); err != nil {
		return Tables{}, err
	}
	t.Specializations = sf.Specializations

	var cf charactersFile
	if err := decodeFile(fsys, FileCharacters, &cf); err != nil {
		return Tables{}, err
	}
	t.Characters = cf.Characters

	t.Items = make(map[Category][]*ItemDef, len(itemFiles))
	for _, cat := range Categories {
		var f itemsFile
		if err := decodeFile(fsys, itemFiles[cat], &f); err != nil {
			return Tables{}, err
		}
		for _, d := range f.Items {
			if d.Armor == 0 {
				d.Armor = d.Resistance
			}
			d.Category = cat
		}
		t.Items[cat] = f.Items
	}

	var uf upgradesFile
	if err := decodeFile(fsys, FileUpgrades, &uf); err != nil {
		return Tables{}, err
	}
	t.UpgradeEffects = uf.UpgradeEffects

	var wf warMachinesFile
	if err := decodeFile(fsys, FileWarMachines, &wf); err != nil {
		return Tables{}, err
	}
	t.WarMachines = wf.WarMachines

	return t, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("catalog file %s is missing", name)
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
