package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadPackFile loads a single pack file.
func LoadPackFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	p, err := ParsePack(data)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.FilePath = path
	return p, nil
}

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Invalid files are skipped. Returns packs sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsPackFile(path) {
			return nil
		}

		p, err := LoadPackFile(path)
		if err != nil {
			return nil
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})

	return packs, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}

	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}

	return Pack{}, fmt.Errorf("pack not found: %s", id)
}

// IsPackFile checks if a path has a supported pack extension.
func IsPackFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
