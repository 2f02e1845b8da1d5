package levels

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

const builtinPackFile = "builtin/classic.yaml"

// Source is one level of a pack: its plan text plus display metadata.
type Source struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Plan string `yaml:"plan"`
}

// Pack is an ordered list of levels played one after another.
type Pack struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Levels   []Source          `yaml:"levels"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	FilePath string            `yaml:"-"`
}

// ParsePack decodes a YAML level pack.
// Level IDs default to their 1-based position when omitted.
func ParsePack(data []byte) (Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(p.Levels) == 0 {
		return Pack{}, fmt.Errorf("pack %q has no levels", p.ID)
	}
	for i := range p.Levels {
		if p.Levels[i].ID == "" {
			p.Levels[i].ID = fmt.Sprintf("%02d", i+1)
		}
		if p.Levels[i].Name == "" {
			p.Levels[i].Name = "Level " + p.Levels[i].ID
		}
	}
	return p, nil
}

// Validate parses and validates every level in the pack.
// The returned map is keyed by level ID and only holds failing levels.
func (p Pack) Validate() map[string]error {
	problems := make(map[string]error)
	for _, src := range p.Levels {
		plan, err := Parse(src.Plan)
		if err != nil {
			problems[src.ID] = err
			continue
		}
		if err := Validate(plan); err != nil {
			problems[src.ID] = err
		}
	}
	return problems
}

// Builtin returns the pack compiled into the binary.
func Builtin() Pack {
	data, err := builtinFS.ReadFile(builtinPackFile)
	if err != nil {
		panic(fmt.Sprintf("levels: builtin pack missing: %v", err))
	}
	p, err := ParsePack(data)
	if err != nil {
		panic(fmt.Sprintf("levels: builtin pack invalid: %v", err))
	}
	p.FilePath = "builtin:" + builtinPackFile
	return p
}
