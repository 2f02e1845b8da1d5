package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePlan = `
    ......
    .#..o.
    .#@...
    ######`

func TestParseTrimsAndCompacts(t *testing.T) {
	p, err := Parse(samplePlan)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Rows != 4 || p.Columns != 6 {
		t.Errorf("expected 4x6, got %dx%d", p.Rows, p.Columns)
	}
	if string(p.Grid[2]) != ".#@..." {
		t.Errorf("row 2 = %q", string(p.Grid[2]))
	}
	if p.Source != samplePlan {
		t.Error("Source should keep the original text")
	}
}

func TestParseFiltersInteriorSpaces(t *testing.T) {
	p, err := Parse("# . @\n# # #")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Columns != 3 || string(p.Grid[0]) != "#.@" {
		t.Errorf("interior spaces not filtered: %q", string(p.Grid[0]))
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n\t  \n"} {
		if _, err := Parse(text); !errors.Is(err, ErrEmptyPlan) {
			t.Errorf("Parse(%q) error = %v, expected ErrEmptyPlan", text, err)
		}
	}
}

func TestPlanCells(t *testing.T) {
	p, err := Parse(samplePlan)
	if err != nil {
		t.Fatal(err)
	}

	if n := p.Count(GlyphBlock); n != 8 {
		t.Errorf("expected 8 blocks, got %d", n)
	}

	cells := p.Cells()
	var player *Cell
	for i := range cells {
		if cells[i].Glyph == GlyphPlayer {
			player = &cells[i]
		}
	}
	if player == nil || player.X != 2 || player.Y != 2 {
		t.Errorf("player cell = %+v, expected (2, 2)", player)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		plan  string
		codes []string
	}{
		{"valid", samplePlan, nil},
		{"no spawn", "..o\n###", []string{"NO_SPAWN"}},
		{"two spawns", "....\n@.@o\n####", []string{"MULTIPLE_SPAWNS"}},
		{"no coins", "...\n@..\n###", []string{"NO_COINS"}},
		{"ragged", "....\n@.o.\n###", []string{"RAGGED_ROW"}},
		{"unknown glyph", "...\n@xo\n###", []string{"UNKNOWN_GLYPH"}},
		{"spawn in top row", ".@...o\n......\n######", []string{"SPAWN_BLOCKED"}},
		{"spawn under block", ".#..o\n.@...\n#####", []string{"SPAWN_BLOCKED"}},
		{"spawn on ledge", "..o\n.@.\n.#.\n...", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.plan)
			if err != nil {
				t.Fatal(err)
			}
			err = Validate(p)
			if len(tc.codes) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			for _, code := range tc.codes {
				if !strings.Contains(err.Error(), "["+code+"]") {
					t.Errorf("error %q missing code %s", err, code)
				}
			}
		})
	}
}

func TestBuiltinPackIsValid(t *testing.T) {
	p := Builtin()
	if len(p.Levels) < 3 {
		t.Fatalf("expected at least 3 builtin levels, got %d", len(p.Levels))
	}
	for id, err := range p.Validate() {
		t.Errorf("builtin level %s invalid: %v", id, err)
	}
}

func TestParsePackDefaults(t *testing.T) {
	data := []byte(`
id: tiny
levels:
  - plan: |
      @.o
      ###
  - id: boss
    name: Boss
    plan: "@o\n##"
`)
	p, err := ParsePack(data)
	if err != nil {
		t.Fatalf("ParsePack failed: %v", err)
	}
	if p.Levels[0].ID != "01" || p.Levels[0].Name != "Level 01" {
		t.Errorf("defaults not applied: %+v", p.Levels[0])
	}
	if p.Levels[1].ID != "boss" || p.Levels[1].Name != "Boss" {
		t.Errorf("explicit fields overwritten: %+v", p.Levels[1])
	}
}

func TestParsePackErrors(t *testing.T) {
	if _, err := ParsePack([]byte("id: empty\nlevels: []\n")); err == nil {
		t.Error("expected error for pack without levels")
	}
	if _, err := ParsePack([]byte("levels: [\n")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func writePack(t *testing.T, dir, name, id string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := "id: " + id + "\nlevels:\n  - plan: \"@.o\\n###\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "b.yaml", "beta")
	writePack(t, dir, "a.yml", "alpha")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("levels: ["), 0o600); err != nil {
		t.Fatal(err)
	}

	packs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(packs) != 2 {
		t.Fatalf("expected 2 packs, got %d", len(packs))
	}
	if packs[0].ID != "alpha" || packs[1].ID != "beta" {
		t.Errorf("packs not sorted: %s, %s", packs[0].ID, packs[1].ID)
	}

	p, err := NewLoader(dir).LoadByID("beta")
	if err != nil || p.FilePath != filepath.Join(dir, "b.yaml") {
		t.Errorf("LoadByID(beta) = %+v, %v", p, err)
	}
	if _, err := NewLoader(dir).LoadByID("gamma"); err == nil {
		t.Error("expected error for unknown pack")
	}
}

func TestLoadPackFileDefaultsID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  - plan: \"@o\\n##\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPackFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "mine" {
		t.Errorf("ID = %q, expected file stem", p.ID)
	}
}

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "pack.yaml", "live")
	other := filepath.Join(dir, "other.yaml")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer w.Close()

	// Changes to sibling files are filtered out
	if err := os.WriteFile(other, []byte("id: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	writePack(t, dir, "pack.yaml", "live2")

	select {
	case name := <-w.Events:
		if abs, _ := filepath.Abs(path); name != path && name != abs {
			t.Errorf("event for %q, expected %q", name, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatchFileSettlesBurst(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "pack.yaml", "v0")

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile failed: %v", err)
	}
	defer w.Close()

	// One save written in pieces, each within the debounce window
	for _, id := range []string{"v1", "v2", "v3"} {
		writePack(t, dir, "pack.yaml", id)
		time.Sleep(debounceWindow / 5)
	}

	select {
	case <-w.Events:
		p, err := LoadPackFile(path)
		if err != nil || p.ID != "v3" {
			t.Errorf("reload on event got %q, %v; expected the final write", p.ID, err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event received")
	}

	select {
	case name := <-w.Events:
		t.Errorf("burst reported twice: %q", name)
	case <-time.After(3 * debounceWindow):
	}
}
