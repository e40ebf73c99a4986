package board

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Definition is a declarative board layout: named containers holding named
// cards, plus the drag behavior each container grants its cards.
type Definition struct {
	Name       string         `toml:"name"`
	Containers []ContainerDef `toml:"container"`
}

// ContainerDef describes one drop target and the drag options stamped onto
// the cards it starts with.
type ContainerDef struct {
	Name        string            `toml:"name"`
	Class       string            `toml:"class"`
	Direction   string            `toml:"direction"` // "vertical" or "horizontal"
	Sort        *bool             `toml:"sort"`
	Copy        bool              `toml:"copy"` // cards dragged out leave a copy behind
	Handle      string            `toml:"handle"`
	AnimationMs int               `toml:"animation_ms"`
	Nested      bool              `toml:"nested"` // rendered inside its own isolated scope
	Adopted     map[string]string `toml:"adopted"`
	Access      *AccessDef        `toml:"access"`
	Cards       []CardDef         `toml:"card"`
}

// AccessDef mirrors the container access policy: ordered allow/deny selector
// lists with a first-match order.
type AccessDef struct {
	Order string   `toml:"order"` // "allow-first" or "deny-first"
	Allow []string `toml:"allow"`
	Deny  []string `toml:"deny"`
}

// CardDef describes one draggable card.
type CardDef struct {
	Name  string `toml:"name"`
	Class string `toml:"class"`
	Title string `toml:"title"`
}

const defaultBoardTOML = `# Data-drag starter board.
# Add [[container]] blocks for panes and [[container.card]] blocks for cards.

name = "starter"

[[container]]
name = "palette"
class = "palette"
copy = true
sort = false

  [container.access]
  order = "deny-first"
  deny = ["*"]

  [[container.card]]
  name = "note"
  class = "widget"
  title = "Note"

  [[container.card]]
  name = "checklist"
  class = "widget"
  title = "Checklist"

[[container]]
name = "today"
class = "lane"

  [container.adopted]
  lane = "today"

  [container.access]
  order = "deny-first"
  allow = [".widget", ".task"]

  [[container.card]]
  name = "water-plants"
  class = "task"
  title = "Water the plants"

  [[container.card]]
  name = "file-taxes"
  class = "task"
  title = "File taxes"

[[container]]
name = "later"
class = "lane"
nested = true

  [container.adopted]
  lane = "later"

  [container.access]
  order = "deny-first"
  allow = [".widget", ".task"]
`

// LoadDefinition reads a board definition from path, creating the file with
// the starter board if it doesn't exist yet.
func LoadDefinition(path string) (Definition, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return Definition{}, fmt.Errorf("create board dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultBoardTOML), 0o644); wErr != nil {
			return Definition{}, fmt.Errorf("write default board: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read board: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition parses TOML bytes into a validated board definition.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse board: %w", err)
	}
	if def.Name == "" {
		def.Name = "board"
	}
	if len(def.Containers) == 0 {
		return Definition{}, fmt.Errorf("board %q: no containers defined", def.Name)
	}

	seenCont := map[string]bool{}
	seenCard := map[string]bool{}
	for i, c := range def.Containers {
		if c.Name == "" {
			return Definition{}, fmt.Errorf("container[%d]: name is required", i)
		}
		if seenCont[c.Name] {
			return Definition{}, fmt.Errorf("container %q: duplicate name", c.Name)
		}
		seenCont[c.Name] = true
		switch strings.ToLower(c.Direction) {
		case "", "vertical", "horizontal":
		default:
			return Definition{}, fmt.Errorf("container %q: direction must be vertical or horizontal", c.Name)
		}
		if c.AnimationMs < 0 {
			return Definition{}, fmt.Errorf("container %q: animation_ms must be non-negative", c.Name)
		}
		for j, card := range c.Cards {
			if card.Name == "" {
				return Definition{}, fmt.Errorf("container %q card[%d]: name is required", c.Name, j)
			}
			if seenCard[card.Name] {
				return Definition{}, fmt.Errorf("card %q: duplicate name", card.Name)
			}
			seenCard[card.Name] = true
		}
	}
	return def, nil
}

// Container looks up a container definition by name.
func (d Definition) Container(name string) *ContainerDef {
	for i := range d.Containers {
		if d.Containers[i].Name == name {
			return &d.Containers[i]
		}
	}
	return nil
}
