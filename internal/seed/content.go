package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/louisbranch/monsterdex/internal/services/game/domain/achievement"
	"github.com/louisbranch/monsterdex/internal/services/game/domain/creature"
	"gopkg.in/yaml.v3"
)

// DefaultContentPath names the embedded base content file.
const DefaultContentPath = "content/monsterdex.yaml"

//go:embed content/*.yaml
var contentFS embed.FS

// Content is a full content document.
type Content struct {
	Types        []string            `yaml:"types"`
	TypeChart    []typeChartRecord   `yaml:"type_chart"`
	Species      []speciesRecord     `yaml:"species"`
	Achievements []achievementRecord `yaml:"achievements"`
}

type typeChartRecord struct {
	Attack     string  `yaml:"attack"`
	Defend     string  `yaml:"defend"`
	Multiplier float64 `yaml:"multiplier"`
}

type statsRecord struct {
	HP      int `yaml:"hp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Speed   int `yaml:"speed"`
}

type speciesRecord struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Rarity    string      `yaml:"rarity"`
	BaseLevel int         `yaml:"base_level"`
	BaseStats statsRecord `yaml:"base_stats"`
	Abilities []string    `yaml:"abilities"`
}

type achievementRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Condition   string `yaml:"condition"`
}

// Default returns the embedded base content.
func Default() (Content, error) {
	return Load(contentFS, DefaultContentPath)
}

// Load reads and validates a content document from fsys.
func Load(fsys fs.FS, path string) (Content, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Content{}, fmt.Errorf("read content %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML content document.
func Parse(data []byte) (Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return Content{}, fmt.Errorf("decode content: %w", err)
	}
	if err := content.Validate(); err != nil {
		return Content{}, err
	}
	return content, nil
}

var knownRarities = map[creature.Rarity]bool{
	creature.RarityCommon:    true,
	creature.RarityUncommon:  true,
	creature.RarityRare:      true,
	creature.RarityLegendary: true,
}

// Validate checks references between sections and required fields.
func (c Content) Validate() error {
	types := make(map[string]bool, len(c.Types))
	for _, name := range c.Types {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("type name is required")
		}
		if types[key] {
			return fmt.Errorf("duplicate type %q", name)
		}
		types[key] = true
	}
	knownType := func(name string) bool {
		return types[strings.ToLower(strings.TrimSpace(name))]
	}

	for _, row := range c.TypeChart {
		if !knownType(row.Attack) || !knownType(row.Defend) {
			return fmt.Errorf("type chart row %s/%s references an unknown type", row.Attack, row.Defend)
		}
		if row.Multiplier < 0 {
			return fmt.Errorf("type chart row %s/%s has a negative multiplier", row.Attack, row.Defend)
		}
	}

	speciesIDs := make(map[string]bool, len(c.Species))
	for _, item := range c.Species {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("species id is required")
		}
		if speciesIDs[item.ID] {
			return fmt.Errorf("duplicate species id %q", item.ID)
		}
		speciesIDs[item.ID] = true
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("species %s name is required", item.ID)
		}
		if !knownType(item.Type) {
			return fmt.Errorf("species %s has unknown type %q", item.ID, item.Type)
		}
		if !knownRarities[creature.Rarity(item.Rarity)] {
			return fmt.Errorf("species %s has unknown rarity %q", item.ID, item.Rarity)
		}
		s := item.BaseStats
		if s.HP < 0 || s.Attack < 0 || s.Defense < 0 || s.Speed < 0 {
			return fmt.Errorf("species %s has negative base stats", item.ID)
		}
	}

	conditions := make(map[string]bool, len(c.Achievements))
	for _, item := range c.Achievements {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("achievement id is required")
		}
		if !slices.Contains(achievement.Conditions(), item.Condition) {
			return fmt.Errorf("achievement %s has unknown condition %q", item.ID, item.Condition)
		}
		if conditions[item.Condition] {
			return fmt.Errorf("duplicate achievement condition %q", item.Condition)
		}
		conditions[item.Condition] = true
	}
	return nil
}

func (r speciesRecord) toSpecies() creature.Species {
	return creature.Species{
		ID:     r.ID,
		Name:   r.Name,
		Type:   r.Type,
		Rarity: creature.Rarity(r.Rarity),
		Base: creature.StatBlock{
			HP:      r.BaseStats.HP,
			Attack:  r.BaseStats.Attack,
			Defense: r.BaseStats.Defense,
			Speed:   r.BaseStats.Speed,
		},
		BaseLevel: r.BaseLevel,
		Abilities: append([]string{}, r.Abilities...),
	}
}

func (r achievementRecord) toDefinition() achievement.Definition {
	return achievement.Definition{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		ConditionCode: r.Condition,
	}
}
