// Package shop stocks the floor shop from the item catalog and
// resolves purchases during the cash-out phase.
package shop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hollowdelve/hollowdelve/internal/game/entity"
)

// DefaultCatalog returns the built-in shop catalog with base (floor 1)
// prices.
func DefaultCatalog() []entity.ShopItem {
	return []entity.ShopItem{
		{Name: "Health Potion", Cost: 30, Effect: entity.Effect{Kind: entity.EffectHeal, Amount: 50}},
		{Name: "Damage Boost", Cost: 75, Effect: entity.Effect{Kind: entity.EffectDamage, Amount: 5}},
		{Name: "Armor Piece", Cost: 100, Effect: entity.Effect{Kind: entity.EffectArmor, Amount: 5}},
		{Name: "Speed Boots", Cost: 120, Effect: entity.Effect{Kind: entity.EffectSpeed, Scalar: 0.5}},
		{Name: "Lucky Charm", Cost: 150, Effect: entity.Effect{Kind: entity.EffectCritChance, Scalar: 0.1}},
		{Name: "Remove Curse", Cost: 200, Effect: entity.Effect{Kind: entity.EffectRemoveCurse}},
		{Name: "Mystery Box", Cost: 50, Effect: entity.Effect{Kind: entity.EffectRandom}},
		{Name: "Extra Key", Cost: 80, Effect: entity.Effect{Kind: entity.EffectKeys, Amount: 1}},
	}
}

// catalogFile is the YAML shape of a shop catalog document.
type catalogFile struct {
	Items []entity.ShopItem `yaml:"items"`
}

// LoadCatalogFromBytes parses a shop catalog from raw YAML bytes.
func LoadCatalogFromBytes(data []byte) ([]entity.ShopItem, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("catalog: must contain at least one item")
	}
	for _, item := range f.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Items, nil
}

// LoadCatalog reads a shop catalog from a YAML file.
func LoadCatalog(path string) ([]entity.ShopItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	items, err := LoadCatalogFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return items, nil
}
