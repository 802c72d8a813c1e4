package genshindev

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/teyvat-tools/genshinbot/internal/talents"
)

// CrownOfInsight is the crown every character needs for the last talent level.
var CrownOfInsight = talents.Material{Name: "Crown of Insight", Rarity: 5}

type itemGroup struct {
	Characters []string           `json:"characters"`
	Items      []talents.Material `json:"items"`
}

type bossMaterial struct {
	Name       string   `json:"name"`
	Characters []string `json:"characters"`
}

// TalentMaterials returns the talent book, weekly boss drop, common ascension
// material and crown used by character. ErrCharacterNotFound is returned when
// any of the first three is missing.
func (c *Client) TalentMaterials(ctx context.Context, character string) (talents.Materials, error) {
	var (
		books  map[string]itemGroup
		bosses map[string]bossMaterial
		common map[string]itemGroup
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.makeAPIRequest(ctx, "/materials/talent-book", &books)
	})
	g.Go(func() error {
		return c.makeAPIRequest(ctx, "/materials/talent-boss", &bosses)
	})
	g.Go(func() error {
		return c.makeAPIRequest(ctx, "/materials/common-ascension", &common)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	materials := talents.Materials{}
	if items, ok := findItems(books, character); ok {
		materials[talents.TalentBook] = items
	}
	for _, boss := range sortedValues(bosses) {
		if slices.Contains(boss.Characters, character) {
			materials[talents.BossMaterial] = []talents.Material{{Name: boss.Name, Rarity: 5}}
			break
		}
	}
	if items, ok := findItems(common, character); ok {
		materials[talents.CommonAscensionMaterial] = items
	}

	for _, required := range []talents.Category{talents.TalentBook, talents.BossMaterial, talents.CommonAscensionMaterial} {
		if _, ok := materials[required]; !ok {
			return nil, fmt.Errorf("%w: %s has no %s", ErrCharacterNotFound, character, required)
		}
	}
	materials[talents.Crown] = []talents.Material{CrownOfInsight}

	return materials, nil
}

func findItems(groups map[string]itemGroup, character string) ([]talents.Material, bool) {
	for _, group := range sortedValues(groups) {
		if slices.Contains(group.Characters, character) {
			items := slices.Clone(group.Items)
			slices.SortStableFunc(items, func(a, b talents.Material) int {
				return a.Rarity - b.Rarity
			})
			return items, true
		}
	}
	return nil, false
}

// sortedValues iterates a map in key order so lookups are deterministic.
func sortedValues[V any](m map[string]V) []V {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}
