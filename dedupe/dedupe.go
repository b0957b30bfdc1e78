// Package dedupe disambiguates menu items that share a name.
//
// Some brands list the regular and decaffeinated version of a drink under
// the same name. Within each group of same-named items, the one with the
// lowest caffeine is renamed with DecafSuffix and the rest keep the base name.
package dedupe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/menuboard"
)

// DecafSuffix marks the decaffeinated member of a duplicate group.
const DecafSuffix = " (디카페인)"

// BaseName returns name with every DecafSuffix removed, so records that were
// already normalized group with their siblings again.
func BaseName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, DecafSuffix, ""))
}

// Result summarizes a normalization pass.
type Result struct {
	// Groups is the number of names shared by more than one record.
	Groups int
	// Tagged is the number of records carrying DecafSuffix after the pass.
	Tagged int
	// Modified is the number of records whose name changed.
	Modified int
}

// Normalize renames duplicate records in place. Records are grouped by
// BaseName; in each group of two or more, the record with the strictly
// lowest caffeine value (first one wins ties) gets DecafSuffix and the others
// get the bare base name. Caffeine values that cannot be parsed are logged
// and skipped; if no member parses, the first member is tagged. Groups of
// one are left untouched. Running Normalize twice is a no-op the second time.
func Normalize(records []*menuboard.MenuRecord, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var order []string
	groups := make(map[string][]int)
	for i, r := range records {
		if r == nil {
			continue
		}
		key := BaseName(r.Name)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var res Result
	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		res.Groups++

		selected, lowest := -1, 0
		for _, i := range members {
			raw, _ := records[i].Nutrition.Get(menuboard.NutrientCaffeine)
			caffeine, err := menuboard.ParseNutritionInt(raw)
			if err != nil {
				logger.Warn("skipping unparseable caffeine", "name", key, "index", i, "value", raw, "error", err)
				continue
			}
			if selected == -1 || caffeine < lowest {
				selected, lowest = i, caffeine
			}
		}
		if selected == -1 {
			selected = members[0]
		}

		for _, i := range members {
			name := key
			if i == selected {
				name += DecafSuffix
				res.Tagged++
			}
			if records[i].Name != name {
				records[i].Name = name
				res.Modified++
			}
		}

		logger.Debug("normalized duplicate group",
			"name", key,
			"members", len(members),
			"decaf_index", selected,
			"caffeine", lowest,
		)
	}

	return res
}

// Normalizer loads a brand's stored menu, normalizes it and saves it back
// when anything changed.
type Normalizer struct {
	Store  menuboard.MenuStore
	Logger *slog.Logger
}

// NewNormalizer creates a Normalizer over store.
func NewNormalizer(store menuboard.MenuStore, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Normalizer{Store: store, Logger: logger}
}

// Run normalizes brand's stored records. Returns ENOTFOUND if the brand has
// no stored menu. Nothing is written when no name changed.
func (n *Normalizer) Run(ctx context.Context, brand menuboard.Brand) (Result, error) {
	records, err := n.Store.Load(ctx, brand)
	if err != nil {
		if menuboard.ErrorCode(err) == menuboard.ENOTFOUND {
			return Result{}, menuboard.Errorf(menuboard.ENOTFOUND, "no %s menu to normalize: %s", brand, menuboard.ErrorMessage(err))
		}
		return Result{}, err
	}

	res := Normalize(records, n.Logger)
	n.Logger.Info("normalized menu",
		"brand", brand,
		"records", len(records),
		"groups", res.Groups,
		"tagged", res.Tagged,
		"modified", res.Modified,
	)
	if res.Modified == 0 {
		return res, nil
	}

	if err := n.Store.Save(ctx, brand, records); err != nil {
		return res, err
	}
	return res, nil
}
