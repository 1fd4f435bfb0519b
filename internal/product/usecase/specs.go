package usecase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// ValidateSpecs coerces every value against the characteristic linked under
// its key. Blank values are dropped. Keys with no linked characteristic are
// kept as text. All failures are reported together.
func ValidateSpecs(links []model.LinkedCharacteristic, specs model.Specs) (model.Specs, error) {
	byKey := make(map[string]*model.LinkedCharacteristic, len(links))
	for i := range links {
		byKey[links[i].Key] = &links[i]
	}

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(model.Specs, len(specs))
	var errs []error
	for _, key := range keys {
		v := specs[key]
		if v.IsEmpty() {
			continue
		}
		link, ok := byKey[key]
		if !ok {
			out[key] = model.TextValue(v.String())
			continue
		}
		coerced, err := link.Type.Coerce(v, link.Options)
		if err != nil {
			errs = append(errs, fmt.Errorf("spec %q: %w", key, err))
			continue
		}
		out[key] = coerced
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// SplitSpecs renders the linked characteristics that have a value, in link
// order. The first limit entries flagged show_in_key_specs are key specs and
// everything else is the full list. Values under keys the category does not
// link are appended to the full list by key.
func SplitSpecs(links []model.LinkedCharacteristic, specs model.Specs, limit int, l locale.Locale) (keySpecs, rest []model.SpecEntry) {
	ordered := make([]model.LinkedCharacteristic, len(links))
	copy(ordered, links)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].OrderIndex < ordered[j].OrderIndex })

	keySpecs = []model.SpecEntry{}
	rest = []model.SpecEntry{}
	linked := make(map[string]bool, len(ordered))
	for i := range ordered {
		link := &ordered[i]
		linked[link.Key] = true
		v, ok := specs[link.Key]
		if !ok || v.IsEmpty() {
			continue
		}
		entry := model.SpecEntry{
			Key:        link.Key,
			Name:       link.LocalizedName(l),
			Value:      v,
			Display:    display(link, v, l),
			OrderIndex: link.OrderIndex,
		}
		if link.ShowInKeySpecs && len(keySpecs) < limit {
			keySpecs = append(keySpecs, entry)
			continue
		}
		rest = append(rest, entry)
	}

	var extra []string
	for key, v := range specs {
		if !linked[key] && !v.IsEmpty() {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		v := specs[key]
		rest = append(rest, model.SpecEntry{Key: key, Name: key, Value: v, Display: v.String()})
	}
	return keySpecs, rest
}

func display(link *model.LinkedCharacteristic, v model.SpecValue, l locale.Locale) string {
	if link.Type == model.CharacteristicSelect {
		if opt, ok := link.Options.Find(v.String()); ok {
			return opt.Label(l)
		}
	}
	return v.String()
}
