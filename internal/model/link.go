package model

import (
	"sort"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
)

// CategoryCharacteristic binds a characteristic to a category, unique per pair.
type CategoryCharacteristic struct {
	CategoryID       int64 `db:"category_id" json:"category_id"`
	CharacteristicID int64 `db:"characteristic_id" json:"characteristic_id"`
	IsRequired       bool  `db:"is_required" json:"is_required"`
	ShowInKeySpecs   bool  `db:"show_in_key_specs" json:"show_in_key_specs"`
	OrderIndex       int   `db:"order_index" json:"order_index"`
}

// SameMeta reports whether both links carry the same per-link metadata.
func (l CategoryCharacteristic) SameMeta(o CategoryCharacteristic) bool {
	return l.IsRequired == o.IsRequired &&
		l.ShowInKeySpecs == o.ShowInKeySpecs &&
		l.OrderIndex == o.OrderIndex
}

// LinkedCharacteristic is a link joined with the characteristic's display data.
type LinkedCharacteristic struct {
	CategoryCharacteristic
	Key     string                `db:"key" json:"key"`
	Type    CharacteristicType    `db:"type" json:"type"`
	Name    string                `db:"-" json:"name"`
	NameRu  string                `db:"name_ru" json:"name_ru"`
	NameUz  string                `db:"name_uz" json:"name_uz"`
	NameEn  string                `db:"name_en" json:"name_en"`
	Options CharacteristicOptions `db:"options" json:"options"`
}

func (l *LinkedCharacteristic) LocalizedName(lc locale.Locale) string {
	return locale.Pick(lc, l.NameRu, l.NameUz, l.NameEn)
}

// CategoryLinks is the characteristic schema of one category. Version must be
// echoed back on replace-all.
type CategoryLinks struct {
	CategoryID int64                  `json:"category_id"`
	Version    int                    `json:"version"`
	Items      []LinkedCharacteristic `json:"items"`
}

// LinkDiff is the set of writes that turns one link set into another.
type LinkDiff struct {
	Insert []CategoryCharacteristic
	Update []CategoryCharacteristic
	Delete []int64 // characteristic ids
}

func (d LinkDiff) Empty() bool {
	return len(d.Insert) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}

// DiffLinks compares the stored links of a category with the desired ones.
// Pairs are matched by characteristic id; the last entry wins when desired
// repeats an id. Output slices are sorted by characteristic id.
func DiffLinks(existing, desired []CategoryCharacteristic) LinkDiff {
	have := make(map[int64]CategoryCharacteristic, len(existing))
	for _, l := range existing {
		have[l.CharacteristicID] = l
	}
	want := make(map[int64]CategoryCharacteristic, len(desired))
	for _, l := range desired {
		want[l.CharacteristicID] = l
	}

	var d LinkDiff
	for id, w := range want {
		h, ok := have[id]
		switch {
		case !ok:
			d.Insert = append(d.Insert, w)
		case !h.SameMeta(w):
			d.Update = append(d.Update, w)
		}
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			d.Delete = append(d.Delete, id)
		}
	}

	byChar := func(s []CategoryCharacteristic) func(i, j int) bool {
		return func(i, j int) bool { return s[i].CharacteristicID < s[j].CharacteristicID }
	}
	sort.Slice(d.Insert, byChar(d.Insert))
	sort.Slice(d.Update, byChar(d.Update))
	sort.Slice(d.Delete, func(i, j int) bool { return d.Delete[i] < d.Delete[j] })
	return d
}
