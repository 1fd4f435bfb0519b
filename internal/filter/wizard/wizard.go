// Package wizard models filter creation as a three step state machine:
// Source, UI type and Configuration. Nothing is persisted until Submit
// returns a complete Draft.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/util"
)

type State int

const (
	StateSource State = iota
	StateUIType
	StateConfiguration
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSource:
		return "source"
	case StateUIType:
		return "ui_type"
	case StateConfiguration:
		return "configuration"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrInvalidTransition is returned when an action does not apply to the
// current step.
var ErrInvalidTransition = fmt.Errorf("%w: invalid wizard transition", model.ErrValidation)

// Draft accumulates the choices made across steps.
type Draft struct {
	SubcategoryID    int64                  `json:"subcategory_id"`
	SourceType       model.FilterSourceType `json:"source_type"`
	CharacteristicID *int64                 `json:"characteristic_id"`
	Key              string                 `json:"key,omitempty"`
	UIType           model.FilterUIType     `json:"type"`
	LabelRu          string                 `json:"label_ru"`
	LabelUz          string                 `json:"label_uz"`
	LabelEn          string                 `json:"label_en"`
	MinValue         *float64               `json:"min_value"`
	MaxValue         *float64               `json:"max_value"`
	IsMultiselect    bool                   `json:"is_multiselect"`
	OrderIndex       int                    `json:"order_index"`
}

// Definition converts a submitted draft into a row to insert.
func (d Draft) Definition() *model.FilterDefinition {
	f := &model.FilterDefinition{
		SubcategoryID:    d.SubcategoryID,
		CharacteristicID: d.CharacteristicID,
		SourceType:       d.SourceType,
		UIType:           d.UIType,
		LabelRu:          d.LabelRu,
		LabelUz:          d.LabelUz,
		LabelEn:          d.LabelEn,
		MinValue:         d.MinValue,
		MaxValue:         d.MaxValue,
		IsMultiselect:    d.IsMultiselect,
		OrderIndex:       d.OrderIndex,
	}
	if d.SourceType == model.FilterSourceCustom {
		key := d.Key
		f.Key = &key
	}
	return f
}

// Config is what the configuration step collects. Blank labels keep the
// pre-filled ones.
type Config struct {
	LabelRu       string
	LabelUz       string
	LabelEn       string
	MinValue      *float64
	MaxValue      *float64
	IsMultiselect bool
	OrderIndex    int
}

type Wizard struct {
	state State
	draft Draft
}

func New(subcategoryID int64) *Wizard {
	return &Wizard{draft: Draft{SubcategoryID: subcategoryID}}
}

func (w *Wizard) State() State { return w.state }

func (w *Wizard) Draft() Draft { return w.draft }

// ChooseCharacteristic selects a characteristic source, suggests a UI type
// from its type and pre-fills labels from its names.
func (w *Wizard) ChooseCharacteristic(c *model.Characteristic) error {
	if err := w.expect(StateSource); err != nil {
		return err
	}
	if c == nil || c.ID <= 0 {
		return fmt.Errorf("%w: characteristic is required", model.ErrValidation)
	}
	id := c.ID
	w.draft.SourceType = model.FilterSourceCharacteristic
	w.draft.CharacteristicID = &id
	w.draft.Key = ""
	w.draft.UIType = model.SuggestUIType(c.Type)
	w.draft.LabelRu = c.NameRu
	w.draft.LabelUz = c.NameUz
	w.draft.LabelEn = c.NameEn
	return nil
}

func (w *Wizard) ChooseCustom(key string) error {
	if err := w.expect(StateSource); err != nil {
		return err
	}
	w.draft.SourceType = model.FilterSourceCustom
	w.draft.CharacteristicID = nil
	w.draft.Key = strings.TrimSpace(key)
	return nil
}

// Next advances one step if the current step is complete.
func (w *Wizard) Next() error {
	switch w.state {
	case StateSource:
		if err := w.sourceComplete(); err != nil {
			return err
		}
		if w.draft.UIType == "" {
			w.draft.UIType = model.FilterUISelect
		}
		w.state = StateUIType
	case StateUIType:
		if !w.draft.UIType.Valid() {
			return fmt.Errorf("%w: unknown filter type %q", model.ErrValidation, w.draft.UIType)
		}
		w.state = StateConfiguration
	default:
		return fmt.Errorf("%w: next from %s", ErrInvalidTransition, w.state)
	}
	return nil
}

// Back returns to the previous step keeping every choice made so far.
func (w *Wizard) Back() error {
	switch w.state {
	case StateUIType:
		w.state = StateSource
	case StateConfiguration:
		w.state = StateUIType
	default:
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.state)
	}
	return nil
}

func (w *Wizard) SetUIType(t model.FilterUIType) error {
	if err := w.expect(StateUIType); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: unknown filter type %q", model.ErrValidation, t)
	}
	w.draft.UIType = t
	return nil
}

func (w *Wizard) Configure(cfg Config) error {
	if err := w.expect(StateConfiguration); err != nil {
		return err
	}
	if err := ValidateSettings(w.draft.UIType, cfg.MinValue, cfg.MaxValue); err != nil {
		return err
	}

	if cfg.LabelRu != "" {
		w.draft.LabelRu = cfg.LabelRu
	}
	if cfg.LabelUz != "" {
		w.draft.LabelUz = cfg.LabelUz
	}
	if cfg.LabelEn != "" {
		w.draft.LabelEn = cfg.LabelEn
	}
	w.draft.MinValue, w.draft.MaxValue = nil, nil
	if w.draft.UIType == model.FilterUIRange {
		w.draft.MinValue, w.draft.MaxValue = cfg.MinValue, cfg.MaxValue
	}
	w.draft.IsMultiselect = w.draft.UIType == model.FilterUISelect && cfg.IsMultiselect
	w.draft.OrderIndex = cfg.OrderIndex
	return nil
}

// Submit finishes the wizard and returns the draft to persist.
func (w *Wizard) Submit() (Draft, error) {
	if err := w.expect(StateConfiguration); err != nil {
		return Draft{}, err
	}
	if err := w.sourceComplete(); err != nil {
		return Draft{}, err
	}
	if strings.TrimSpace(w.draft.LabelRu) == "" {
		return Draft{}, fmt.Errorf("%w: label_ru is required", model.ErrValidation)
	}
	w.state = StateDone
	return w.draft, nil
}

// ValidateSettings checks the type specific settings of a filter.
func ValidateSettings(t model.FilterUIType, lo, hi *float64) error {
	if t == model.FilterUIRange && lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: min_value %v is greater than max_value %v", model.ErrValidation, *lo, *hi)
	}
	return nil
}

func (w *Wizard) sourceComplete() error {
	switch w.draft.SourceType {
	case model.FilterSourceCharacteristic:
		if w.draft.CharacteristicID == nil {
			return fmt.Errorf("%w: choose a characteristic", model.ErrValidation)
		}
	case model.FilterSourceCustom:
		if w.draft.Key == "" {
			return fmt.Errorf("%w: custom filter needs a key", model.ErrValidation)
		}
		if util.KeyFromName(w.draft.Key) != w.draft.Key {
			return fmt.Errorf("%w: key %q may only contain a-z, 0-9 and _", model.ErrValidation, w.draft.Key)
		}
	default:
		return errors.Join(model.ErrValidation, errors.New("choose a filter source"))
	}
	return nil
}

func (w *Wizard) expect(s State) error {
	if w.state != s {
		return fmt.Errorf("%w: expected step %s, at %s", ErrInvalidTransition, s, w.state)
	}
	return nil
}
