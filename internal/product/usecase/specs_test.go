package usecase

import (
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func linked(key string, typ model.CharacteristicType, keySpec bool, order int) model.LinkedCharacteristic {
	return model.LinkedCharacteristic{
		CategoryCharacteristic: model.CategoryCharacteristic{ShowInKeySpecs: keySpec, OrderIndex: order},
		Key:                    key,
		Type:                   typ,
		NameRu:                 key + "_ru",
		NameEn:                 key + "_en",
	}
}

func TestValidateSpecsCoercesAndDropsEmpty(t *testing.T) {
	matrix := linked("matrix", model.CharacteristicSelect, false, 0)
	matrix.Options = model.CharacteristicOptions{{Value: "ips"}, {Value: "oled"}}
	links := []model.LinkedCharacteristic{
		linked("ram", model.CharacteristicNumber, true, 0),
		linked("backlit", model.CharacteristicBoolean, false, 1),
		matrix,
	}

	out, err := ValidateSpecs(links, model.Specs{
		"ram":     model.TextValue("16"),
		"backlit": model.TextValue("true"),
		"matrix":  model.TextValue("ips"),
		"color":   model.TextValue(""),
		"legacy":  model.NumberValue(3),
	})
	if err != nil {
		t.Fatalf("ValidateSpecs: %v", err)
	}
	want := model.Specs{
		"ram":     model.NumberValue(16),
		"backlit": model.BoolValue(true),
		"matrix":  model.OptionValue("ips"),
		"legacy":  model.TextValue("3"),
	}
	if len(out) != len(want) {
		t.Fatalf("out = %+v", out)
	}
	for k, v := range want {
		if out[k] != v {
			t.Errorf("%s = %+v, want %+v", k, out[k], v)
		}
	}
}

func TestValidateSpecsRejectsMismatches(t *testing.T) {
	matrix := linked("matrix", model.CharacteristicSelect, false, 0)
	matrix.Options = model.CharacteristicOptions{{Value: "ips"}}
	links := []model.LinkedCharacteristic{linked("ram", model.CharacteristicNumber, false, 0), matrix}

	_, err := ValidateSpecs(links, model.Specs{
		"ram":    model.TextValue("sixteen"),
		"matrix": model.TextValue("tn"),
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestValidateSpecsRejectsNonFiniteNumbers(t *testing.T) {
	links := []model.LinkedCharacteristic{linked("ram", model.CharacteristicNumber, false, 0)}
	for _, raw := range []string{"NaN", "+Inf", "-Inf", "infinity"} {
		out, err := ValidateSpecs(links, model.Specs{"ram": model.TextValue(raw)})
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", raw, err)
			if _, verr := out.Value(); verr != nil {
				t.Errorf("%s: accepted value cannot be stored: %v", raw, verr)
			}
		}
	}
}

func TestSplitSpecsKeySpecLimit(t *testing.T) {
	links := []model.LinkedCharacteristic{
		linked("d", model.CharacteristicText, true, 4),
		linked("a", model.CharacteristicText, true, 1),
		linked("c", model.CharacteristicText, true, 3),
		linked("b", model.CharacteristicText, true, 2),
		linked("e", model.CharacteristicText, false, 0),
	}
	full := model.Specs{
		"a": model.TextValue("1"), "b": model.TextValue("2"), "c": model.TextValue("3"),
		"d": model.TextValue("4"), "e": model.TextValue("5"),
	}

	tests := []struct {
		name  string
		specs model.Specs
		want  []string
	}{
		{"more than limit", full, []string{"a", "b", "c"}},
		{"fewer than limit", model.Specs{"d": model.TextValue("4"), "b": model.TextValue("2")}, []string{"b", "d"}},
		{"empty values skipped", model.Specs{"a": model.TextValue(" "), "c": model.TextValue("3")}, []string{"c"}},
		{"none", model.Specs{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keySpecs, _ := SplitSpecs(links, tt.specs, 3, locale.RU)
			if len(keySpecs) != len(tt.want) {
				t.Fatalf("key specs = %+v, want %v", keySpecs, tt.want)
			}
			for i, k := range tt.want {
				if keySpecs[i].Key != k {
					t.Errorf("key spec %d = %s, want %s", i, keySpecs[i].Key, k)
				}
			}
		})
	}
}

func TestSplitSpecsRestAndDisplay(t *testing.T) {
	matrix := linked("matrix", model.CharacteristicSelect, false, 2)
	matrix.Options = model.CharacteristicOptions{{Value: "ips", LabelRu: "IPS-матрица", LabelEn: "IPS panel"}}
	links := []model.LinkedCharacteristic{linked("ram", model.CharacteristicNumber, true, 1), matrix}

	keySpecs, rest := SplitSpecs(links, model.Specs{
		"ram":    model.NumberValue(16),
		"matrix": model.OptionValue("ips"),
		"zzz":    model.TextValue("orphan"),
	}, 3, locale.EN)

	if len(keySpecs) != 1 || keySpecs[0].Name != "ram_en" || keySpecs[0].Display != "16" {
		t.Errorf("key specs = %+v", keySpecs)
	}
	if len(rest) != 2 || rest[0].Display != "IPS panel" || rest[1].Key != "zzz" {
		t.Errorf("rest = %+v", rest)
	}
}
