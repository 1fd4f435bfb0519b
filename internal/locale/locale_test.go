package locale

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		raw  string
		want Locale
	}{
		{"ru", RU},
		{"uz", UZ},
		{"en", EN},
		{"EN", EN},
		{"en-US", EN},
		{"ru-RU", RU},
		{"", RU},
		{"  ", RU},
		{"de", RU},
		{"not a tag!!", RU},
	}
	for _, tt := range tests {
		if got := Resolve(tt.raw); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestPickFallsBackToRussian(t *testing.T) {
	tests := []struct {
		l          Locale
		ru, uz, en string
		want       string
	}{
		{RU, "Ноутбуки", "Noutbuklar", "Laptops", "Ноутбуки"},
		{UZ, "Ноутбуки", "Noutbuklar", "Laptops", "Noutbuklar"},
		{EN, "Ноутбуки", "Noutbuklar", "Laptops", "Laptops"},
		{EN, "Ноутбуки", "Noutbuklar", "", "Ноутбуки"},
		{UZ, "Ноутбуки", "   ", "Laptops", "Ноутбуки"},
		{Locale("xx"), "Ноутбуки", "Noutbuklar", "Laptops", "Ноутбуки"},
	}
	for _, tt := range tests {
		if got := Pick(tt.l, tt.ru, tt.uz, tt.en); got != tt.want {
			t.Errorf("Pick(%q) = %q, want %q", tt.l, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, l := range Supported {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Locale("de").Valid() {
		t.Error("de should not be valid")
	}
}

func TestTranslator(t *testing.T) {
	tr := NewTranslator()
	if got := tr.T(EN, MsgSaveFailed); got != "Failed to save changes" {
		t.Errorf("en save_failed = %q", got)
	}
	if got := tr.T(RU, MsgNotFound); got != "Запись не найдена" {
		t.Errorf("ru not_found = %q", got)
	}
	if got := tr.T(Locale("xx"), MsgNotFound); got != "Запись не найдена" {
		t.Errorf("unknown locale should use default, got %q", got)
	}
	if got := tr.T(EN, "no_such_message"); got != "no_such_message" {
		t.Errorf("unknown id = %q", got)
	}
}
