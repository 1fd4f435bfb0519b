package locale

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message ids returned to API clients.
const (
	MsgInvalidRequest = "invalid_request"
	MsgNotFound       = "not_found"
	MsgConflict       = "conflict"
	MsgStaleVersion   = "stale_version"
	MsgSaveFailed     = "save_failed"
	MsgInternal       = "internal_error"
)

var messages = map[language.Tag][]*i18n.Message{
	language.Russian: {
		{ID: MsgInvalidRequest, Other: "Некорректный запрос"},
		{ID: MsgNotFound, Other: "Запись не найдена"},
		{ID: MsgConflict, Other: "Запись с таким ключом уже существует"},
		{ID: MsgStaleVersion, Other: "Данные были изменены другим пользователем, обновите страницу"},
		{ID: MsgSaveFailed, Other: "Не удалось сохранить изменения"},
		{ID: MsgInternal, Other: "Внутренняя ошибка сервера"},
	},
	language.Uzbek: {
		{ID: MsgInvalidRequest, Other: "Noto‘g‘ri so‘rov"},
		{ID: MsgNotFound, Other: "Yozuv topilmadi"},
		{ID: MsgConflict, Other: "Bunday kalitli yozuv allaqachon mavjud"},
		{ID: MsgStaleVersion, Other: "Ma’lumotlar boshqa foydalanuvchi tomonidan o‘zgartirilgan, sahifani yangilang"},
		{ID: MsgSaveFailed, Other: "O‘zgarishlarni saqlab bo‘lmadi"},
		{ID: MsgInternal, Other: "Serverning ichki xatosi"},
	},
	language.English: {
		{ID: MsgInvalidRequest, Other: "Invalid request"},
		{ID: MsgNotFound, Other: "Record not found"},
		{ID: MsgConflict, Other: "A record with this key already exists"},
		{ID: MsgStaleVersion, Other: "The data was changed by another user, please reload"},
		{ID: MsgSaveFailed, Other: "Failed to save changes"},
		{ID: MsgInternal, Other: "Internal server error"},
	},
}

// Translator renders API messages in a resolved locale.
type Translator struct {
	localizers map[Locale]*i18n.Localizer
}

func NewTranslator() *Translator {
	bundle := i18n.NewBundle(language.Russian)
	for tag, msgs := range messages {
		if err := bundle.AddMessages(tag, msgs...); err != nil {
			// messages are static, a failure here is a programming error
			panic(err)
		}
	}

	t := &Translator{localizers: make(map[Locale]*i18n.Localizer, len(Supported))}
	for _, l := range Supported {
		t.localizers[l] = i18n.NewLocalizer(bundle, string(l))
	}
	return t
}

// T returns the message for id in l. Unknown ids are returned verbatim.
func (t *Translator) T(l Locale, id string) string {
	loc, ok := t.localizers[l]
	if !ok {
		loc = t.localizers[Default]
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}
