package wholesale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language selects the output key vocabulary.
type Language string

const (
	// LanguageEnglish produces snake_case English keys. It is the default.
	LanguageEnglish Language = "en"
	// LanguageChinese produces Traditional Chinese keys.
	LanguageChinese Language = "zh"
)

const languageCount = 2

var (
	englishBase, _ = language.English.Base()
	chineseBase, _ = language.Chinese.Base()
)

// ParseLanguage resolves a caller-supplied selector. Empty selects English;
// BCP 47 tags are reduced to their base language, so "en-GB" and
// "zh-Hant-HK" are accepted. Anything else is a ValidationError.
func ParseLanguage(value string) (Language, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return LanguageEnglish, nil
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", &ValidationError{Field: FieldLanguage, Value: value, Reason: "must be one of en, zh"}
	}
	base, _ := tag.Base()
	switch base {
	case englishBase:
		return LanguageEnglish, nil
	case chineseBase:
		return LanguageChinese, nil
	default:
		return "", &ValidationError{Field: FieldLanguage, Value: value, Reason: "must be one of en, zh"}
	}
}

// Valid reports whether l is one of the supported selectors.
func (l Language) Valid() bool {
	_, ok := l.index()
	return ok
}

func (l Language) index() (int, bool) {
	switch l {
	case LanguageEnglish:
		return 0, true
	case LanguageChinese:
		return 1, true
	default:
		return 0, false
	}
}
