package i18n

// Translator retrieves localized messages for Issue codes. data provides
// optional metadata to embed in the message (for example, "min" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "too_small":
			return "値が小さすぎます"
		case "too_big":
			return "値が大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_format":
			return "フォーマットが不正です"
		case "not_multiple":
			return "倍数ではありません"
		case "not_unique":
			return "要素が重複しています"
		case "bad_schema":
			return "スキーマが不正です"
		case "parse_error":
			return "解析エラー"
		case "unsupported_type":
			return "サポートされていない値の表現です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "too_small":
			return "value too small"
		case "too_big":
			return "value too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "pattern mismatch"
		case "invalid_enum":
			return "value not permitted"
		case "invalid_format":
			return "invalid format"
		case "not_multiple":
			return "not a multiple"
		case "not_unique":
			return "duplicate elements"
		case "bad_schema":
			return "invalid schema"
		case "parse_error":
			return "parse error"
		case "unsupported_type":
			return "unsupported value representation"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
