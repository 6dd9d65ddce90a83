package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			return "必須フィールドです"
		case "invalid_type":
			return "値を型にキャストできません"
		case "enum":
			return "値が列挙に含まれていません"
		case "pattern":
			return "値がパターンに一致しません"
		case "minimum":
			return "値が最小値を下回っています"
		case "maximum":
			return "値が最大値を超えています"
		case "min_length":
			return "値が最小長より短いです"
		case "max_length":
			return "値が最大長より長いです"
		case "unknown_type":
			return "未知のフィールド型です"
		case "unknown_format":
			return "未知のフォーマットです"
		case "empty_field_name":
			return "フィールド名がありません"
		case "duplicate_field":
			return "フィールド名が重複しています"
		case "unsupported_constraint":
			return "この型では使えない制約です"
		case "invalid_pattern":
			return "パターンが不正です"
		case "invalid_bound":
			return "境界値をキャストできません"
		case "invalid_enum_member":
			return "列挙メンバーをキャストできません"
		case "invalid_length_bound":
			return "長さ制約が不正です"
		case "unknown_primary_key":
			return "主キーが未宣言のフィールドを指しています"
		case "invalid_descriptor":
			return "ディスクリプタが不正です"
		case "load_failed":
			return "ディスクリプタを読み込めません"
		}
	default: // "en"
		switch code {
		case "required":
			return "field is required"
		case "invalid_type":
			return "value cannot be cast to the field type"
		case "enum":
			return "value not in enum"
		case "pattern":
			return "value does not match pattern"
		case "minimum":
			return "value is below minimum"
		case "maximum":
			return "value is above maximum"
		case "min_length":
			return "value is below minimum length"
		case "max_length":
			return "value is above maximum length"
		case "unknown_type":
			return "unknown field type"
		case "unknown_format":
			return "unknown format"
		case "empty_field_name":
			return "field name is missing"
		case "duplicate_field":
			return "duplicate field name"
		case "unsupported_constraint":
			return "constraint is not supported by the field type"
		case "invalid_pattern":
			return "invalid pattern"
		case "invalid_bound":
			return "bound cannot be cast"
		case "invalid_enum_member":
			return "enum member cannot be cast"
		case "invalid_length_bound":
			return "invalid length bound"
		case "unknown_primary_key":
			return "primary key names an undeclared field"
		case "invalid_descriptor":
			return "invalid descriptor"
		case "load_failed":
			return "descriptor source cannot be loaded"
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
