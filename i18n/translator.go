package i18n

import "sync/atomic"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "syntax_error":
			msg = "JSON の構文エラーです"
		case "type_mismatch":
			msg = "型が不正です"
		case "not_an_integer":
			msg = "非負の整数ではありません"
		case "cardinality_mismatch":
			msg = "要素数が不正です"
		case "invalid_version_format":
			msg = "バージョン形式が不正です"
		case "duplicate_key":
			msg = "キーが重複しています"
		case "limit_exceeded":
			msg = "制限を超えました"
		case "insufficient_padding":
			msg = "入力のパディングが不足しています"
		}
	default: // "en"
		switch code {
		case "syntax_error":
			msg = "malformed JSON"
		case "type_mismatch":
			msg = "type mismatch"
		case "not_an_integer":
			msg = "not a non-negative integer"
		case "cardinality_mismatch":
			msg = "wrong number of elements"
		case "invalid_version_format":
			msg = "invalid version format"
		case "duplicate_key":
			msg = "duplicate key"
		case "limit_exceeded":
			msg = "limit exceeded"
		case "insufficient_padding":
			msg = "insufficient input padding"
		}
	}
	if msg == "" {
		return code
	}
	if exp, ok := data["expected"]; ok {
		msg += ": expected " + exp
		if got, ok := data["got"]; ok {
			msg += ", got " + got
		}
	}
	return msg
}

var currentTranslator atomic.Value

func init() { currentTranslator.Store(Translator(dictTranslator{lang: "en"})) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(Translator(dictTranslator{lang: lang}))
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(tr)
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().(Translator).Message(code, data)
}
