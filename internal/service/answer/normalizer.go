// Package answer нормализует свободный ответ удалённого сервиса в стабильный
// контракт: структурированную запись либо очищенный текст. Никогда не
// возвращает ошибку — формат ответа сервиса контрактно не гарантирован,
// неоднозначность всегда сводится к безопасному, пусть и с потерями, фолбэку.
package answer

import (
	"regexp"
	"strings"

	"QHSEAssistant/internal/ai"

	"github.com/tidwall/gjson"
)

// NoAnswer ответ-заглушка, когда ассистент не вернул ни одного текстового фрагмента.
const NoAnswer = "Aucune réponse."

// Structured нормализованная структурированная запись: четыре списка и примечание.
// Поля-списки всегда последовательности (никогда не nil) — даже если источник
// вернул одиночную строку; Notes всегда строка, по умолчанию пустая.
type Structured struct {
	Risks     []string `json:"risks"`
	EPI       []string `json:"epi"`
	Checks    []string `json:"checks"`
	Practices []string `json:"practices"`
	Notes     string   `json:"notes"`
}

// Result итог нормализации: заполнено ровно одно из двух полей.
type Result struct {
	Structured *Structured
	Text       string
}

var (
	// Следы цитирования, которые сервис подмешивает в текст.
	citationGlyphs  = regexp.MustCompile(`【[^】]*】`)
	bracketedSource = regexp.MustCompile(`(?i)\[[^\]\n]*source[^\]\n]*\]`)
	parenSource     = regexp.MustCompile(`(?i)\([^)\n]*source[^)\n]*\)`)
	numericMarkers  = regexp.MustCompile(`\[\d+(?::\d+)?\]`)
	sourceToEOL     = regexp.MustCompile(`(?i)\bsources?[ \t]*:[^\n]*`)

	// Приведение пробелов к норме.
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
	doubleSpaces = regexp.MustCompile(`[ \t]{2,}`)

	// Вырезание {...}-фрагмента: сначала вариант, прижатый к концу строки,
	// затем первый жадный фрагмент где угодно.
	objectAtEnd    = regexp.MustCompile(`(?s)\{.*\}\s*$`)
	objectAnywhere = regexp.MustCompile(`(?s)\{.*\}`)
)

// Concat склеивает текстовые части сообщения через перевод строки;
// нетекстовые части игнорируются.
func Concat(parts []ai.Part) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if t, ok := p.(ai.TextPart); ok {
			texts = append(texts, t.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Clean убирает следы цитирования и приводит пробелы к норме.
// Идемпотентна: Clean(Clean(x)) == Clean(x).
func Clean(s string) string {
	s = citationGlyphs.ReplaceAllString(s, "")
	s = bracketedSource.ReplaceAllString(s, "")
	s = parenSource.ReplaceAllString(s, "")
	s = numericMarkers.ReplaceAllString(s, "")
	s = sourceToEOL.ReplaceAllString(s, "")
	s = trailingWS.ReplaceAllString(s, "\n")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	s = doubleSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractObject вырезает последний {...}-фрагмент из текста. Это эвристика,
// а не парсер: при отсутствии кандидата возвращает false, и вызывающий
// остаётся с текстом.
func ExtractObject(s string) (string, bool) {
	if m := objectAtEnd.FindString(s); m != "" {
		return strings.TrimSpace(m), true
	}
	if m := objectAnywhere.FindString(s); m != "" {
		return m, true
	}
	return "", false
}

// Coerce приводит произвольный JSON-объект к схеме Structured. Тотальна для
// любого валидного объекта: массив проходит как есть, непустой скаляр
// становится списком из одного элемента, null/отсутствие/ложное значение —
// пустым списком.
func Coerce(raw string) (*Structured, bool) {
	if !gjson.Valid(raw) {
		return nil, false
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, false
	}
	return &Structured{
		Risks:     toList(root.Get("risks")),
		EPI:       toList(root.Get("epi")),
		Checks:    toList(root.Get("checks")),
		Practices: toList(root.Get("practices")),
		Notes:     root.Get("notes").String(),
	}, true
}

func toList(v gjson.Result) []string {
	out := make([]string, 0)
	if v.IsArray() {
		for _, item := range v.Array() {
			out = append(out, item.String())
		}
		return out
	}
	if !v.Exists() {
		return out
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return out
	case gjson.Number:
		if v.Num == 0 {
			return out
		}
	case gjson.String:
		if v.Str == "" {
			return out
		}
	}
	return append(out, v.String())
}

// Normalize выполняет полный конвейер: склейка, очистка, попытка выделить и
// привести JSON, выбор результата. Структурированная запись выигрывает;
// иначе очищенный текст, а при пустом тексте — заглушка NoAnswer.
func Normalize(parts []ai.Part) Result {
	cleaned := Clean(Concat(parts))
	if obj, ok := ExtractObject(cleaned); ok {
		if st, ok := Coerce(obj); ok {
			return Result{Structured: st}
		}
	}
	if cleaned == "" {
		return Result{Text: NoAnswer}
	}
	return Result{Text: cleaned}
}

// NormalizeText упрощённый вариант для текстового вопроса: без выделения JSON.
func NormalizeText(parts []ai.Part) string {
	cleaned := Clean(Concat(parts))
	if cleaned == "" {
		return NoAnswer
	}
	return cleaned
}
