// Package validate проверяет входящие запросы до любых удалённых вызовов.
// Все функции чистые; тексты ошибок совпадают с полем error в ответе клиенту.
package validate

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrQuestionMissing = errors.New("Question manquante")
	ErrTextMissing     = errors.New("Texte descriptif manquant")
	ErrImageMissing    = errors.New("Image manquante ou URL invalide (https://... requis)")
)

// Абсолютный http(s)-адрес либо data URI с изображением (вариант с локальной загрузкой).
var imageRefPattern = regexp.MustCompile(`(?i)^(https?://|data:image/)`)

// Question проверяет запрос варианта «вопрос-ответ».
func Question(q string) error {
	if strings.TrimSpace(q) == "" {
		return ErrQuestionMissing
	}
	return nil
}

// Analyse проверяет запрос «текст + фотография». Порядок правил фиксирован:
// сначала ссылка на изображение, затем текст — первое нарушение выигрывает.
func Analyse(text, imageRef string) error {
	if !imageRefPattern.MatchString(imageRef) {
		return ErrImageMissing
	}
	if strings.TrimSpace(text) == "" {
		return ErrTextMissing
	}
	return nil
}

// Invalid сообщает, относится ли ошибка к валидации входа (HTTP 400).
func Invalid(err error) bool {
	return errors.Is(err, ErrQuestionMissing) ||
		errors.Is(err, ErrTextMissing) ||
		errors.Is(err, ErrImageMissing)
}
