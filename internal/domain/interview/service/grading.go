package service

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	keywordMinLength = 5 // слова короче не считаются ключевыми
	keywordLimit     = 5
	keywordThreshold = 0.4
)

var nonWord = regexp.MustCompile(`\W+`)

// Keywords выделяет ключевые слова эталонного ответа: первые пять слов длиннее четырех символов
func Keywords(reference string) []string {
	var keywords []string
	for _, token := range nonWord.Split(strings.ToLower(reference), -1) {
		if utf8.RuneCountInString(token) < keywordMinLength {
			continue
		}
		keywords = append(keywords, token)
		if len(keywords) == keywordLimit {
			break
		}
	}
	return keywords
}

// GradeFreeText проверяет ответ свободным текстом по ключевым словам эталона.
// Ответ верен, если в нем встречается не меньше 40% ключевых слов (с округлением вверх).
// Если ключевых слов нет, любой ответ считается верным.
func GradeFreeText(answer, reference string) bool {
	keywords := Keywords(reference)
	if len(keywords) == 0 {
		return true
	}

	answer = strings.ToLower(answer)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(answer, kw) {
			matched++
		}
	}

	required := int(math.Ceil(float64(len(keywords)) * keywordThreshold))
	return matched >= required
}
