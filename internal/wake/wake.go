// Package wake реализует поиск ключевой фразы в распознанном тексте.
package wake

import "strings"

// Match - результат поиска ключевой фразы.
type Match struct {
	// Phrase - сработавший вариант фразы.
	Phrase string
	// Remainder - текст исходного высказывания после фразы,
	// без крайних пробелов.
	Remainder string
}

// Find ищет ключевую фразу в тексте. Поиск нечувствителен к регистру;
// побеждает фраза с самым ранним вхождением, при равных позициях -
// объявленная раньше. Фразы должны быть заранее приведены к нижнему
// регистру.
func Find(text string, phrases []string) (Match, bool) {
	lower := strings.ToLower(text)

	best := -1
	var match Match

	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}

		idx := strings.Index(lower, phrase)
		if idx < 0 || (best >= 0 && idx >= best) {
			continue
		}

		// Индекс и длина считаются по тексту в нижнем регистре;
		// для наших алфавитов приведение регистра сохраняет длину байт.
		end := idx + len(phrase)
		if end > len(text) {
			end = len(text)
		}

		best = idx
		match = Match{
			Phrase:    phrase,
			Remainder: strings.TrimSpace(text[end:]),
		}
	}

	return match, best >= 0
}
