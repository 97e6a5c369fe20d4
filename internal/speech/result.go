package speech

import (
	"encoding/json"
	"fmt"
	"strings"
)

// voskFinal структура для парсинга финального результата Vosk.
type voskFinal struct {
	Text string `json:"text"`
}

// voskPartial структура для парсинга промежуточного результата Vosk.
type voskPartial struct {
	Partial string `json:"partial"`
}

func parseFinal(raw string) (string, error) {
	var result voskFinal
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("разбор результата: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}

func parsePartial(raw string) (string, error) {
	var result voskPartial
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("разбор промежуточного результата: %w", err)
	}
	return strings.TrimSpace(result.Partial), nil
}
