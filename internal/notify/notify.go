// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"
)

const appName = "Голосовой ассистент"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// WakeDetected показывает уведомление об обнаружении ключевой фразы.
func (n *Notifier) WakeDetected(language string) {
	n.notify("Слушаю", language)
}

// Typed показывает уведомление о введённом тексте.
func (n *Notifier) Typed(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify("Готово", text)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify("Ошибка", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	_ = beeep.Notify(appName+": "+title, message, "")
}
