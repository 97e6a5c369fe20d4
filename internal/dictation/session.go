// Package dictation реализует сессию диктовки с завершением по тишине.
package dictation

import (
	"strings"
	"time"

	"github.com/jaennil/voice-assistant/internal/speech"
)

// Session накапливает фрагменты распознанного текста, пока речь не
// прервётся на заданную паузу. Не потокобезопасна: принадлежит циклу
// диспетчера единолично.
type Session struct {
	parts      []string
	lastSpeech time.Time
	timeout    time.Duration
	now        func() time.Time
}

// New создаёт сессию. seed - текст после ключевой фразы из того же
// высказывания; непустой seed становится первым фрагментом диктовки.
// now позволяет подменить источник времени в тестах; nil означает
// time.Now.
func New(timeout time.Duration, seed string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}

	s := &Session{
		timeout:    timeout,
		now:        now,
		lastSpeech: now(),
	}

	if seed = strings.TrimSpace(seed); seed != "" {
		s.parts = append(s.parts, seed)
	}

	return s
}

// Observe обрабатывает событие распознавателя: финальный текст
// добавляется к диктовке, промежуточный только сбрасывает отсчёт
// тишины. События без текста не считаются речевой активностью.
func (s *Session) Observe(ev speech.Event) {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return
	}

	switch ev.Kind {
	case speech.EventFinal:
		s.parts = append(s.parts, text)
		s.lastSpeech = s.now()
	case speech.EventPartial:
		s.lastSpeech = s.now()
	}
}

// Expired сообщает, прошла ли пауза timeout с последней речевой
// активности. Проверяется диспетчером после каждого цикла опроса,
// поэтому тишина измеряется настенным временем, а не количеством
// доставленных кадров.
func (s *Session) Expired() bool {
	return s.now().Sub(s.lastSpeech) >= s.timeout
}

// Text возвращает фрагменты диктовки в порядке произнесения,
// разделённые одиночными пробелами. Пустая диктовка даёт пустую строку.
func (s *Session) Text() string {
	return strings.Join(s.parts, " ")
}
