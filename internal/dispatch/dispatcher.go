// Package dispatch реализует главный цикл ассистента: ожидание ключевой
// фразы, захват диктовки, ввод текста.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaennil/voice-assistant/internal/audio"
	"github.com/jaennil/voice-assistant/internal/config"
	"github.com/jaennil/voice-assistant/internal/dictation"
	"github.com/jaennil/voice-assistant/internal/speech"
	"github.com/jaennil/voice-assistant/internal/wake"
)

// Sink получает готовый текст диктовки.
type Sink interface {
	Type(text string) error
}

// Notifier сообщает пользователю о ходе цикла. Может быть nil.
type Notifier interface {
	WakeDetected(language string)
	Typed(text string)
}

// Channel - один отслеживаемый язык: профиль и его распознаватель.
type Channel struct {
	Profile config.LanguageProfile
	Port    speech.Port
}

// Config содержит зависимости и настройки диспетчера.
type Config struct {
	Queue    *audio.Queue
	Channels []Channel
	Sink     Sink
	Notifier Notifier
	Logger   zerolog.Logger

	SilenceTimeout time.Duration
	// WaitPoll - таймаут опроса очереди в ожидании ключевой фразы.
	WaitPoll time.Duration
	// DictationPoll - таймаут опроса очереди во время диктовки.
	// Задаёт гранулярность обнаружения тишины.
	DictationPoll time.Duration

	// Now позволяет подменить источник времени в тестах; nil означает time.Now.
	Now func() time.Time
}

// Dispatcher - машина состояний цикла ожидание -> диктовка -> ввод.
// Всё состояние сессии и распознавателей принадлежит горутине Run
// единолично; единственная точка синхронизации - очередь кадров.
type Dispatcher struct {
	queue    *audio.Queue
	channels []Channel
	sink     Sink
	notifier Notifier
	log      zerolog.Logger

	silenceTimeout time.Duration
	waitPoll       time.Duration
	dictationPoll  time.Duration
	now            func() time.Time
}

// New создаёт диспетчер.
func New(cfg *Config) (*Dispatcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("dispatch: config is nil")
	}
	if cfg.Queue == nil {
		return nil, fmt.Errorf("dispatch: queue is nil")
	}
	if len(cfg.Channels) == 0 {
		return nil, fmt.Errorf("dispatch: не задан ни один язык")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("dispatch: sink is nil")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Dispatcher{
		queue:          cfg.Queue,
		channels:       cfg.Channels,
		sink:           cfg.Sink,
		notifier:       cfg.Notifier,
		log:            cfg.Logger.With().Str("component", "dispatch").Logger(),
		silenceTimeout: cfg.SilenceTimeout,
		waitPoll:       cfg.WaitPoll,
		dictationPoll:  cfg.DictationPoll,
		now:            now,
	}, nil
}

// Run выполняет цикл потребителя до отмены ctx. Возвращает ctx.Err().
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logWaiting()

	for {
		frame, ok := d.queue.Pop(ctx, d.waitPoll)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !ok {
			continue
		}

		ch, remainder, found := d.detectWake(frame)
		if !found {
			continue
		}

		d.log.Info().
			Str("language", ch.Profile.Name).
			Msg("ключевая фраза обнаружена")
		if d.notifier != nil {
			d.notifier.WakeDetected(ch.Profile.Name)
		}

		// Сбрасываем все распознаватели, чтобы незавершённые гипотезы
		// ожидания не просочились в текст диктовки.
		for i := range d.channels {
			d.channels[i].Port.Reset()
		}

		d.dictate(ctx, ch, remainder)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		d.logWaiting()
	}
}

// detectWake скармливает кадр распознавателям в порядке конфигурации.
// Побеждает первый язык, чьё финальное высказывание содержит его же
// ключевую фразу; остальные языки для этого кадра не опрашиваются.
func (d *Dispatcher) detectWake(frame audio.Frame) (*Channel, string, bool) {
	for i := range d.channels {
		ch := &d.channels[i]

		ev, err := ch.Port.Accept(frame.Data)
		if err != nil {
			d.log.Warn().Err(err).
				Str("language", ch.Profile.Code).
				Msg("кадр пропущен")
			continue
		}
		if ev.Kind != speech.EventFinal {
			continue
		}

		d.log.Info().
			Str("language", ch.Profile.Name).
			Str("text", ev.Text).
			Msg("услышал")

		if m, ok := wake.Find(ev.Text, ch.Profile.WakePhrases); ok {
			return ch, m.Remainder, true
		}
	}

	return nil, "", false
}

// dictate ведёт сессию диктовки на одном языке до паузы тишины,
// после чего отдаёт собранный текст в sink. При отмене ctx
// незавершённая диктовка отбрасывается: это штатное поведение.
func (d *Dispatcher) dictate(ctx context.Context, ch *Channel, seed string) {
	session := dictation.New(d.silenceTimeout, seed, d.now)

	log := d.log.With().
		Str("session", uuid.NewString()).
		Str("language", ch.Profile.Code).
		Logger()
	log.Info().
		Dur("silence_timeout", d.silenceTimeout).
		Msg("слушаю диктовку")

	for {
		frame, ok := d.queue.Pop(ctx, d.dictationPoll)
		if ctx.Err() != nil {
			log.Debug().Msg("диктовка прервана, текст отброшен")
			return
		}

		if ok {
			ev, err := ch.Port.Accept(frame.Data)
			switch {
			case err != nil:
				log.Warn().Err(err).Msg("кадр пропущен")
			default:
				if ev.Kind == speech.EventFinal {
					log.Info().Str("text", ev.Text).Msg("распознано")
				}
				session.Observe(ev)
			}
		}

		// Тишина проверяется после каждого цикла опроса, пришёл кадр
		// или нет: пауза измеряется настенным временем.
		if session.Expired() {
			log.Info().Msg("тишина, завершаю диктовку")
			break
		}
	}

	text := session.Text()
	if text != "" {
		log.Info().Str("text", text).Msg("печатаю")
		if err := d.sink.Type(text); err != nil {
			// Текст этого цикла потерян; ассистент продолжает работать
			log.Error().Err(err).Msg("ошибка ввода текста")
		} else if d.notifier != nil {
			d.notifier.Typed(text)
		}
	} else {
		log.Info().Msg("пустая диктовка, нечего печатать")
	}

	ch.Port.Reset()
}

func (d *Dispatcher) logWaiting() {
	phrases := make([]string, 0, len(d.channels)*2)
	for _, ch := range d.channels {
		phrases = append(phrases, ch.Profile.WakePhrases...)
	}
	d.log.Info().Strs("wake_phrases", phrases).Msg("жду ключевую фразу")
}
