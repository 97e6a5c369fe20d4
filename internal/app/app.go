// Package app связывает компоненты ассистента и управляет их жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaennil/voice-assistant/internal/audio"
	"github.com/jaennil/voice-assistant/internal/config"
	"github.com/jaennil/voice-assistant/internal/dispatch"
	"github.com/jaennil/voice-assistant/internal/input"
	"github.com/jaennil/voice-assistant/internal/notify"
	"github.com/jaennil/voice-assistant/internal/speech"
)

// App - собранное приложение: захват, распознаватели, диспетчер.
type App struct {
	log        zerolog.Logger
	capture    *audio.Capture
	dispatcher *dispatch.Dispatcher
	ports      []speech.Port
}

// New создаёт приложение: настраивает логгер, загружает модели всех
// языков, открывает аудиоустройство и собирает диспетчер. Ошибка
// загрузки модели фатальна: без распознавателя ассистент бесполезен.
func New(cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.LogLevel)

	typer, err := input.New()
	if err != nil {
		return nil, fmt.Errorf("ввод текста: %w", err)
	}

	notifier := notify.New(cfg.Notifications)

	var ports []speech.Port
	closePorts := func() {
		for _, p := range ports {
			p.Close()
		}
	}

	channels := make([]dispatch.Channel, 0, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		logger.Info().
			Str("language", lang.Name).
			Str("model", lang.ModelPath).
			Msg("загрузка модели")

		port, err := speech.NewVosk(lang.ModelPath, cfg.SampleRate)
		if err != nil {
			closePorts()
			return nil, fmt.Errorf("язык %s: %w", lang.Name, err)
		}
		ports = append(ports, port)

		logger.Info().
			Str("language", lang.Code).
			Strs("wake_phrases", lang.WakePhrases).
			Msg("модель загружена")

		channels = append(channels, dispatch.Channel{Profile: lang, Port: port})
	}

	queue := audio.NewQueue(cfg.QueueSize)

	capture, err := audio.NewCapture(&audio.CaptureConfig{
		Queue:      queue,
		SampleRate: cfg.SampleRate,
		FrameSize:  cfg.FrameSize,
		Device:     cfg.AudioDevice,
		Logger:     logger,
	})
	if err != nil {
		closePorts()
		return nil, err
	}

	dispatcher, err := dispatch.New(&dispatch.Config{
		Queue:          queue,
		Channels:       channels,
		Sink:           typer,
		Notifier:       notifier,
		Logger:         logger,
		SilenceTimeout: cfg.SilenceTimeout.Std(),
		WaitPoll:       cfg.WaitPoll.Std(),
		DictationPoll:  cfg.DictationPoll.Std(),
	})
	if err != nil {
		capture.Close()
		closePorts()
		return nil, err
	}

	return &App{
		log:        logger,
		capture:    capture,
		dispatcher: dispatcher,
		ports:      ports,
	}, nil
}

// Run запускает захват аудио и цикл диспетчера до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	if err := a.capture.Start(ctx); err != nil {
		return err
	}

	err := a.dispatcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.log.Info().Msg("завершение работы")
		return nil
	}
	return err
}

// Close освобождает аудиоустройство и распознаватели.
func (a *App) Close() {
	a.capture.Close()
	for _, p := range a.ports {
		p.Close()
	}
}

// newLogger настраивает zerolog: человекочитаемый вывод в консоль,
// JSON при LOG_FORMAT=json.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		output = os.Stdout
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("service", "voice-assistant").
		Logger()
}
