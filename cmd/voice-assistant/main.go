// Голосовой ассистент с обнаружением ключевой фразы.
//
// Непрерывно слушает микрофон, ждёт фразу "компьютер" (RU) или
// "computer" (EN), затем печатает продиктованный текст в активное окно.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/jaennil/voice-assistant/internal/app"
	"github.com/jaennil/voice-assistant/internal/config"
)

func main() {
	configFlag := flag.String("config", defaultConfigPath(), "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(afero.NewOsFs(), *configFlag)
	if err != nil {
		log.Error().Err(err).Msg("ошибка конфигурации")
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("ошибка инициализации")
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("ошибка")
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "voice-assistant", "config.yaml")
}
