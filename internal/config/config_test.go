package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/jaennil/voice-assistant/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := config.Load(fs, "/etc/voice-assistant/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Languages) != 2 {
		t.Fatalf("ожидалось 2 языка по умолчанию, получено %d", len(cfg.Languages))
	}
	if cfg.Languages[0].Code != "ru" || cfg.Languages[1].Code != "en" {
		t.Fatalf("неверный порядок языков по умолчанию: %q, %q",
			cfg.Languages[0].Code, cfg.Languages[1].Code)
	}
	if got := cfg.Languages[0].WakePhrases; len(got) != 2 || got[0] != "компьютер" || got[1] != "компютер" {
		t.Fatalf("неверные ключевые фразы RU: %v", got)
	}
	if cfg.SampleRate != config.DefaultSampleRate {
		t.Errorf("SampleRate = %d, ожидалось %d", cfg.SampleRate, config.DefaultSampleRate)
	}
	if cfg.SilenceTimeout.Std() != 2*time.Second {
		t.Errorf("SilenceTimeout = %v, ожидалось 2s", cfg.SilenceTimeout.Std())
	}
	if !cfg.Notifications {
		t.Error("уведомления должны быть включены по умолчанию")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, ожидалось %q", cfg.LogLevel, "info")
	}
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `
languages:
  - code: de
    name: Deutsch
    model_path: /models/vosk-de
    wake_phrases: ["Rechner", " Computer "]
silence_timeout: 3s
dictation_poll: 50ms
audio_device: pipewire
log_level: debug
`
	if err := afero.WriteFile(fs, "/cfg/config.yaml", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(fs, "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Languages) != 1 {
		t.Fatalf("файл должен заменять языки целиком, получено %d", len(cfg.Languages))
	}

	lang := cfg.Languages[0]
	if lang.Code != "de" || lang.ModelPath != "/models/vosk-de" {
		t.Fatalf("неверный профиль языка: %+v", lang)
	}
	// Фразы нормализуются при загрузке
	if lang.WakePhrases[0] != "rechner" || lang.WakePhrases[1] != "computer" {
		t.Fatalf("фразы не нормализованы: %v", lang.WakePhrases)
	}

	if cfg.SilenceTimeout.Std() != 3*time.Second {
		t.Errorf("SilenceTimeout = %v, ожидалось 3s", cfg.SilenceTimeout.Std())
	}
	if cfg.DictationPoll.Std() != 50*time.Millisecond {
		t.Errorf("DictationPoll = %v, ожидалось 50ms", cfg.DictationPoll.Std())
	}
	if cfg.AudioDevice != "pipewire" {
		t.Errorf("AudioDevice = %q, ожидалось %q", cfg.AudioDevice, "pipewire")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, ожидалось %q", cfg.LogLevel, "debug")
	}

	// Незаданные поля сохраняют значения по умолчанию
	if cfg.FrameSize != config.DefaultFrameSize {
		t.Errorf("FrameSize = %d, ожидалось %d", cfg.FrameSize, config.DefaultFrameSize)
	}
	if cfg.WaitPoll.Std() != config.DefaultWaitPoll {
		t.Errorf("WaitPoll = %v, ожидалось %v", cfg.WaitPoll.Std(), config.DefaultWaitPoll)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "испорченный YAML",
			data:    "languages: [",
			wantErr: "разбор",
		},
		{
			name:    "неверная длительность",
			data:    "silence_timeout: вечность",
			wantErr: "длительность",
		},
		{
			name:    "пустой список языков",
			data:    "languages: []",
			wantErr: "ни один язык",
		},
		{
			name: "язык без модели",
			data: `
languages:
  - code: ru
    wake_phrases: ["компьютер"]
`,
			wantErr: "путь к модели",
		},
		{
			name: "язык без ключевых фраз",
			data: `
languages:
  - code: ru
    model_path: /models/ru
`,
			wantErr: "ключевые фразы",
		},
		{
			name: "пустая ключевая фраза",
			data: `
languages:
  - code: ru
    model_path: /models/ru
    wake_phrases: ["  "]
`,
			wantErr: "пустая ключевая фраза",
		},
		{
			name:    "отрицательный размер кадра",
			data:    "frame_size: -1",
			wantErr: "размер кадра",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/cfg/config.yaml", []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := config.Load(fs, "/cfg/config.yaml")
			if err == nil {
				t.Fatal("ожидалась ошибка")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ошибка %q не содержит %q", err, tt.wantErr)
			}
		})
	}
}
