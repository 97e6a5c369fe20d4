// Package config предоставляет конфигурацию ассистента из YAML файла.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultSampleRate - частота дискретизации распознавания в Гц.
	DefaultSampleRate = 16000
	// DefaultFrameSize - размер кадра захвата в сэмплах (250 мс при 16 кГц).
	DefaultFrameSize = 4000
	// DefaultQueueSize - ёмкость очереди кадров (2 секунды аудио).
	DefaultQueueSize = 8
	// DefaultSilenceTimeout - пауза тишины, завершающая диктовку.
	DefaultSilenceTimeout = 2 * time.Second
	// DefaultWaitPoll - интервал опроса очереди в ожидании ключевой фразы.
	DefaultWaitPoll = time.Second
	// DefaultDictationPoll - интервал опроса очереди во время диктовки.
	// Короткий, чтобы тишина обнаруживалась с точностью до долей секунды.
	DefaultDictationPoll = 100 * time.Millisecond
	// DefaultLogLevel - уровень логирования по умолчанию.
	DefaultLogLevel = "info"
)

// Duration оборачивает time.Duration для разбора строк вида "2s" из YAML.
type Duration time.Duration

// UnmarshalYAML реализует yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("длительность %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std возвращает time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LanguageProfile описывает один отслеживаемый язык.
type LanguageProfile struct {
	// Code - код языка ("ru", "en").
	Code string `yaml:"code"`
	// Name - отображаемое имя языка для логов и уведомлений.
	Name string `yaml:"name"`
	// ModelPath - путь к директории модели Vosk.
	ModelPath string `yaml:"model_path"`
	// WakePhrases - варианты ключевой фразы, включая фонетические
	// написания. Порядок задаёт приоритет при совпадении позиций.
	WakePhrases []string `yaml:"wake_phrases"`
}

// Config хранит настройки ассистента.
type Config struct {
	// Languages - отслеживаемые языки в порядке приоритета.
	Languages []LanguageProfile `yaml:"languages"`

	SampleRate     int      `yaml:"sample_rate"`
	FrameSize      int      `yaml:"frame_size"`
	QueueSize      int      `yaml:"queue_size"`
	SilenceTimeout Duration `yaml:"silence_timeout"`
	WaitPoll       Duration `yaml:"wait_poll"`
	DictationPoll  Duration `yaml:"dictation_poll"`

	// AudioDevice - подстрока имени входного устройства;
	// пустая строка означает устройство по умолчанию.
	AudioDevice   string `yaml:"audio_device"`
	Notifications bool   `yaml:"notifications"`
	LogLevel      string `yaml:"log_level"`
}

// Default возвращает конфигурацию по умолчанию: русский и английский
// языки с малыми моделями Vosk в ~/.local/share/vosk.
func Default() *Config {
	home, _ := os.UserHomeDir()
	voskDir := filepath.Join(home, ".local", "share", "vosk")

	return &Config{
		Languages: []LanguageProfile{
			{
				Code:        "ru",
				Name:        "Русский",
				ModelPath:   filepath.Join(voskDir, "vosk-model-small-ru-0.22"),
				WakePhrases: []string{"компьютер", "компютер"},
			},
			{
				Code:        "en",
				Name:        "English",
				ModelPath:   filepath.Join(voskDir, "vosk-model-small-en-us-0.15"),
				WakePhrases: []string{"computer"},
			},
		},
		SampleRate:     DefaultSampleRate,
		FrameSize:      DefaultFrameSize,
		QueueSize:      DefaultQueueSize,
		SilenceTimeout: Duration(DefaultSilenceTimeout),
		WaitPoll:       Duration(DefaultWaitPoll),
		DictationPoll:  Duration(DefaultDictationPoll),
		Notifications:  true,
		LogLevel:       DefaultLogLevel,
	}
}

// Load читает конфигурацию из YAML файла поверх значений по умолчанию.
// Отсутствующий файл не ошибка: используются значения по умолчанию.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config: чтение %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: разбор %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate применяет значения по умолчанию к пустым полям и проверяет
// конфигурацию. Ключевые фразы нормализуются: обрезаются пробелы,
// регистр приводится к нижнему.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("config: не задан ни один язык")
	}

	for i := range c.Languages {
		lang := &c.Languages[i]
		if lang.Code == "" {
			return fmt.Errorf("config: язык #%d: не задан код", i)
		}
		if lang.Name == "" {
			lang.Name = lang.Code
		}
		if lang.ModelPath == "" {
			return fmt.Errorf("config: язык %q: не задан путь к модели", lang.Code)
		}
		if len(lang.WakePhrases) == 0 {
			return fmt.Errorf("config: язык %q: не заданы ключевые фразы", lang.Code)
		}
		for j, phrase := range lang.WakePhrases {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase == "" {
				return fmt.Errorf("config: язык %q: пустая ключевая фраза", lang.Code)
			}
			lang.WakePhrases[j] = phrase
		}
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("config: частота дискретизации должна быть положительной, задано %d", c.SampleRate)
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("config: размер кадра должен быть положительным, задано %d", c.FrameSize)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("config: ёмкость очереди должна быть положительной, задано %d", c.QueueSize)
	}
	if c.SilenceTimeout <= 0 {
		return fmt.Errorf("config: таймаут тишины должен быть положительным")
	}
	if c.WaitPoll <= 0 || c.DictationPoll <= 0 {
		return fmt.Errorf("config: интервалы опроса должны быть положительными")
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	return nil
}
