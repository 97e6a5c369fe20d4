package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

const (
	// Channels - количество каналов захвата (mono).
	Channels = 1
)

// CaptureConfig содержит настройки захвата.
type CaptureConfig struct {
	// Queue - очередь, в которую уходят кадры.
	Queue *Queue
	// SampleRate - частота дискретизации в Гц.
	SampleRate int
	// FrameSize - размер кадра в сэмплах.
	FrameSize int
	// Device - подстрока имени входного устройства; пустая строка
	// означает устройство по умолчанию.
	Device string
	// Logger - логгер компонента.
	Logger zerolog.Logger
}

// Capture читает кадры с микрофона через PortAudio и кладёт их в очередь.
// Ошибки чтения устройства (переполнение буфера и т.п.) не фатальны:
// они логируются, захват продолжается с теми кадрами, что приходят.
type Capture struct {
	queue      *Queue
	sampleRate int
	buf        []int16
	device     string
	log        zerolog.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
	done   chan struct{}
}

// NewCapture инициализирует PortAudio и создаёт Capture.
func NewCapture(cfg *CaptureConfig) (*Capture, error) {
	if cfg == nil {
		return nil, fmt.Errorf("audio: config is nil")
	}
	if cfg.Queue == nil {
		return nil, fmt.Errorf("audio: queue is nil")
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: инициализация PortAudio: %w", err)
	}

	return &Capture{
		queue:      cfg.Queue,
		sampleRate: cfg.SampleRate,
		buf:        make([]int16, cfg.FrameSize),
		device:     cfg.Device,
		log:        cfg.Logger.With().Str("component", "audio").Logger(),
	}, nil
}

// Start открывает поток и запускает горутину захвата.
// Горутина завершается при отмене ctx.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return nil
	}

	stream, err := c.openStream()
	if err != nil {
		return fmt.Errorf("audio: открытие потока: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("audio: запуск потока: %w", err)
	}

	c.stream = stream
	c.done = make(chan struct{})

	go c.loop(ctx)

	return nil
}

func (c *Capture) openStream() (*portaudio.Stream, error) {
	if c.device == "" {
		return portaudio.OpenDefaultStream(Channels, 0, float64(c.sampleRate), len(c.buf), c.buf)
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	for _, dev := range devices {
		if dev.MaxInputChannels < Channels {
			continue
		}
		if !strings.Contains(strings.ToLower(dev.Name), strings.ToLower(c.device)) {
			continue
		}

		c.log.Info().Str("device", dev.Name).Msg("использую аудиоустройство")

		params := portaudio.LowLatencyParameters(dev, nil)
		params.Input.Channels = Channels
		params.SampleRate = float64(c.sampleRate)
		params.FramesPerBuffer = len(c.buf)

		return portaudio.OpenStream(params, c.buf)
	}

	return nil, fmt.Errorf("входное устройство %q не найдено", c.device)
}

func (c *Capture) loop(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		stream := c.stream
		c.mu.Unlock()
		if stream == nil {
			return
		}

		// Переполнение входного буфера не фатально: кадр всё равно
		// доставлен, продолжаем с тем, что пришло.
		if err := stream.Read(); err != nil {
			c.log.Warn().Err(err).Msg("статус аудиоустройства")
			if err != portaudio.InputOverflowed {
				time.Sleep(10 * time.Millisecond)
				continue
			}
		}

		// Копируем сэмплы: буфер потока будет перезаписан следующим чтением.
		data := make([]byte, len(c.buf)*2)
		for i, s := range c.buf {
			binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
		}

		if err := c.queue.Push(ctx, Frame{Data: data, At: time.Now()}); err != nil {
			return
		}
	}
}

// Close останавливает захват и освобождает PortAudio.
func (c *Capture) Close() {
	c.mu.Lock()
	stream := c.stream
	c.stream = nil
	done := c.done
	c.mu.Unlock()

	if stream != nil {
		if done != nil {
			select {
			case <-done:
			case <-time.After(time.Second):
			}
		}
		stream.Stop()
		stream.Close()
	}

	if err := portaudio.Terminate(); err != nil {
		c.log.Warn().Err(err).Msg("ошибка освобождения PortAudio")
	}
}
