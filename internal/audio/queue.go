// Package audio предоставляет захват аудио с микрофона и очередь кадров
// между захватом и распознаванием.
package audio

import (
	"context"
	"time"
)

// Frame - один кадр PCM аудио (mono, 16 бит, 16 кГц).
// Кадр неизменяем после постановки в очередь.
type Frame struct {
	Data []byte
	At   time.Time
}

// Queue - ограниченная очередь кадров: один производитель (захват),
// один потребитель (диспетчер). При заполнении Push блокируется,
// притормаживая захват вместо потери речи.
type Queue struct {
	frames chan Frame
}

// NewQueue создаёт очередь на size кадров.
func NewQueue(size int) *Queue {
	return &Queue{
		frames: make(chan Frame, size),
	}
}

// Push ставит кадр в очередь, блокируясь при заполнении.
// Возвращает ошибку только при отмене ctx.
func (q *Queue) Push(ctx context.Context, f Frame) error {
	select {
	case q.frames <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop ждёт кадр не дольше timeout. Второе значение false означает,
// что кадра нет: истёк таймаут или отменён ctx.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (Frame, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f := <-q.frames:
		return f, true
	case <-timer.C:
		return Frame{}, false
	case <-ctx.Done():
		return Frame{}, false
	}
}

// Len возвращает текущее количество кадров в очереди.
func (q *Queue) Len() int {
	return len(q.frames)
}
