// Package speech предоставляет абстракцию потокового распознавания речи.
package speech

// EventKind - тип события распознавания.
type EventKind int

const (
	// EventNone - кадр не дал речевой активности.
	EventNone EventKind = iota
	// EventPartial - промежуточная гипотеза; текст не окончательный
	// и служит только признаком продолжающейся речи.
	EventPartial
	// EventFinal - распознаватель зафиксировал границу высказывания.
	// Текст финального события больше не будет выдан повторно.
	EventFinal
)

// Event - результат обработки одного кадра распознавателем.
// Текст событий Partial и Final всегда непустой после обрезки пробелов;
// пустые результаты сворачиваются в EventNone.
type Event struct {
	Kind EventKind
	Text string
}

// Port - потоковый распознаватель одного языка. Не потокобезопасен:
// принадлежит циклу диспетчера единолично.
type Port interface {
	// Accept обрабатывает кадр PCM16 и возвращает событие.
	// Ошибка означает испорченный результат для этого кадра;
	// распознаватель остаётся пригодным для следующих кадров.
	Accept(data []byte) (Event, error)

	// Reset сбрасывает внутреннее состояние декодера, отбрасывая
	// незавершённые гипотезы.
	Reset()

	// Close освобождает ресурсы распознавателя.
	Close()
}
