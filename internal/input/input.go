// Package input предоставляет ввод текста в активное окно.
package input

import "time"

// typeTimeout ограничивает работу внешней утилиты ввода: зависший
// ввод не должен останавливать цикл ассистента.
const typeTimeout = 10 * time.Second

// Typer вводит текст в текущее активное окно.
type Typer interface {
	// Type вводит текст в текущее активное поле.
	Type(text string) error
}

// New создаёт платформо-специфичный Typer.
func New() (Typer, error) {
	return newTyper()
}
