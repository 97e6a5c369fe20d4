package speech

import (
	"fmt"
	"os"

	vosk "github.com/alphacep/vosk-api/go"
)

// VoskPort реализует Port через Vosk/Kaldi.
type VoskPort struct {
	model      *vosk.VoskModel
	recognizer *vosk.VoskRecognizer
}

// NewVosk создаёт VoskPort из пути к модели.
func NewVosk(modelPath string, sampleRate int) (*VoskPort, error) {
	// Проверяем существование директории модели
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("модель Vosk не найдена: %s", modelPath)
	}

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки модели Vosk: %w", err)
	}

	rec, err := vosk.NewRecognizer(model, float64(sampleRate))
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
	}
	rec.SetWords(1)

	return &VoskPort{
		model:      model,
		recognizer: rec,
	}, nil
}

// Accept скармливает кадр декодеру. Достигнутая граница высказывания
// даёт финальное событие, иначе промежуточную гипотезу; пустой текст
// сворачивается в EventNone.
func (v *VoskPort) Accept(data []byte) (Event, error) {
	if v.recognizer.AcceptWaveform(data) != 0 {
		text, err := parseFinal(v.recognizer.Result())
		if err != nil {
			return Event{}, err
		}
		if text == "" {
			return Event{Kind: EventNone}, nil
		}
		return Event{Kind: EventFinal, Text: text}, nil
	}

	text, err := parsePartial(v.recognizer.PartialResult())
	if err != nil {
		return Event{}, err
	}
	if text == "" {
		return Event{Kind: EventNone}, nil
	}
	return Event{Kind: EventPartial, Text: text}, nil
}

// Reset сбрасывает состояние декодера.
func (v *VoskPort) Reset() {
	v.recognizer.Reset()
}

// Close освобождает ресурсы.
func (v *VoskPort) Close() {
	if v.recognizer != nil {
		v.recognizer.Free()
		v.recognizer = nil
	}

	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
}
