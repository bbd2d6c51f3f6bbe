package legacy

import (
	"encoding/json"
	"fmt"
)

// Старая система отвечает в конверте {success, message, data}, но не всегда:
// часть эндпоинтов отдаёт payload как есть, часть — постраничный объект,
// а экспорт записей и вовсе голый массив. Вся эта зоология нормализуется
// здесь, на границе транспорта; дальше по коду ходит одна каноничная форма.

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// EnvelopeError — старая система явно ответила success=false.
type EnvelopeError struct {
	Message string
	Payload []byte
}

func (e *EnvelopeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "запрос к старой системе завершился неуспешно"
}

// DecodeEnvelope разворачивает конверт. Отсутствие поля success означает,
// что ответ без конверта — возвращаем его без изменений (обратная
// совместимость со старыми эндпоинтами).
func DecodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// не объект вовсе (например, голый массив) — отдаём как есть
		return body, nil
	}
	if env.Success == nil {
		return body, nil
	}
	if !*env.Success {
		return nil, &EnvelopeError{Message: env.Message, Payload: body}
	}
	return env.Data, nil
}

// RawAppointment — запись из старой системы. Идентификатор там кочевал по
// трём полям между версиями схемы, разрешаем его один раз при декодировании.
type RawAppointment struct {
	ID                  uint64 `json:"-"`
	CustomerName        string `json:"customerName"`
	CustomerPhone       string `json:"customerPhone"`
	TechnicianID        uint64 `json:"technicianId"`
	AppointmentDateTime string `json:"appointmentDateTime"`
	Status              string `json:"status"`
	Notes               string `json:"notes"`
	ReminderSent        bool   `json:"reminderSent"`
}

type rawAppointmentAlias RawAppointment

type rawAppointmentWire struct {
	rawAppointmentAlias
	ApptID        *uint64 `json:"apptId"`
	AppointmentID *uint64 `json:"appointmentId"`
	PlainID       *uint64 `json:"id"`
}

// ErrNoAppointmentID — у записи нет ни apptId, ни appointmentId, ни id.
var ErrNoAppointmentID = fmt.Errorf("запись без идентификатора: нет apptId, appointmentId и id")

func (r *RawAppointment) UnmarshalJSON(data []byte) error {
	var wire rawAppointmentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = RawAppointment(wire.rawAppointmentAlias)

	// Цепочка фолбэков: apptId ?? appointmentId ?? id.
	switch {
	case wire.ApptID != nil:
		r.ID = *wire.ApptID
	case wire.AppointmentID != nil:
		r.ID = *wire.AppointmentID
	case wire.PlainID != nil:
		r.ID = *wire.PlainID
	default:
		return ErrNoAppointmentID
	}
	return nil
}

// AppointmentPage — каноничная форма списка записей.
type AppointmentPage struct {
	Content       []RawAppointment
	TotalElements uint64
	TotalPages    int
	CurrentPage   int
	PageSize      int
}

type pagedWire struct {
	Content       []json.RawMessage `json:"content"`
	TotalElements uint64            `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	PageSize      int               `json:"pageSize"`
}

// DecodeAppointmentPage приводит любой из трёх встречающихся форматов —
// голый массив, постраничный объект, дважды завёрнутый конверт — к одной
// канонической странице. Записи без идентификатора отбрасываются, их
// количество возвращается отдельно.
func DecodeAppointmentPage(body []byte) (AppointmentPage, int, error) {
	payload, err := DecodeEnvelope(body)
	if err != nil {
		return AppointmentPage{}, 0, err
	}
	// data внутри конверта может сам оказаться конвертом (двойная обёртка
	// у пары старых эндпоинтов).
	if inner, err := DecodeEnvelope(payload); err == nil {
		payload = inner
	} else {
		return AppointmentPage{}, 0, err
	}

	var rawItems []json.RawMessage
	page := AppointmentPage{}

	var asArray []json.RawMessage
	if err := json.Unmarshal(payload, &asArray); err == nil {
		rawItems = asArray
		page.TotalElements = uint64(len(asArray))
		page.TotalPages = 1
		page.PageSize = len(asArray)
	} else {
		var asPage pagedWire
		if err := json.Unmarshal(payload, &asPage); err != nil {
			return AppointmentPage{}, 0, fmt.Errorf("неожиданная форма ответа со списком записей: %w", err)
		}
		rawItems = asPage.Content
		page.TotalElements = asPage.TotalElements
		page.TotalPages = asPage.TotalPages
		page.CurrentPage = asPage.CurrentPage
		page.PageSize = asPage.PageSize
	}

	skipped := 0
	page.Content = make([]RawAppointment, 0, len(rawItems))
	for _, item := range rawItems {
		var appt RawAppointment
		if err := json.Unmarshal(item, &appt); err != nil {
			skipped++
			continue
		}
		page.Content = append(page.Content, appt)
	}
	return page, skipped, nil
}
