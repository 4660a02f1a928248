package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
)

// State состояние формы.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

var (
	// ErrSubmitInFlight возвращается, если отправка уже выполняется. Повторная отправка игнорируется.
	ErrSubmitInFlight = errors.New("form: submission already in progress")
	// ErrAlreadySubmitted возвращается при отправке из success без Reset.
	ErrAlreadySubmitted = errors.New("form: already submitted, reset first")
)

// Submitter выполняет мутацию. query.Mutation подходит без адаптера.
type Submitter[P, R any] interface {
	Mutate(ctx context.Context, p P) (R, error)
}

// Effects побочные эффекты успешной и неуспешной отправки. Все поля необязательны.
type Effects[R any] struct {
	Notifier       Notifier
	SuccessTitle   string
	SuccessMessage string
	ErrorTitle     string
	OnSuccess      func(R)
	OnError        func(error)
	// OnReset вызывается после успеха для сброса полей и прокрутки страницы.
	OnReset func()
}

// Snapshot состояние формы для отрисовки.
type Snapshot struct {
	State     State     `json:"state"`
	Error     string    `json:"error,omitempty"`
	Details   []string  `json:"details,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Machine автомат отправки одной формы: idle → submitting → success | error.
// Из error можно отправить снова, из success только через Reset.
type Machine[P, R any] struct {
	submit  Submitter[P, R]
	effects Effects[R]
	now     func() time.Time

	mu        sync.Mutex
	state     State
	errMsg    string
	details   []string
	result    R
	updatedAt time.Time
}

func New[P, R any](submit Submitter[P, R], effects Effects[R]) *Machine[P, R] {
	m := &Machine[P, R]{submit: submit, effects: effects, now: time.Now, state: StateIdle}
	m.updatedAt = m.now()
	return m
}

// Submit отправляет форму. Во время отправки повторный вызов возвращает ErrSubmitInFlight
// и ничего не делает.
func (m *Machine[P, R]) Submit(ctx context.Context, p P) (R, error) {
	var zero R

	m.mu.Lock()
	switch m.state {
	case StateSubmitting:
		m.mu.Unlock()
		return zero, ErrSubmitInFlight
	case StateSuccess:
		m.mu.Unlock()
		return zero, ErrAlreadySubmitted
	}
	m.state = StateSubmitting
	m.errMsg = ""
	m.details = nil
	m.updatedAt = m.now()
	m.mu.Unlock()

	res, err := m.submit.Mutate(ctx, p)

	m.mu.Lock()
	m.updatedAt = m.now()
	if err != nil {
		m.state = StateError
		m.errMsg = Message(err)
		m.details = details(err)
	} else {
		m.state = StateSuccess
		m.result = res
	}
	msg := m.errMsg
	m.mu.Unlock()

	if err != nil {
		m.failed(err, msg)
		return res, err
	}
	m.succeeded(res)
	return res, nil
}

func (m *Machine[P, R]) succeeded(res R) {
	if m.effects.Notifier != nil {
		m.effects.Notifier.Notify(Notification{
			Title:   m.effects.SuccessTitle,
			Message: m.effects.SuccessMessage,
			Variant: VariantDefault,
		})
	}
	if m.effects.OnSuccess != nil {
		m.effects.OnSuccess(res)
	}
	if m.effects.OnReset != nil {
		m.effects.OnReset()
	}
}

func (m *Machine[P, R]) failed(err error, msg string) {
	if m.effects.Notifier != nil {
		m.effects.Notifier.Notify(Notification{
			Title:   m.effects.ErrorTitle,
			Message: msg,
			Variant: VariantDestructive,
		})
	}
	if m.effects.OnError != nil {
		m.effects.OnError(err)
	}
}

// Reset переводит success или error в idle. Во время отправки возвращает ErrSubmitInFlight.
func (m *Machine[P, R]) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	var zero R
	m.state = StateIdle
	m.errMsg = ""
	m.details = nil
	m.result = zero
	m.updatedAt = m.now()
	return nil
}

func (m *Machine[P, R]) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:     m.state,
		Error:     m.errMsg,
		Details:   append([]string(nil), m.details...),
		UpdatedAt: m.updatedAt,
	}
}

// Result возвращает результат последней успешной отправки.
func (m *Machine[P, R]) Result() (R, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.state == StateSuccess
}

// Message извлекает текст ошибки для пользователя: сообщение сервера,
// затем текст самой ошибки, затем общий текст.
func Message(err error) string {
	return apperror.ServerMessage(err)
}

func details(err error) []string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return append([]string(nil), appErr.Details...)
	}
	return nil
}
