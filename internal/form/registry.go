package form

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownKind для вида формы не зарегистрирована фабрика.
var ErrUnknownKind = errors.New("form: unknown form kind")

// Form общая часть автоматов с разными типами данных.
type Form interface {
	Snapshot() Snapshot
	Reset() error
}

// Factory создаёт автомат формы для сессии посетителя.
type Factory func(inbox *Inbox) Form

type session struct {
	forms  map[string]Form
	inbox  *Inbox
	usedAt time.Time
}

// Registry хранит по одному автомату на пару (сессия посетителя, вид формы).
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*session
	factories map[string]Factory
	ttl       time.Duration
	now       func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions:  make(map[string]*session),
		factories: make(map[string]Factory),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Register добавляет фабрику для вида формы.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Has сообщает, зарегистрирован ли вид формы.
func (r *Registry) Has(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[kind]
	return ok
}

// Form возвращает автомат формы, создавая его при первом обращении.
func (r *Registry) Form(sessionID, kind string) (Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	s := r.sessionLocked(sessionID)
	f, ok := s.forms[kind]
	if !ok {
		f = factory(s.inbox)
		s.forms[kind] = f
	}
	return f, nil
}

// Inbox возвращает очередь уведомлений сессии.
func (r *Registry) Inbox(sessionID string) *Inbox {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionLocked(sessionID).inbox
}

func (r *Registry) sessionLocked(id string) *session {
	s, ok := r.sessions[id]
	if !ok {
		s = &session{forms: make(map[string]Form), inbox: &Inbox{}}
		r.sessions[id] = s
	}
	s.usedAt = r.now()
	return s
}

// Lookup возвращает типизированный автомат формы.
func Lookup[P, R any](r *Registry, sessionID, kind string) (*Machine[P, R], error) {
	f, err := r.Form(sessionID, kind)
	if err != nil {
		return nil, err
	}
	m, ok := f.(*Machine[P, R])
	if !ok {
		return nil, fmt.Errorf("form: kind %s has payload type %T", kind, f)
	}
	return m, nil
}

// Sweep удаляет сессии, неактивные дольше ttl. Сессии с формой в submitting остаются.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.usedAt) <= r.ttl || s.submitting() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Len возвращает число активных сессий.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (s *session) submitting() bool {
	for _, f := range s.forms {
		if f.Snapshot().State == StateSubmitting {
			return true
		}
	}
	return false
}
