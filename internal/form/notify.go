package form

import (
	"sync"
	"time"
)

// Variant вид уведомления.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification уведомление пользователю после отправки формы.
type Notification struct {
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Variant   Variant   `json:"variant"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(n Notification)
}

// maxInbox ограничивает очередь непрочитанных уведомлений.
const maxInbox = 20

// Inbox копит уведомления посетителя до следующего чтения.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
}

func (b *Inbox) Notify(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, n)
	if len(b.items) > maxInbox {
		b.items = b.items[len(b.items)-maxInbox:]
	}
}

// Drain возвращает накопленные уведомления и очищает очередь.
func (b *Inbox) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
