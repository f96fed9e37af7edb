package service

import "github.com/Nabz863/group17-freelance-sd-sub000/model"

// Notifier pushes an event to a user. Implementations are best-effort and
// must not block the caller on delivery.
type Notifier interface {
	Notify(userID string, n model.Notification)
}

// MultiNotifier fans one event out to several channels (websocket hub,
// mailer).
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(userID string, n model.Notification) {
	for _, t := range m {
		t.Notify(userID, n)
	}
}
