package memory

import (
	"context"
	"sync"
)

// Mail correo capturado por el RecorderNotifier.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// RecorderNotifier implementa ports.Notifier capturando los envíos. Si
// FailWith no es nil, todo envío falla con ese error (para probar la
// reversión transaccional de las notificaciones).
type RecorderNotifier struct {
	mu       sync.Mutex
	Sent     []Mail
	FailWith error
}

// Send registra el correo o falla según FailWith.
func (n *RecorderNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.FailWith != nil {
		return n.FailWith
	}
	n.Sent = append(n.Sent, Mail{To: to, Subject: subject, Body: body})
	return nil
}
