package email

import "context"

// Discard descarta toda notificación. Adaptador para desarrollo local y
// tests, cuando no hay remitente SES configurado.
type Discard struct{}

// NewDiscard construye el notificador nulo.
func NewDiscard() *Discard { return &Discard{} }

// Send no hace nada.
func (*Discard) Send(context.Context, string, string, string) error { return nil }
