package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPDigits longitud del código numérico.
const OTPDigits = 6

// OTPValidity ventana de validez fija medida desde CreatedAt.
// No hay barrido en background: la expiración se evalúa en cada canje.
const OTPValidity = 24 * time.Hour

// OTP es el passcode de un solo uso que habilita la recogida de todas las
// líneas no entregadas de un GRN. Uno a uno con GRN: regenerar restablece
// Code, CreatedAt y Valid sobre la misma fila, sin historial de códigos.
type OTP struct {
	ID        string
	Code      string
	GRNID     string
	CreatedAt time.Time
	Valid     bool
}

// IsExpired indica si el OTP superó su ventana de validez en el instante dado.
func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.CreatedAt.Add(OTPValidity))
}

// GenerateOTPCode genera un código numérico de OTPDigits dígitos con crypto/rand.
func GenerateOTPCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generar código OTP: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPDigits, n), nil
}
