// Package notify construye los cuerpos de las notificaciones por email.
// Texto plano determinista: mismo input, mismo cuerpo.
package notify

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

// GRNCreatedSubject asunto del correo de creación de GRN.
func GRNCreatedSubject(grnID string) string {
	return fmt.Sprintf("Notificación de entrega de paquetes - GRN %s", grnID)
}

// GRNCreatedBody cuerpo del correo de creación: manifiesto de líneas + OTP.
func GRNCreatedBody(receiverName, locationName, grnID, code string, lines []*entity.GRNLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", receiverName)
	fmt.Fprintf(&b, "Ha recibido %d paquete(s) en %s:\n\n", len(lines), locationName)
	fmt.Fprintf(&b, "GRN: %s\n", grnID)
	writeManifest(&b, lines)
	fmt.Fprintf(&b, "\nOTP de recogida: %s\n", code)
	b.WriteString("\nPresente el OTP en el punto de recogida para retirar sus paquetes.\n")
	b.WriteString("El OTP es válido por 24 horas.\n")
	b.WriteString("\nAtentamente,\nEquipo de Paquetería\n")
	return b.String()
}

// OTPResendSubject asunto del correo de reenvío de OTP.
func OTPResendSubject(grnID string) string {
	return fmt.Sprintf("Nuevo OTP de recogida - GRN %s", grnID)
}

// OTPResendBody cuerpo del reenvío: el código regenerado invalida el anterior.
func OTPResendBody(receiverName, grnID, code string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", receiverName)
	fmt.Fprintf(&b, "Se generó un nuevo OTP para el GRN %s: %s\n", grnID, code)
	b.WriteString("El código anterior queda invalidado. El nuevo OTP es válido por 24 horas.\n")
	b.WriteString("\nAtentamente,\nEquipo de Paquetería\n")
	return b.String()
}

// TransferSubject asunto del correo de traslado desde bodega.
func TransferSubject(grnID string) string {
	return fmt.Sprintf("Paquetes trasladados a su punto de recogida - GRN %s", grnID)
}

// TransferBody cuerpo del correo de traslado de bodega a punto de recogida.
func TransferBody(receiverName, fromLocation, toLocation, grnID, code string, lines []*entity.GRNLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", receiverName)
	fmt.Fprintf(&b, "%d paquete(s) fueron trasladados desde %s hacia %s:\n\n", len(lines), fromLocation, toLocation)
	fmt.Fprintf(&b, "GRN: %s\n", grnID)
	writeManifest(&b, lines)
	fmt.Fprintf(&b, "\nOTP de recogida: %s\n", code)
	b.WriteString("El OTP es válido por 24 horas.\n")
	b.WriteString("\nAtentamente,\nEquipo de Paquetería\n")
	return b.String()
}

func writeManifest(b *strings.Builder, lines []*entity.GRNLine) {
	for _, l := range lines {
		sender := l.SenderName
		if sender == "" {
			sender = "Desconocido"
		}
		fmt.Fprintf(b, "Línea %d:\n", l.LineNumber)
		fmt.Fprintf(b, "  - Remitente: %s\n", sender)
		fmt.Fprintf(b, "  - Tipo de paquete: %s\n", entity.ParcelTypeDisplay(l.ParcelType))
		fmt.Fprintf(b, "  - Courier: %s\n", entity.CourierDisplay(l.CourierName))
	}
}
