// Package email implementa el puerto Notifier sobre AWS SESv2.
package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	pkgconfig "github.com/jhoicas/Paqueteria-api/pkg/config"
)

// SESNotifier envía notificaciones de texto plano vía AWS SESv2 usando las
// credenciales del entorno (rol de instancia o variables AWS_*).
type SESNotifier struct {
	client    *sesv2.Client
	fromEmail string
	replyTo   string
}

// NewSESNotifier construye el notificador cargando la configuración AWS del
// entorno y fijando la región de cfg si viene definida.
func NewSESNotifier(ctx context.Context, cfg pkgconfig.SESConfig) (*SESNotifier, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("email: cargar configuración AWS: %w", err)
	}
	return &SESNotifier{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.FromEmail,
		replyTo:   cfg.ReplyTo,
	}, nil
}

// Send envía un correo de texto plano al destinatario.
func (n *SESNotifier) Send(ctx context.Context, to, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{to}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Text: &sestypes.Content{Data: aws.String(body)}},
			},
		},
	}
	if n.replyTo != "" {
		input.ReplyToAddresses = []string{n.replyTo}
	}
	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email: enviar a %s: %w", to, err)
	}
	return nil
}
