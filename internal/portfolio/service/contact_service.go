package service

import (
	"context"
	"errors"

	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
	"go.uber.org/zap"
)

// Sender delivers a contact message to its destination.
type Sender interface {
	Deliver(ctx context.Context, msg domain.ContactMessage) error
}

// reasoned is implemented by delivery errors that carry a failure reason.
type reasoned interface {
	DeliveryReason() string
}

type ContactService struct {
	sender Sender
}

func NewContactService(sender Sender) *ContactService {
	return &ContactService{sender: sender}
}

// Send relays a contact message and reports whether it was delivered.
// Delivery failures are logged and collapsed to false.
func (s *ContactService) Send(ctx context.Context, name, email, subject, body string) bool {
	msg := domain.ContactMessage{
		SenderName:  name,
		SenderEmail: email,
		Subject:     subject,
		Body:        body,
	}

	log := logging.FromContext(ctx)
	log.Info("Tentando enviar mensagem de contato",
		zap.String("remetente", name),
		zap.String("email", email),
	)

	err := s.sender.Deliver(ctx, msg)
	if err != nil {
		fields := []zap.Field{zap.String("remetente", name), zap.Error(err)}
		var r reasoned
		if errors.As(err, &r) {
			fields = append(fields, zap.String("motivo", r.DeliveryReason()))
		}
		log.Error("Falha ao enviar mensagem de contato", fields...)
		return false
	}

	log.Info("Mensagem de contato enviada com sucesso", zap.String("remetente", name))
	return true
}
