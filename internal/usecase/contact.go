package usecase

import (
	"context"
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ContactSender relays a contact message. *email.EmailService implements it.
type ContactSender interface {
	IsConfigured() bool
	SendContactEmail(data email.ContactEmailData) error
}

type contactUsecase struct {
	sender   ContactSender
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender ContactSender, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		sender:   sender,
		validate: validate,
	}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := uc.validate.Struct(req); err != nil {
		return apperror.Validation("invalid input", validation.FormatValidationErrors(err))
	}

	if !uc.sender.IsConfigured() {
		return apperror.Unavailable("Contact form is not available right now", nil)
	}

	err := uc.sender.SendContactEmail(email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return apperror.Unavailable("Failed to send message. Please try again later.", err)
	}
	return nil
}
