package services

import (
	"fmt"
	"log"
	"strings"

	"pclstore/internal/models"
	"pclstore/internal/repositories"
	"pclstore/pkg/mailer"
)

// NewsletterService handles newsletter subscriptions. Unsubscribes keep the
// row around so a later resubscribe reactivates it instead of sending a
// second welcome email.
type NewsletterService struct {
	repo   repositories.NewsletterRepository
	sender mailer.Sender
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(repo repositories.NewsletterRepository, sender mailer.Sender) *NewsletterService {
	return &NewsletterService{
		repo:   repo,
		sender: sender,
	}
}

// Subscribe adds an email to the newsletter. It reports whether the address
// was already subscribed.
func (s *NewsletterService) Subscribe(email, name string) (alreadySubscribed bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.GetByEmail(email)
	if err == nil && existing != nil {
		if existing.Subscribed {
			return true, nil
		}
		// Reactivate a previously cancelled subscription, without resending
		// the welcome email.
		if err := s.repo.SetSubscribed(email, true); err != nil {
			return false, fmt.Errorf("failed to reactivate subscription for %s: %w", email, err)
		}
		return false, nil
	}

	subscription := &models.NewsletterSubscription{
		Email:      email,
		Name:       name,
		Subscribed: true,
	}
	if err := s.repo.Create(subscription); err != nil {
		return false, fmt.Errorf("failed to subscribe %s: %w", email, err)
	}

	if s.sender != nil {
		welcome := mailer.NewsletterWelcomeData{Email: email, Name: name}
		if err := s.sender.Send(mailer.TemplateNewsletterWelcome, email, welcome); err != nil {
			// Delivery failure must not undo the subscription.
			log.Printf("Warning: Failed to send welcome email to %s: %v", email, err)
		}
	}

	return false, nil
}

// Unsubscribe cancels a subscription.
func (s *NewsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.repo.SetSubscribed(email, false); err != nil {
		return fmt.Errorf("failed to unsubscribe %s: %w", email, err)
	}
	return nil
}
