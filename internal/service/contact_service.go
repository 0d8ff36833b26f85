package service

import (
	"context"
	"errors"
	"strings"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

type ContactService struct {
	contactRepo *repository.ContactRepository
	validator   *Validator
}

func NewContactService(contactRepo *repository.ContactRepository, validator *Validator) *ContactService {
	return &ContactService{contactRepo: contactRepo, validator: validator}
}

func (s *ContactService) Submit(ctx context.Context, req *entity.ContactRequest) (*entity.Contact, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	contact := &entity.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.contactRepo.CreateContact(ctx, contact); err != nil {
		logger.Error().Err(err).Msg("Error saving contact message")
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) GetContacts(ctx context.Context) ([]entity.Contact, error) {
	contacts, err := s.contactRepo.GetContacts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting contact messages")
		return nil, err
	}
	return contacts, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id int) error {
	if err := s.contactRepo.MarkRead(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error marking contact %d read", id)
		}
		return err
	}
	return nil
}
