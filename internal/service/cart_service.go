package service

import (
	"context"
	"errors"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

// CartService mutates cart lines. Lines are addressed by cart_id and always scoped to
// the user the session acts for.
type CartService struct {
	cartRepo *repository.CartRepository
	bookRepo *repository.BookRepository
}

func NewCartService(cartRepo *repository.CartRepository, bookRepo *repository.BookRepository) *CartService {
	return &CartService{cartRepo: cartRepo, bookRepo: bookRepo}
}

func (s *CartService) List(ctx context.Context, sess Session, userID int) ([]entity.CartLine, error) {
	if err := sess.authorize(userID); err != nil {
		return nil, err
	}
	lines, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting cart for user %d", userID)
		return nil, err
	}
	return lines, nil
}

// Add puts one copy of the book in the cart, bumping the quantity of an existing line.
func (s *CartService) Add(ctx context.Context, sess Session, bookID int) error {
	if err := sess.authorize(sess.UserID); err != nil {
		return err
	}
	if bookID <= 0 {
		return invalid("book_id", "book_id is required")
	}

	book, err := s.bookRepo.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn().Msgf("Book %d not found for cart add", bookID)
		}
		return err
	}
	if book.Status != entity.BookStatusActive {
		logger.Warn().Msgf("Book %d is not available", bookID)
		return ErrNotFound
	}

	if err := s.cartRepo.AddOrIncrement(ctx, sess.UserID, bookID, book.Price); err != nil {
		logger.Error().Err(err).Msgf("Error adding book %d to cart of user %d", bookID, sess.UserID)
		return err
	}
	return nil
}

func (s *CartService) SetQuantity(ctx context.Context, sess Session, cartID, quantity int) error {
	if err := sess.authorize(sess.UserID); err != nil {
		return err
	}
	if quantity < 1 {
		return invalid("quantity", "Quantity must be at least 1")
	}
	if err := s.cartRepo.SetQuantity(ctx, sess.UserID, cartID, quantity); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error updating cart line %d", cartID)
		}
		return err
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, sess Session, cartID int) error {
	if err := sess.authorize(sess.UserID); err != nil {
		return err
	}
	if err := s.cartRepo.RemoveLine(ctx, sess.UserID, cartID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error removing cart line %d", cartID)
		}
		return err
	}
	return nil
}

// Clear empties the cart of userID. An empty cart is cleared successfully.
func (s *CartService) Clear(ctx context.Context, sess Session, userID int) error {
	if err := sess.authorize(userID); err != nil {
		return err
	}
	n, err := s.cartRepo.ClearCart(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error clearing cart of user %d", userID)
		return err
	}
	logger.Info().Msgf("Cleared %d cart lines of user %d", n, userID)
	return nil
}
