package service

import (
	"context"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

// AdminService backs the dashboard summary.
type AdminService struct {
	users      *repository.UserRepository
	books      *repository.BookRepository
	categories *repository.CategoryRepository
	orders     *repository.OrderRepository
	contacts   *repository.ContactRepository
}

func NewAdminService(users *repository.UserRepository, books *repository.BookRepository, categories *repository.CategoryRepository, orders *repository.OrderRepository, contacts *repository.ContactRepository) *AdminService {
	return &AdminService{users: users, books: books, categories: categories, orders: orders, contacts: contacts}
}

func (s *AdminService) Summary(ctx context.Context) (*entity.Summary, error) {
	var summary entity.Summary
	counters := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&summary.Users, s.users.CountUsers},
		{&summary.Books, s.books.CountBooks},
		{&summary.Categories, s.categories.CountCategories},
		{&summary.Orders, s.orders.CountOrders},
		{&summary.UnreadMessages, s.contacts.CountUnread},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error building admin summary")
			return nil, err
		}
		*c.dst = n
	}
	return &summary, nil
}
