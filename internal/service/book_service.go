package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
	"github.com/go-redis/redis/v8"
)

const activeBooksKey = "books:active"

func bookKey(id int) string {
	return fmt.Sprintf("book:%d", id)
}

// BookService serves the catalog. Public reads go through redis; every write drops
// the cached entries it touches. A redis outage only costs the cache.
type BookService struct {
	bookRepo  *repository.BookRepository
	rdb       *redis.Client
	ttl       time.Duration
	validator *Validator
}

func NewBookService(bookRepo *repository.BookRepository, rdb *redis.Client, ttl time.Duration, validator *Validator) *BookService {
	return &BookService{bookRepo: bookRepo, rdb: rdb, ttl: ttl, validator: validator}
}

// GetActiveBooks lists the books shown in the storefront.
func (s *BookService) GetActiveBooks(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if s.readCache(ctx, activeBooksKey, &books) {
		return books, nil
	}

	books, err := s.bookRepo.GetBooks(ctx, true)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting active books")
		return nil, err
	}
	s.writeCache(ctx, activeBooksKey, books)
	return books, nil
}

// GetAllBooks lists every book, inactive ones included, for the admin pages.
func (s *BookService) GetAllBooks(ctx context.Context) ([]entity.Book, error) {
	books, err := s.bookRepo.GetBooks(ctx, false)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting books")
		return nil, err
	}
	return books, nil
}

// GetBook returns one book. Inactive books are only visible to admins.
func (s *BookService) GetBook(ctx context.Context, sess Session, id int) (*entity.Book, error) {
	var book entity.Book
	if !s.readCache(ctx, bookKey(id), &book) {
		found, err := s.bookRepo.GetBookByID(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				logger.Error().Err(err).Msgf("Error getting book %d", id)
			}
			return nil, err
		}
		book = *found
		s.writeCache(ctx, bookKey(id), book)
	}

	if book.Status != entity.BookStatusActive && !sess.IsAdmin() {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (s *BookService) CreateBook(ctx context.Context, req *entity.BookRequest, coverImage string) (*entity.Book, error) {
	if err := s.validateBook(req); err != nil {
		return nil, err
	}

	book := bookFromRequest(req)
	book.CoverImage = coverImage
	created, err := s.bookRepo.CreateBook(ctx, book)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating book")
		return nil, translate(err, "book")
	}
	s.invalidate(ctx)
	return created, nil
}

// UpdateBook replaces the book fields. An empty coverImage keeps the current cover.
func (s *BookService) UpdateBook(ctx context.Context, id int, req *entity.BookRequest, coverImage string) error {
	if err := s.validateBook(req); err != nil {
		return err
	}

	book := bookFromRequest(req)
	book.ID = id
	book.CoverImage = coverImage
	if err := s.bookRepo.UpdateBook(ctx, book); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error updating book %d", id)
		}
		return translate(err, "book")
	}
	s.invalidate(ctx, id)
	return nil
}

// DeleteBook removes the book and returns it so the caller can drop the cover file.
func (s *BookService) DeleteBook(ctx context.Context, id int) (*entity.Book, error) {
	book, err := s.bookRepo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.DeleteBook(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting book %d", id)
		return nil, err
	}
	s.invalidate(ctx, id)
	return book, nil
}

// InvalidateCatalog drops every cached listing, used when category names change.
func (s *BookService) InvalidateCatalog(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *BookService) validateBook(req *entity.BookRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if !req.Price.IsPositive() {
		return invalid("price", "price must be greater than 0")
	}
	return nil
}

func bookFromRequest(req *entity.BookRequest) *entity.Book {
	return &entity.Book{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Price:       req.Price,
		Status:      req.Status,
		ISBN:        req.ISBN,
	}
}

func (s *BookService) readCache(ctx context.Context, key string, dst interface{}) bool {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn().Err(err).Msgf("Error reading cache key %s", key)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logger.Warn().Err(err).Msgf("Dropping unreadable cache key %s", key)
		return false
	}
	return true
}

func (s *BookService) writeCache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logger.Warn().Err(err).Msgf("Error writing cache key %s", key)
	}
}

func (s *BookService) invalidate(ctx context.Context, ids ...int) {
	keys := []string{activeBooksKey}
	for _, id := range ids {
		keys = append(keys, bookKey(id))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Msg("Error invalidating book cache")
	}
}
