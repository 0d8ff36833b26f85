package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const coverDir = "book_covers"

var coverExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

type BookHandler struct {
	bookService *service.BookService
	uploadDir   string
}

func NewBookHandler(bookService *service.BookService, uploadDir string) *BookHandler {
	return &BookHandler{bookService: bookService, uploadDir: uploadDir}
}

// GetBooks --> GET /api/books, active books only
func (h *BookHandler) GetBooks(c echo.Context) error {
	books, err := h.bookService.GetActiveBooks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"books": books})
}

// GetAllBooks --> GET /api/admin/books
func (h *BookHandler) GetAllBooks(c echo.Context) error {
	books, err := h.bookService.GetAllBooks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"books": books})
}

// GetBook --> GET /api/books/:id
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	book, err := h.bookService.GetBook(c.Request().Context(), sessionFrom(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"book": book})
}

// CreateBook --> POST /api/books, multipart with an optional cover_image file
func (h *BookHandler) CreateBook(c echo.Context) error {
	req := entity.BookRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	cover, err := h.saveCover(c)
	if err != nil {
		return fail(c, err)
	}

	book, err := h.bookService.CreateBook(c.Request().Context(), &req, cover)
	if err != nil {
		h.removeCover(cover)
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Book added successfully", echo.Map{"book": book})
}

// UpdateBook --> PUT /api/books/:id
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	req := entity.BookRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	cover, err := h.saveCover(c)
	if err != nil {
		return fail(c, err)
	}

	if err := h.bookService.UpdateBook(c.Request().Context(), id, &req, cover); err != nil {
		h.removeCover(cover)
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Book updated successfully", nil)
}

// DeleteBook --> DELETE /api/books/:id
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	book, err := h.bookService.DeleteBook(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	h.removeCover(book.CoverImage)
	return ok(c, http.StatusOK, "Book deleted successfully", nil)
}

// saveCover stores the uploaded cover_image under uploadDir/book_covers and returns
// its path relative to uploadDir. No file means an empty path.
func (h *BookHandler) saveCover(c echo.Context) (string, error) {
	file, err := c.FormFile("cover_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", &service.ValidationError{Message: "Invalid cover_image upload"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !coverExtensions[ext] {
		return "", &service.ValidationError{Message: "Only image files are allowed"}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Join(h.uploadDir, coverDir), 0o755); err != nil {
		return "", err
	}
	rel := filepath.Join(coverDir, uuid.NewString()+ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, rel))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (h *BookHandler) removeCover(rel string) {
	if rel == "" {
		return
	}
	if err := os.Remove(filepath.Join(h.uploadDir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msgf("Error removing cover %s", rel)
	}
}
