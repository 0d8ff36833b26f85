package service

import (
	"context"
	"regexp"
	"testing"

	"confidencevoice/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSummaryCountsEverything(t *testing.T) {
	db, mock := newMock(t)
	svc := NewAdminService(repository.NewUserRepository(db), repository.NewBookRepository(db),
		repository.NewCategoryRepository(db), repository.NewOrderRepository(db), repository.NewContactRepository(db))

	for i, table := range []string{"users", "books", "categories", "orders", "contacts WHERE is_read = FALSE"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + table)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(i + 1))
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Users)
	require.Equal(t, 4, summary.Orders)
	require.Equal(t, 5, summary.UnreadMessages)
	require.NoError(t, mock.ExpectationsWereMet())
}
