package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

var (
	userSession  = Session{UserID: 4, Name: "Jane Doe", Role: "user"}
	adminSession = Session{UserID: 1, Name: "Admin", Role: "admin"}
)

type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *fakePublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

type checkoutFixture struct {
	svc       *CheckoutService
	mock      sqlmock.Sqlmock
	mr        *miniredis.Miniredis
	publisher *fakePublisher
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db, mock := newMock(t)
	rdb, mr := newRedis(t)
	publisher := &fakePublisher{}

	svc := NewCheckoutService(repository.NewStore(db), NewRedisIdempotencyStore(rdb, time.Hour), publisher, NewValidator())
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 15, 0, time.UTC) }

	return &checkoutFixture{svc: svc, mock: mock, mr: mr, publisher: publisher}
}
