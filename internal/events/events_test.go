package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/retry"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func message(t *testing.T, event OrderEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(event.MessageKey()), Value: value}
}

func TestPublishOrderEventKeysByOrder(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)

	event := NewOrderEvent(KindCreated, "ORDER-20250101120000-ABC123", 4)
	event.NetTotal = decimal.NewFromInt(250)
	event.Items = []entity.LineItem{{BookID: 1, Quantity: 2, Price: decimal.NewFromInt(100)}}
	require.NoError(t, p.PublishOrderEvent(context.Background(), event))

	require.Len(t, w.msgs, 1)
	require.Equal(t, "order-created-ORDER-20250101120000-ABC123", string(w.msgs[0].Key))

	var got OrderEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, event.EventID, got.EventID)
	require.True(t, got.NetTotal.Equal(decimal.NewFromInt(250)))
}

func TestPublishOrderEventReturnsWriterError(t *testing.T) {
	p := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})
	err := p.PublishOrderEvent(context.Background(), NewOrderEvent(KindStatusChanged, "ORDER-1", 1))
	require.ErrorContains(t, err, "broker down")
}

func TestProcessMessageAcceptsKnownKinds(t *testing.T) {
	c := NewConsumer(nil, retry.Fixed(1, 0))

	created := NewOrderEvent(KindCreated, "ORDER-1", 9)
	created.FromCart = true
	require.NoError(t, c.processMessage(message(t, created)))
	require.NoError(t, c.processMessage(message(t, NewOrderEvent(KindStatusChanged, "ORDER-1", 9))))
	require.NoError(t, c.processMessage(message(t, NewOrderEvent("refunded", "ORDER-1", 9))))
}

func TestProcessMessageRejectsGarbage(t *testing.T) {
	c := NewConsumer(nil, retry.Fixed(1, 0))
	err := c.processMessage(kafka.Message{Key: []byte("x"), Value: []byte("{")})
	require.Error(t, err)
}

type scriptedReader struct {
	msgs   []kafka.Message
	errs   []error
	reads  int
	cancel context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.reads++
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{msgs: []kafka.Message{message(t, NewOrderEvent(KindCreated, "ORDER-3", 5))}, cancel: cancel}
	NewConsumer(reader, retry.Fixed(1, 0)).Run(ctx)
	require.Equal(t, 2, reader.reads)
}

func TestRunWaitsBetweenFailedReads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broken := errors.New("broker unreachable")
	reader := &scriptedReader{errs: []error{broken, broken, broken}, cancel: cancel}

	start := time.Now()
	NewConsumer(reader, retry.Fixed(1, 20*time.Millisecond)).Run(ctx)
	require.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
	require.Equal(t, 4, reader.reads)
}

func TestRunStopsWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &scriptedReader{errs: []error{errors.New("broker unreachable")}, cancel: cancel}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	NewConsumer(reader, retry.Fixed(1, time.Hour)).Run(ctx)
	require.Less(t, time.Since(start), time.Minute)
	require.Equal(t, 1, reader.reads)
}
