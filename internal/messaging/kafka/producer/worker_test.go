package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/messaging/kafka"
	kafkaMock "go-attendance/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeWriter fails the messages whose key is listed in failFor and reports
// them the way kafka-go does, as WriteErrors aligned with the batch.
type fakeWriter struct {
	written  []kafkago.Message
	failFor  map[string]error
	batchErr error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	errs := make(kafkago.WriteErrors, len(msgs))
	failed := false
	for i, m := range msgs {
		if err, ok := f.failFor[string(m.Key)]; ok {
			errs[i] = err
			failed = true
			continue
		}
		f.written = append(f.written, m)
	}
	if failed {
		return errs
	}
	return nil
}

func pendingEvents() []kafka.OutboxEvent {
	return []kafka.OutboxEvent{
		{ID: "evt-1", RequestID: "rid-1", AggregateType: "attendance", AggregateID: "EMP001", EventType: "attendance_signed_in", Topic: "attendance.records.v1", Payload: []byte(`{}`)},
		{ID: "evt-2", AggregateType: "attendance", AggregateID: "EMP002", EventType: "attendance_signed_in", Topic: "attendance.records.v1", Payload: []byte(`{}`)},
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	writer := &fakeWriter{failFor: map[string]error{"EMP002": errors.New("broker down")}}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pendingEvents(), nil)
	repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "evt-2", "broker down").Return(nil)

	listed, err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 2, listed)
	if assert.Len(t, writer.written, 1) {
		msg := writer.written[0]
		assert.Equal(t, "attendance.records.v1", msg.Topic)
		assert.Equal(t, []byte("EMP001"), msg.Key)
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "outbox_id", Value: []byte("evt-1")})
	}
}

func TestProcessPendingEvents_BatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	writer := &fakeWriter{batchErr: errors.New("no leader")}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pendingEvents(), nil)
	repo.EXPECT().MarkFailed(ctx, "evt-1", "no leader").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "evt-2", "no leader").Return(nil)

	listed, err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 2, listed)
	assert.Empty(t, writer.written)
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

	listed, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
	assert.Zero(t, listed)
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	repo.EXPECT().ListPending(gomock.Any(), batchSize).DoAndReturn(func(context.Context, int) ([]kafka.OutboxEvent, error) {
		cancel()
		return nil, nil
	}).MinTimes(1)

	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
