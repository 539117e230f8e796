package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/ImanMustopaKamal/deptech-be/internal/messaging/kafka"
	kafkaMock "github.com/ImanMustopaKamal/deptech-be/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("success no pending events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().
			ListPending(ctx, 50).
			Return(nil, nil)

		err := processPendingEvents(ctx, repo, &kafkago.Writer{}, logger)

		assert.NoError(t, err)
	})

	t.Run("negative list pending fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().
			ListPending(ctx, 50).
			Return(nil, errors.New("db down"))

		err := processPendingEvents(ctx, repo, &kafkago.Writer{}, logger)

		assert.Error(t, err)
	})

	t.Run("negative publish failure marks event failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		event := kafka.OutboxEvent{
			ID:        "evt-1",
			EventType: "leave.created",
			Topic:     "leave.created",
			Payload:   []byte(`{}`),
			Status:    kafka.OutboxStatusPending,
		}
		repo.EXPECT().
			ListPending(ctx, 50).
			Return([]kafka.OutboxEvent{event}, nil)
		repo.EXPECT().
			MarkFailed(ctx, "evt-1", gomock.Any()).
			Return(nil)

		// Writer tanpa address selalu gagal kirim, jadi jalur MarkFailed
		// teruji tanpa broker sungguhan.
		err := processPendingEvents(ctx, repo, &kafkago.Writer{}, logger)

		assert.NoError(t, err)
	})
}
