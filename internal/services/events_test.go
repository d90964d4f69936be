package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	p := NewEventPublisher(writer)
	p.now = func() time.Time { return time.Unix(1700000000, 0) }

	userID := uuid.New()
	noteID := uuid.NewString()

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, userID.String(), string(msgs[0].Key))

			var event models.AccountEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.EventNoteDeleted, event.Type)
			assert.Equal(t, userID.String(), event.UserID)
			assert.Equal(t, noteID, event.SubjectID)
			assert.Equal(t, int64(1700000000), event.Timestamp)
			assert.NotEmpty(t, event.EventID)
			return nil
		})

	p.Publish(context.Background(), models.EventNoteDeleted, userID, noteID)
}

func TestEventPublisher_WriteErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	p := NewEventPublisher(writer)
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), models.EventUserRegistered, uuid.New(), "")
	})
}

func TestEventPublisher_NilWriter(t *testing.T) {
	p := NewEventPublisher(nil)
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), models.EventUserRegistered, uuid.New(), "")
	})
}
