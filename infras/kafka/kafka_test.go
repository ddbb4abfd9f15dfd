package kafka_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "AB12CD34EF",
		Value: payload{Recipient: "guest@hotel.test", Subject: "BOOKING CONFIRMATION"},
	}

	got, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("AB12CD34EF"), got.Key)
	assert.JSONEq(t, `{"recipient":"guest@hotel.test","subject":"BOOKING CONFIRMATION"}`, string(got.Value))
}

func TestMessage_ToKafkaMessageInvalidValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    payload
		wantErr bool
	}{
		{
			name:  "valid payload",
			value: `{"recipient":"guest@hotel.test","subject":"BOOKING CONFIRMATION"}`,
			want:  payload{Recipient: "guest@hotel.test", Subject: "BOOKING CONFIRMATION"},
		},
		{
			name:    "malformed payload",
			value:   `{"recipient":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte(tt.value)})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeReader struct {
	messages  []kafkaGo.Message
	committed []int64
	stop      context.CancelFunc
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(f.messages) == 0 {
		f.stop()
		<-ctx.Done()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := f.messages[0]
	f.messages = f.messages[1:]

	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	for _, msg := range msgs {
		f.committed = append(f.committed, msg.Offset)
	}

	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true

	return nil
}

func fastBackoff() backoff.BackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval: time.Millisecond,
		Multiplier:      1,
		MaxInterval:     time.Millisecond,
	}
}

func TestConsume_RetriesFailedMessageInPlace(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		messages: []kafkaGo.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}},
		stop:     cancel,
	}

	attempts := map[int64]int{}
	handler := func(_ context.Context, msg kafkaGo.Message) error {
		attempts[msg.Offset]++
		if msg.Offset == 2 && attempts[msg.Offset] < 3 {
			return errors.New("db down")
		}

		return nil
	}

	require.NoError(t, kafka.ConsumeFrom(ctx, r, "booking.notification", handler, fastBackoff()))

	assert.Equal(t, []int64{1, 2, 3}, r.committed)
	assert.Equal(t, map[int64]int{1: 1, 2: 3, 3: 1}, attempts)
	assert.True(t, r.closed)
}

func TestConsume_StopsWithoutCommittingFailedMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		messages: []kafkaGo.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}},
		stop:     cancel,
	}

	var handled []int64

	handler := func(_ context.Context, msg kafkaGo.Message) error {
		handled = append(handled, msg.Offset)
		if msg.Offset == 2 {
			if len(handled) >= 4 {
				cancel()
			}

			return errors.New("db down")
		}

		return nil
	}

	require.NoError(t, kafka.ConsumeFrom(ctx, r, "booking.notification", handler, fastBackoff()))

	assert.Equal(t, []int64{1}, r.committed)
	assert.NotContains(t, handled, int64(3))
	assert.True(t, r.closed)
}

func TestBackoff(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Retry.InitialMs = 250
	cfg.Kafka.Retry.MaxMs = 4000

	policy, ok := kafka.Backoff(cfg).(*backoff.ExponentialBackOff)
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, policy.InitialInterval)
	assert.Equal(t, 4*time.Second, policy.MaxInterval)
}
