package kafka

import (
	"testing"
	"time"

	"github.com/jmpettit/location-import-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToJobEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("job-1"),
		Value:     []byte(`{"id":"job-1","csv_data":"name,city,state"}`),
		Topic:     "location-import-jobs",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("provisioning")},
		},
	}

	r := &Reader{}
	evt := r.mapMessageToJobEvent(msg)

	assert.Equal(t, []byte("job-1"), evt.Key)
	assert.JSONEq(t, `{"id":"job-1","csv_data":"name,city,state"}`, string(evt.Value))
	assert.Equal(t, "location-import-jobs", evt.Topic)
	assert.Equal(t, 2, evt.Partition)
	assert.Equal(t, int64(42), evt.Offset)
	assert.Equal(t, now, evt.Timestamp)
	assert.Equal(t, "provisioning", evt.Headers["source"])
	assert.NotNil(t, evt.Commit)
}

func TestSerializeResult(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 10, 0, 0, time.UTC)
	result := domain.ImportResult{
		JobID:       "job-1",
		Status:      domain.JobSucceeded,
		Processed:   2,
		Message:     "Successfully processed 2 locations",
		CompletedAt: now,
	}

	msg, err := serializeResult(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("job-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"status":"succeeded"`)
	assert.Contains(t, string(msg.Value), `"processed":2`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "status", msg.Headers[0].Key)
	assert.Equal(t, []byte("succeeded"), msg.Headers[0].Value)
	assert.Equal(t, "completed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeResult_Failed(t *testing.T) {
	result := domain.ImportResult{
		JobID:       "job-2",
		Status:      domain.JobFailed,
		Error:       "location name SITE1 must end with either -DC or -BR",
		CompletedAt: time.Now(),
	}

	msg, err := serializeResult(result)
	require.NoError(t, err)

	assert.Contains(t, string(msg.Value), `"status":"failed"`)
	assert.Contains(t, string(msg.Value), "-DC or -BR")
	assert.Equal(t, []byte("failed"), msg.Headers[0].Value)
}
