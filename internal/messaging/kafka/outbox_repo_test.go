package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     "req-1",
		AggregateType: "leave_request",
		AggregateID:   uuid.New().String(),
		EventType:     "leave.requested",
		Topic:         "leave.requested",
		Payload:       []byte(`{"request_id":"abc"}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := validEvent()

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := validEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewOutboxRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		uuid.New().String(), "leave_request", uuid.New().String(), "leave.decided",
		"leave.decided", []byte(`{}`), OutboxStatusPending, 0, now,
	)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "leave.decided", events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := NewOutboxRepository(db)
	id := uuid.New().String()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkSent(context.Background(), id))

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(validEvent()))

	noID := validEvent()
	noID.ID = ""
	assert.Error(t, ValidateOutboxEvent(noID))

	noTopic := validEvent()
	noTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(noTopic))

	noPayload := validEvent()
	noPayload.Payload = nil
	assert.Error(t, ValidateOutboxEvent(noPayload))

	badStatus := validEvent()
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}
