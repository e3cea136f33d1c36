package app

import (
	"gorm.io/gorm"

	"github.com/meharshjain/leave-approval-system/internal/balance"
	"github.com/meharshjain/leave-approval-system/internal/department"
	"github.com/meharshjain/leave-approval-system/internal/employee"
	"github.com/meharshjain/leave-approval-system/internal/leaverequest"
)

// The outbox table is managed here rather than via AutoMigrate because its
// repository speaks raw SQL and never sees a gorm model.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id            UUID PRIMARY KEY,
	request_id    TEXT,
	aggregate_type VARCHAR(50)  NOT NULL,
	aggregate_id  UUID          NOT NULL,
	event_type    VARCHAR(100)  NOT NULL,
	topic         VARCHAR(100)  NOT NULL,
	payload       JSONB         NOT NULL,
	status        VARCHAR(20)   NOT NULL DEFAULT 'pending',
	retry_count   INT           NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
	ON outbox_events (status, created_at);
`

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&employee.Employee{},
		&balance.LeaveBalance{},
		&leaverequest.LeaveRequest{},
	); err != nil {
		return err
	}
	return db.Exec(outboxDDL).Error
}
