package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeFieldRefresh = "field:refresh"

// FieldRefreshPayload identifies the field whose denormalized
// availability badge should be recomputed, and the date that changed.
type FieldRefreshPayload struct {
	FieldID string `json:"fieldId"`
	Date    string `json:"date"`
}

// NewFieldRefreshTask builds the asynq task for one refresh.
func NewFieldRefreshTask(fieldID, date string) (*asynq.Task, error) {
	b, err := json.Marshal(FieldRefreshPayload{FieldID: fieldID, Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFieldRefresh, b), nil
}

// AsynqEnqueuer submits refresh tasks to the queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (e *AsynqEnqueuer) EnqueueFieldRefresh(fieldID, date string) error {
	task, err := NewFieldRefreshTask(fieldID, date)
	if err != nil {
		return fmt.Errorf("failed to build field refresh task: %w", err)
	}
	if _, err := e.Client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue field refresh task: %w", err)
	}
	return nil
}
