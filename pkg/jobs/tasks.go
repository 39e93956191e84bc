package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue report jobs run on.
	QueueDefault = "default"
	// TaskTypeSummaryReport is the scheduled daily summary report task.
	TaskTypeSummaryReport = "report:summary"
)

// SummaryReportPayload parameterizes the daily summary run.
type SummaryReportPayload struct {
	ServiceName string `json:"serviceName"`
}

// NewSummaryReportTask constructs the Asynq task for a summary run.
func NewSummaryReportTask(payload SummaryReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSummaryReport, data), nil
}
