package domain

import "time"

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskFinished TaskStatus = "finished"
)

// Task is a unit of scheduled work owned by exactly one user.
// UserID is set at creation and never changes.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
	Priority    int        `json:"priority"`
	Status      TaskStatus `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	UserID      string     `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Priority    *int
	Status      *TaskStatus
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.StartTime == nil &&
		p.EndTime == nil && p.Priority == nil && p.Status == nil && p.Tags == nil
}

// TimeSummary reports elapsed and remaining time for a task, in hours.
// Pending tasks get TotalTimeLapsed/BalanceTimeLeft; finished tasks get TotalHours.
type TimeSummary struct {
	Status          TaskStatus `json:"status"`
	TotalTimeLapsed *float64   `json:"totalTimeLapsed,omitempty"`
	BalanceTimeLeft *float64   `json:"balanceTimeLeft,omitempty"`
	TotalHours      *float64   `json:"totalHours,omitempty"`
}

// TimeSummary computes the summary relative to now.
func (t *Task) TimeSummary(now time.Time) TimeSummary {
	if t.Status == TaskFinished {
		total := hours(t.EndTime.Sub(t.StartTime))
		return TimeSummary{Status: t.Status, TotalHours: &total}
	}

	lapsed := hours(max(0, now.Sub(t.StartTime)))
	balance := hours(max(0, t.EndTime.Sub(now)))
	return TimeSummary{Status: t.Status, TotalTimeLapsed: &lapsed, BalanceTimeLeft: &balance}
}

func hours(d time.Duration) float64 {
	return d.Hours()
}
