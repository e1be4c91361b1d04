package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// CreateTaskRequest is the task creation body.
type CreateTaskRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	StartTime   string   `json:"startTime"   validate:"required,timestamp"`
	EndTime     string   `json:"endTime"     validate:"required,timestamp"`
	Priority    *int     `json:"priority"    validate:"required,min=1,max=5"`
	Status      string   `json:"status"      validate:"omitempty,oneof=pending finished"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is the task update body; absent fields stay nil.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"       validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	StartTime   *string  `json:"startTime"   validate:"omitempty,timestamp"`
	EndTime     *string  `json:"endTime"     validate:"omitempty,timestamp"`
	Priority    *int     `json:"priority"    validate:"omitempty,min=1,max=5"`
	Status      *string  `json:"status"      validate:"omitempty,oneof=pending finished"`
	Tags        []string `json:"tags"`

	// nulls lists the fields sent as an explicit JSON null.
	nulls []string
}

var updateTaskFields = []string{"title", "description", "startTime", "endTime", "priority", "status", "tags"}

// UnmarshalJSON decodes the body and remembers which fields were null, since
// a nil pointer alone cannot tell null apart from an absent key.
func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateTaskRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateTaskRequest(p)
	r.nulls = nil
	for _, f := range updateTaskFields {
		if v, ok := raw[f]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			r.nulls = append(r.nulls, f)
		}
	}
	return nil
}

type taskFilterRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending finished"`
}

// TaskCreate validates a creation body and converts dates to UTC timestamps.
// A missing status defaults to pending.
func (val *Validator) TaskCreate(req CreateTaskRequest) (ports.CreateTaskInput, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if err := val.Validate(&req); err != nil {
		return ports.CreateTaskInput{}, err
	}

	// Both parse: the timestamp tag already accepted them.
	start, _ := parseTimestamp(req.StartTime)
	end, _ := parseTimestamp(req.EndTime)

	status := domain.TaskPending
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
	}

	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Priority:    *req.Priority,
		Status:      status,
		Tags:        req.Tags,
	}, nil
}

// TaskUpdate validates only the supplied fields and returns them as a patch.
// A field sent as null is rejected rather than treated as absent.
func (val *Validator) TaskUpdate(req UpdateTaskRequest) (domain.TaskPatch, error) {
	req.Title = trimPtr(req.Title)
	req.Description = trimPtr(req.Description)

	var errs Errors
	for _, f := range req.nulls {
		errs = append(errs, FieldError{Field: f, Message: f + " must not be null"})
	}
	if err := val.Validate(&req); err != nil {
		var verrs Errors
		if !errors.As(err, &verrs) {
			return domain.TaskPatch{}, err
		}
		errs = append(errs, verrs...)
	}
	if len(errs) > 0 {
		return domain.TaskPatch{}, errs
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.StartTime != nil {
		patch.StartTime = timePtr(*req.StartTime)
	}
	if req.EndTime != nil {
		patch.EndTime = timePtr(*req.EndTime)
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}
	if req.Tags != nil {
		tags := req.Tags
		patch.Tags = &tags
	}
	return patch, nil
}

// TaskFilter validates the list query parameters.
func (val *Validator) TaskFilter(status string) (ports.TaskFilter, error) {
	req := taskFilterRequest{Status: strings.TrimSpace(status)}
	if err := val.Validate(&req); err != nil {
		return ports.TaskFilter{}, err
	}
	return ports.TaskFilter{Status: domain.TaskStatus(req.Status)}, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func timePtr(s string) *time.Time {
	t, _ := parseTimestamp(s)
	return &t
}
