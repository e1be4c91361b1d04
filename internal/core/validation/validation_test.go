package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/task-manager/internal/core/domain"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func validCreate() CreateTaskRequest {
	return CreateTaskRequest{
		Title:       "T",
		Description: "D",
		StartTime:   "2024-01-01T00:00:00Z",
		EndTime:     "2024-01-02T00:00:00Z",
		Priority:    intPtr(3),
	}
}

func taskUpdateErr(v *Validator, req UpdateTaskRequest) error {
	_, err := v.TaskUpdate(req)
	return err
}

func asErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestRegistration(t *testing.T) {
	v := New()

	t.Run("email and password only", func(t *testing.T) {
		in, err := v.Registration(RegisterRequest{Email: "a@b.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", in.Email)
		assert.Equal(t, "secret1", in.Password)
	})

	t.Run("trims names and email", func(t *testing.T) {
		in, err := v.Registration(RegisterRequest{
			FirstName: "  Ada ", LastName: " Lovelace", Email: " ada@example.com ", Password: " pass word ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", in.FirstName)
		assert.Equal(t, "Lovelace", in.LastName)
		assert.Equal(t, "ada@example.com", in.Email)
		assert.Equal(t, " pass word ", in.Password)
	})

	t.Run("rejects bad email and short password", func(t *testing.T) {
		_, err := v.Registration(RegisterRequest{Email: "nope", Password: "123"})
		errs := asErrors(t, err)
		assert.True(t, errs.Has("email"))
		assert.True(t, errs.Has("password"))
		assert.Len(t, errs, 2)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := v.Registration(RegisterRequest{})
		errs := asErrors(t, err)
		assert.Contains(t, errs, FieldError{Field: "email", Message: "email is required"})
		assert.Contains(t, errs, FieldError{Field: "password", Message: "password is required"})
	})

	t.Run("long name", func(t *testing.T) {
		long := make([]byte, 51)
		for i := range long {
			long[i] = 'a'
		}
		_, err := v.Registration(RegisterRequest{FirstName: string(long), Email: "a@b.com", Password: "secret1"})
		errs := asErrors(t, err)
		assert.Equal(t, Errors{{Field: "firstName", Message: "firstName must be at most 50 characters long"}}, errs)
	})
}

func TestLogin(t *testing.T) {
	v := New()

	in, err := v.Login(LoginRequest{Email: " a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", in.Email)

	_, err = v.Login(LoginRequest{Email: "a@b.com", Password: "short"})
	errs := asErrors(t, err)
	assert.Equal(t, Errors{{Field: "password", Message: "password must be at least 6 characters long"}}, errs)
}

func TestTaskCreate(t *testing.T) {
	v := New()

	t.Run("defaults status to pending", func(t *testing.T) {
		in, err := v.TaskCreate(validCreate())
		require.NoError(t, err)
		assert.Equal(t, domain.TaskPending, in.Status)
		assert.Equal(t, 3, in.Priority)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), in.StartTime)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), in.EndTime)
		assert.Nil(t, in.Tags)
	})

	t.Run("keeps explicit status and tags", func(t *testing.T) {
		req := validCreate()
		req.Status = "finished"
		req.Tags = []string{"a", "b"}
		in, err := v.TaskCreate(req)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskFinished, in.Status)
		assert.Equal(t, []string{"a", "b"}, in.Tags)
	})

	t.Run("accepted date layouts", func(t *testing.T) {
		for _, s := range []string{
			"2024-01-01T10:30:00+02:00",
			"2024-01-01T08:30:00.000Z",
			"2024-01-01T08:30:00",
		} {
			req := validCreate()
			req.StartTime = s
			in, err := v.TaskCreate(req)
			require.NoError(t, err, s)
			assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), in.StartTime, s)
			assert.Equal(t, time.UTC, in.StartTime.Location(), s)
		}

		req := validCreate()
		req.EndTime = "2024-02-29"
		in, err := v.TaskCreate(req)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), in.EndTime)
	})

	t.Run("priority out of range", func(t *testing.T) {
		for _, p := range []int{0, 6, -1} {
			req := validCreate()
			req.Priority = intPtr(p)
			_, err := v.TaskCreate(req)
			errs := asErrors(t, err)
			assert.True(t, errs.Has("priority"), "priority %d", p)
		}
	})

	t.Run("priority missing", func(t *testing.T) {
		req := validCreate()
		req.Priority = nil
		_, err := v.TaskCreate(req)
		errs := asErrors(t, err)
		assert.Equal(t, Errors{{Field: "priority", Message: "priority is required"}}, errs)
	})

	t.Run("blank title and bad dates", func(t *testing.T) {
		req := validCreate()
		req.Title = "   "
		req.StartTime = "yesterday"
		req.EndTime = ""
		_, err := v.TaskCreate(req)
		errs := asErrors(t, err)
		assert.True(t, errs.Has("title"))
		assert.Contains(t, errs, FieldError{Field: "startTime", Message: "startTime must be a valid date"})
		assert.Contains(t, errs, FieldError{Field: "endTime", Message: "endTime is required"})
	})

	t.Run("unknown status", func(t *testing.T) {
		req := validCreate()
		req.Status = "done"
		_, err := v.TaskCreate(req)
		errs := asErrors(t, err)
		assert.Equal(t, Errors{{Field: "status", Message: "status must be one of: pending, finished"}}, errs)
	})
}

func TestTaskUpdate(t *testing.T) {
	v := New()

	t.Run("empty body", func(t *testing.T) {
		patch, err := v.TaskUpdate(UpdateTaskRequest{})
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("only supplied fields", func(t *testing.T) {
		patch, err := v.TaskUpdate(UpdateTaskRequest{Status: strPtr("finished"), EndTime: strPtr("2024-05-01")})
		require.NoError(t, err)
		require.NotNil(t, patch.Status)
		assert.Equal(t, domain.TaskFinished, *patch.Status)
		require.NotNil(t, patch.EndTime)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *patch.EndTime)
		assert.Nil(t, patch.Title)
		assert.Nil(t, patch.Priority)
		assert.Nil(t, patch.Tags)
	})

	t.Run("empty tag list clears tags", func(t *testing.T) {
		patch, err := v.TaskUpdate(UpdateTaskRequest{Tags: []string{}})
		require.NoError(t, err)
		require.NotNil(t, patch.Tags)
		assert.Empty(t, *patch.Tags)
	})

	t.Run("supplied fields are still validated", func(t *testing.T) {
		_, err := v.TaskUpdate(UpdateTaskRequest{
			Title:     strPtr("  "),
			Priority:  intPtr(9),
			StartTime: strPtr("soon"),
			Status:    strPtr(""),
		})
		errs := asErrors(t, err)
		for _, f := range []string{"title", "priority", "startTime", "status"} {
			assert.True(t, errs.Has(f), f)
		}
	})
}

func TestTaskUpdate_ExplicitNullRejected(t *testing.T) {
	v := New()

	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":null,"tags":null,"status":"finished"}`), &req))

	errs := asErrors(t, taskUpdateErr(v, req))
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("tags"))
	assert.False(t, errs.Has("status"))
	assert.Contains(t, errs.Error(), "title must not be null")
}

func TestUpdateTaskRequest_AbsentFieldsAreNotNull(t *testing.T) {
	v := New()

	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"priority":4}`), &req))

	patch, err := v.TaskUpdate(req)
	require.NoError(t, err)
	require.NotNil(t, patch.Priority)
	assert.Equal(t, 4, *patch.Priority)
	assert.Nil(t, patch.Title)
}

func TestUpdateTaskRequest_TypeMismatchKeepsField(t *testing.T) {
	var req UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"priority":"high"}`), &req)

	var ute *json.UnmarshalTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "priority", ute.Field)
}

func TestTaskFilter(t *testing.T) {
	v := New()

	f, err := v.TaskFilter("")
	require.NoError(t, err)
	assert.Empty(t, f.Status)

	f, err = v.TaskFilter(" finished ")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskFinished, f.Status)

	_, err = v.TaskFilter("archived")
	assert.True(t, asErrors(t, err).Has("status"))
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: "email", Message: "email is required"},
		{Field: "priority", Message: "priority must be at most 5"},
	}
	assert.Equal(t, "email: email is required; priority: priority must be at most 5", errs.Error())
	assert.False(t, errs.Has("title"))
}
