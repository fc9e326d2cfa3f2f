package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/enrollment"
	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
)

// fakeEnrollmentRepo is an in-memory enrollment.Repository for tests.
type fakeEnrollmentRepo struct {
	courses []enrollment.EnrolledCourse
	listErr error
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, course *enrollment.EnrolledCourse) error {
	f.courses = append(f.courses, *course)
	return nil
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id string) (*enrollment.EnrolledCourse, error) {
	for i := range f.courses {
		if f.courses[i].ID == id {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, shared.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentRepo) List(ctx context.Context) ([]enrollment.EnrolledCourse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.courses, nil
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, course *enrollment.EnrolledCourse) error {
	for i := range f.courses {
		if f.courses[i].ID == course.ID {
			f.courses[i] = *course
			return nil
		}
	}
	return shared.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, id string) error {
	for i := range f.courses {
		if f.courses[i].ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return shared.ErrEnrollmentNotFound
}

func TestGetScheduleHandler_WeekLayout(t *testing.T) {
	repo := &fakeEnrollmentRepo{courses: []enrollment.EnrolledCourse{
		{
			ID: "1", Code: "DAA", Section: "BCS-5B",
			Days:      []shared.Weekday{shared.Monday, shared.Wednesday},
			StartTime: "11:00", EndTime: "11:50", CreditHours: 3,
		},
		{
			ID: "2", Code: "MAD", Section: "BCS-5B",
			Days:      []shared.Weekday{shared.Monday},
			StartTime: "08:00", EndTime: "08:50", CreditHours: 3,
		},
		{
			ID: "3", Code: "OS Lab", Section: "BCS-5B",
			Days:      []shared.Weekday{shared.Friday},
			StartTime: "14:00", EndTime: "16:50", CreditHours: 1,
		},
	}}
	handler := NewGetScheduleHandler(repo)

	result, err := handler.Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)

	assert.Len(t, result.Courses, 3)
	assert.Equal(t, 7, result.TotalCreditHours)

	// Empty days are omitted; Monday, Wednesday, Friday remain.
	require.Len(t, result.Week, 3)
	assert.Equal(t, shared.Monday, result.Week[0].Day)
	assert.Equal(t, shared.Wednesday, result.Week[1].Day)
	assert.Equal(t, shared.Friday, result.Week[2].Day)

	// Monday is sorted by start time: MAD at 08:00 before DAA at 11:00.
	monday := result.Week[0].Courses
	require.Len(t, monday, 2)
	assert.Equal(t, "MAD", monday[0].Code)
	assert.Equal(t, "DAA", monday[1].Code)
}

func TestGetScheduleHandler_DayFilter(t *testing.T) {
	repo := &fakeEnrollmentRepo{courses: []enrollment.EnrolledCourse{
		{ID: "1", Code: "DAA", Section: "BCS-5B", Days: []shared.Weekday{shared.Monday}, StartTime: "11:00", EndTime: "11:50"},
		{ID: "2", Code: "SDA", Section: "BCS-5B", Days: []shared.Weekday{shared.Tuesday}, StartTime: "09:00", EndTime: "09:50"},
	}}
	handler := NewGetScheduleHandler(repo)

	result, err := handler.Handle(context.Background(), GetScheduleQuery{Day: "tuesday"})
	require.NoError(t, err)

	require.Len(t, result.Week, 1)
	assert.Equal(t, shared.Tuesday, result.Week[0].Day)
	require.Len(t, result.Week[0].Courses, 1)
	assert.Equal(t, "SDA", result.Week[0].Courses[0].Code)

	// The flat list is not filtered, only the week layout is.
	assert.Len(t, result.Courses, 2)
}

func TestGetScheduleHandler_InvalidDay(t *testing.T) {
	handler := NewGetScheduleHandler(&fakeEnrollmentRepo{})

	_, err := handler.Handle(context.Background(), GetScheduleQuery{Day: "Someday"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGetScheduleHandler_RepoFailure(t *testing.T) {
	repo := &fakeEnrollmentRepo{listErr: errors.New("connection reset")}
	handler := NewGetScheduleHandler(repo)

	_, err := handler.Handle(context.Background(), GetScheduleQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list enrollment")
}

func TestGetScheduleHandler_EmptyList(t *testing.T) {
	handler := NewGetScheduleHandler(&fakeEnrollmentRepo{})

	result, err := handler.Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)
	assert.Empty(t, result.Courses)
	assert.Empty(t, result.Week)
	assert.Zero(t, result.TotalCreditHours)
}
