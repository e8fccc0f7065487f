package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/coursehub/internal/domain"
	"github.com/waste3d/coursehub/internal/infrastructure/repository"
	"github.com/waste3d/coursehub/internal/infrastructure/repository/testutil"
	"github.com/waste3d/coursehub/internal/logger"
)

func TestLessonCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	testutil.SeedCourse(t, db, 1, "A")
	testutil.SeedCourse(t, db, 2, "B")
	repo := repository.NewCourseRepository(db, nil, logger.Nop())

	video := "https://video.test/1"
	l := &domain.Lesson{CourseID: 1, Title: "Intro", Content: "hello", VideoURL: &video}
	require.NoError(t, repo.CreateLesson(ctx, l))
	require.NotZero(t, l.ID)

	got, err := repo.GetLesson(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, got.CompletionStatus)
	require.NotNil(t, got.VideoURL)
	assert.Equal(t, video, *got.VideoURL)

	l.CourseID = 2
	l.Title = "Moved"
	l.VideoURL = nil
	require.NoError(t, repo.UpdateLesson(ctx, l))

	lessons, err := repo.LessonsByCourse(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Moved", lessons[0].Title)
	assert.Nil(t, lessons[0].VideoURL)

	require.NoError(t, repo.DeleteLesson(ctx, l.ID))
	_, err = repo.GetLesson(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestLessonRequiresCourse(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCourseRepository(testutil.DB(t), nil, logger.Nop())

	err := repo.CreateLesson(ctx, &domain.Lesson{CourseID: 99, Title: "orphan"})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	assert.ErrorIs(t, repo.DeleteLesson(ctx, 99), domain.ErrLessonNotFound)
	assert.ErrorIs(t, repo.UpdateLesson(ctx, &domain.Lesson{ID: 99}), domain.ErrLessonNotFound)
}
