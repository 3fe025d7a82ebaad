package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
	"github.com/befuji/studio-backend/internal/store"
)

type mockProjectCollection struct {
	mock.Mock
}

func (m *mockProjectCollection) Read(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *mockProjectCollection) Append(ctx context.Context, record models.Project) (models.Project, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *mockProjectCollection) PatchByID(ctx context.Context, id string, fields map[string]any) (models.Project, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *mockProjectCollection) Reorder(ctx context.Context, orderedIDs []string) ([]models.Project, error) {
	args := m.Called(ctx, orderedIDs)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *mockProjectCollection) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProjectService_CreateProject_IDFromVideo(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)
	ctx := context.Background()

	var appended models.Project
	collection.On("Append", ctx, mock.AnythingOfType("models.Project")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(models.Project)
		}).
		Return(models.Project{}, nil)

	_, err := svc.CreateProject(ctx, models.Project{Video: "/api/videos/honda-NSX_reel.mp4"})
	assert.NoError(t, err)
	assert.Equal(t, "honda-NSX_reel", appended.ID)
	// Название выводится из id: дефисы и подчёркивания становятся пробелами.
	assert.Equal(t, "honda NSX reel", appended.Title)
}

func TestProjectService_CreateProject_GeneratedID(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)
	ctx := context.Background()

	var appended models.Project
	collection.On("Append", ctx, mock.AnythingOfType("models.Project")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(models.Project)
		}).
		Return(models.Project{}, nil)

	_, err := svc.CreateProject(ctx, models.Project{Title: "Без видео"})
	assert.NoError(t, err)
	assert.Equal(t, "Без видео", appended.Title)

	_, parseErr := uuid.Parse(appended.ID)
	assert.NoError(t, parseErr, "без видео id должен быть случайным uuid")
}

func TestProjectService_CreateProject_KeepsExplicitID(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)
	ctx := context.Background()

	collection.On("Append", ctx, models.Project{ID: "my-id", Title: "my id", Video: "/api/videos/other.mp4"}).
		Return(models.Project{ID: "my-id"}, nil)

	created, err := svc.CreateProject(ctx, models.Project{ID: "my-id", Video: "/api/videos/other.mp4"})
	assert.NoError(t, err)
	assert.Equal(t, "my-id", created.ID)
	collection.AssertExpectations(t)
}

func TestProjectService_CreateProject_TitleTooLong(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)

	_, err := svc.CreateProject(context.Background(), models.Project{
		Title: strings.Repeat("a", 201),
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	collection.AssertNotCalled(t, "Append")
}

func TestProjectService_PatchProject_NotFound(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)
	ctx := context.Background()

	collection.On("PatchByID", ctx, "ghost", map[string]any{"title": "X"}).
		Return(models.Project{}, store.ErrRecordNotFound)

	_, err := svc.PatchProject(ctx, "ghost", map[string]any{"title": "X"})
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}

func TestProjectService_ReorderProjects(t *testing.T) {
	collection := new(mockProjectCollection)
	svc := NewProjectService(collection)
	ctx := context.Background()

	expected := []models.Project{{ID: "b"}, {ID: "a"}}
	collection.On("Reorder", ctx, []string{"b", "a"}).Return(expected, nil)

	ordered, err := svc.ReorderProjects(ctx, []string{"b", "a"})
	assert.NoError(t, err)
	assert.Equal(t, expected, ordered)
}

func TestTitleFromKey(t *testing.T) {
	assert.Equal(t, "honda NSX reel", TitleFromKey("honda-NSX_reel.mp4"))
	assert.Equal(t, "showreel 2025", TitleFromKey("/api/videos/showreel_2025.mov"))
	assert.Equal(t, "clip", TitleFromKey("clip"))
}
