package service

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
	"github.com/befuji/studio-backend/internal/store"
	"github.com/befuji/studio-backend/internal/validation"
)

// ProjectCollection описывает взаимодействие сервиса с хранилищем проектов.
type ProjectCollection interface {
	Read(ctx context.Context) ([]models.Project, error)
	Append(ctx context.Context, record models.Project) (models.Project, error)
	PatchByID(ctx context.Context, id string, fields map[string]any) (models.Project, error)
	Reorder(ctx context.Context, orderedIDs []string) ([]models.Project, error)
	DeleteByID(ctx context.Context, id string) error
}

// ProjectService содержит бизнес-логику работы с портфолио.
type ProjectService struct {
	collection ProjectCollection
}

// NewProjectService создаёт новый сервис портфолио.
func NewProjectService(collection ProjectCollection) *ProjectService {
	return &ProjectService{collection: collection}
}

// ListProjects возвращает все проекты в порядке показа.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.collection.Read(ctx)
}

// CreateProject добавляет проект в конец портфолио. Если id не задан, он
// выводится из ключа видеофайла; без видео генерируется случайный.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	if err := validation.ValidateLength("название проекта", project.Title, 0, validation.MaxProjectTitleLength); err != nil {
		return models.Project{}, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	if project.ID == "" {
		if project.Video != "" {
			project.ID = videoBaseName(project.Video)
		} else {
			project.ID = uuid.NewString()
		}
	}
	if project.Title == "" {
		project.Title = TitleFromKey(project.ID)
	}

	return s.collection.Append(ctx, project)
}

// PatchProject частично обновляет проект по id.
func (s *ProjectService) PatchProject(ctx context.Context, id string, fields map[string]any) (models.Project, error) {
	updated, err := s.collection.PatchByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Project{}, apperror.ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return updated, nil
}

// ReorderProjects перестраивает портфолио по списку id. Проекты, не попавшие
// в список, из портфолио выпадают - этим и живёт удаление через drag-n-drop.
func (s *ProjectService) ReorderProjects(ctx context.Context, orderedIDs []string) ([]models.Project, error) {
	return s.collection.Reorder(ctx, orderedIDs)
}

// DeleteProject удаляет проект по id.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.collection.DeleteByID(ctx, id)
}

// TitleFromKey превращает ключ видеофайла в человекочитаемое название.
func TitleFromKey(key string) string {
	base := videoBaseName(key)
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}

// videoBaseName обрезает путь и расширение у ключа видеофайла.
func videoBaseName(video string) string {
	base := path.Base(video)
	return strings.TrimSuffix(base, path.Ext(base))
}
