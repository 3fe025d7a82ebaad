package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/befuji/studio-backend/internal/goroutine"
	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
	"github.com/befuji/studio-backend/internal/store"
	"github.com/befuji/studio-backend/internal/validation"
)

// ReviewCollection описывает взаимодействие сервиса с хранилищем отзывов.
type ReviewCollection interface {
	Read(ctx context.Context) ([]models.Review, error)
	Append(ctx context.Context, record models.Review) (models.Review, error)
	PatchByID(ctx context.Context, id string, fields map[string]any) (models.Review, error)
	Reorder(ctx context.Context, orderedIDs []string) ([]models.Review, error)
	DeleteByID(ctx context.Context, id string) error
}

// ReviewNotifier отправляет письмо о новом отзыве.
type ReviewNotifier interface {
	NotifyReviewCreated(ctx context.Context, review models.Review) error
}

// ReviewService содержит бизнес-логику работы с отзывами.
type ReviewService struct {
	collection ReviewCollection
	notifier   ReviewNotifier
	now        func() time.Time
}

// NewReviewService создаёт новый сервис отзывов. notifier может быть nil,
// тогда письма о новых отзывах не отправляются.
func NewReviewService(collection ReviewCollection, notifier ReviewNotifier) *ReviewService {
	return &ReviewService{
		collection: collection,
		notifier:   notifier,
		now:        time.Now,
	}
}

// ListReviews возвращает все отзывы в порядке показа.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.collection.Read(ctx)
}

// CreateReview создаёт отзыв из формы на сайте. Имя, услуга и текст
// обязательны; текст обрезается до лимита, а не отклоняется.
func (s *ReviewService) CreateReview(ctx context.Context, name, serviceName, company, text string) (models.Review, error) {
	if err := validation.ValidateNonEmpty("имя", name); err != nil {
		return models.Review{}, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("услуга", serviceName); err != nil {
		return models.Review{}, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("текст отзыва", text); err != nil {
		return models.Review{}, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	now := s.now()
	review := models.Review{
		ID:        fmt.Sprintf("r%d", now.UnixMilli()),
		Name:      validation.Truncate(name, models.MaxReviewNameLength),
		Service:   serviceName,
		Company:   validation.Truncate(company, models.MaxReviewCompanyLength),
		Text:      validation.Truncate(text, models.MaxReviewTextLength),
		Featured:  false,
		CreatedAt: now.UTC().Format(models.CreatedAtLayout),
	}

	created, err := s.collection.Append(ctx, review)
	if err != nil {
		return models.Review{}, err
	}

	// Уведомление не должно задерживать ответ и не должно ронять создание.
	if s.notifier != nil {
		goroutine.SafeGo(func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.NotifyReviewCreated(notifyCtx, created); err != nil {
				logger.WithComponent("review_service").Warnf("письмо о новом отзыве не отправилось: %v", err)
			}
		})
	}

	return created, nil
}

// PatchReview частично обновляет отзыв по id.
func (s *ReviewService) PatchReview(ctx context.Context, id string, fields map[string]any) (models.Review, error) {
	updated, err := s.collection.PatchByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Review{}, apperror.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return updated, nil
}

// ReorderReviews перестраивает отзывы по списку id. Отзывы, не попавшие в
// список, сохраняются в конце - в отличие от проектов, здесь перестановка
// ничего не удаляет.
func (s *ReviewService) ReorderReviews(ctx context.Context, orderedIDs []string) ([]models.Review, error) {
	return s.collection.Reorder(ctx, orderedIDs)
}

// DeleteReview удаляет отзыв по id.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	return s.collection.DeleteByID(ctx, id)
}
