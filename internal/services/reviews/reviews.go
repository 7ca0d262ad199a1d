package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	govalidator "github.com/go-playground/validator/v10"

	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/lib/validator"
	"showtimes/proj/internal/storage"
)

const keyPrefix = "review:"

type ReviewService struct {
	log       *slog.Logger
	storage   storage.KeyValue
	validator *govalidator.Validate
}

func New(log *slog.Logger, storage storage.KeyValue, validator *govalidator.Validate) *ReviewService {
	return &ReviewService{
		log:       log,
		storage:   storage,
		validator: validator,
	}
}

// Save creates or overwrites the single review kept for movieID.
func (s *ReviewService) Save(ctx context.Context, movieID string, review models.Review) error {
	const op = "reviews.ReviewService.Save"
	log := s.log.With("op", op, "movie_id", movieID)
	if movieID == "" {
		return ErrMissingID
	}
	if errs := validator.ValidateStruct(s.validator, review); errs != nil {
		log.Info("invalid review", "errors", errs)
		return &ValidationError{Fields: errs}
	}
	raw, err := json.Marshal(review)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, keyPrefix+movieID, raw); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("review saved", "rating", review.Rating)
	return nil
}

// Get returns nil when no review exists or the stored value cannot be read.
func (s *ReviewService) Get(ctx context.Context, movieID string) *models.Review {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "movie_id", movieID)
	raw, err := s.storage.Get(ctx, keyPrefix+movieID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to read review", "errMsg", err.Error())
		}
		return nil
	}
	var review models.Review
	if err := json.Unmarshal(raw, &review); err != nil {
		log.Error("corrupt review", "errMsg", err.Error())
		return nil
	}
	return &review
}

func (s *ReviewService) Delete(ctx context.Context, movieID string) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "movie_id", movieID)
	if err := s.storage.Delete(ctx, keyPrefix+movieID); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}
