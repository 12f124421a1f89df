package service

import (
	"context"
	"fmt"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/repository"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type analyticsService struct {
	logger *zap.Logger
	store  repository.Store
}

func newAnalyticsService(logger *zap.Logger, store repository.Store) Analytics {
	return &analyticsService{
		logger: logger,
		store:  store,
	}
}

// CountLikes counts likes between date_from 00:00 and date_to 00:00 UTC,
// both inclusive. Likes made later on the date_to day are not counted.
func (s *analyticsService) CountLikes(ctx context.Context, dateFrom string, dateTo string) (*dto.AnalyticsResponse, error) {
	from, to, err := parseDateRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	likes, err := s.store.Likes().FindInRange(ctx, from, to)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find likes from %s to %s: %s", dateFrom, dateTo, err.Error())
		return nil, ErrInternal
	}

	return &dto.AnalyticsResponse{
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		LikesCount: len(likes),
		Details:    fmt.Sprintf("%d likes in total.", len(likes)),
	}, nil
}

func parseDateRange(dateFrom string, dateTo string) (time.Time, time.Time, error) {
	fields := make(map[string]string)

	from, err := time.Parse(dateLayout, dateFrom)
	if err != nil {
		fields["date_from"] = "Date has wrong format. Use YYYY-MM-DD."
	}
	to, err := time.Parse(dateLayout, dateTo)
	if err != nil {
		fields["date_to"] = "Date has wrong format. Use YYYY-MM-DD."
	}
	if len(fields) == 0 && to.Before(from) {
		fields["date_to"] = "Ensure date_to is not earlier than date_from."
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &ValidationError{Fields: fields}
	}

	return from, to, nil
}
