package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BloggingApp/blog-service/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInternal  = errors.New("internal server error")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("you do not have permission to perform this action")
	ErrNoBackups = fmt.Errorf("%w: post has no backups", ErrNotFound)
)

// ValidationError carries one message per offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// lookupError turns any failure to load an entity into ErrNotFound. Causes
// other than a missing row are logged first.
func lookupError(logger *zap.Logger, err error, entity string, id int64) error {
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Sugar().Errorf("failed to find %s(%d): %s", entity, id, err.Error())
	}

	return ErrNotFound
}

// operationError passes engine errors through and hides everything else
// behind ErrInternal.
func operationError(logger *zap.Logger, err error, format string, args ...any) error {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden), errors.As(err, &validationErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	}

	logger.Sugar().Errorf(format+": %s", append(args, err.Error())...)

	return ErrInternal
}
