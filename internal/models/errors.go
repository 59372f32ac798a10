package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrAlreadyReviewed    = errors.New("models: visitor already reviewed this business")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrAlreadyFavorite    = errors.New("business already in favorites")
)
