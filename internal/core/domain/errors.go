package domain

import "errors"

var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrEmptyMessage = errors.New("empty message content")
var ErrOAuthStateMismatch = errors.New("oauth state mismatch")
var ErrOAuthFailed = errors.New("oauth authentication failed")
