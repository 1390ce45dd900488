package model

import "errors"

var (
	// ErrNotFound is returned when a referenced image or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoParent is returned when a parent lookup targets a lineage root.
	ErrNoParent = errors.New("image has no parent")
	// ErrDuplicateUser is returned when explicit user creation collides
	// with an existing id.
	ErrDuplicateUser = errors.New("user already exists")
)
