package vfs

import "errors"

var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrAlreadyExists = errors.New("destination already exists")
	ErrNotADirectory = errors.New("not a directory")
	ErrNotAFile      = errors.New("not a file")
	ErrInvalidName   = errors.New("invalid name")
)
