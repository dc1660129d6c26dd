package domain

import "errors"

type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateSubmitting State = "submitting"
	StateDeleting   State = "deleting"
)

var (
	ErrBusy       = errors.New("editor is busy")
	ErrClosed     = errors.New("editor is closed")
	ErrNotEditing = errors.New("editor is not editing a record")
	ErrNotFound   = errors.New("record not found")
)
