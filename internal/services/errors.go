package services

import "errors"

var (
	// ErrEmptyDescription rejects add/edit input that carries no task text.
	ErrEmptyDescription = errors.New("empty task description")
	// ErrMalformedPriority rejects a priority marker with no closing bracket.
	ErrMalformedPriority = errors.New("malformed priority marker")
	// ErrUnparsableDueDate rejects a "by ..." clause no parser understood.
	ErrUnparsableDueDate = errors.New("unparsable due date")
	// ErrTaskNotFound covers missing, foreign and already-completed tasks alike.
	ErrTaskNotFound = errors.New("pending task not found")
	// ErrRecipientBlocked is returned by messengers when the recipient refuses
	// direct messages; reminder delivery treats it as a terminal outcome.
	ErrRecipientBlocked = errors.New("recipient blocked direct messages")
)
