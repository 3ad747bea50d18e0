package model

import "errors"

// Ошибки предметной области. Все они восстановимы и показываются пользователю.
var (
	ErrTopicNotFound     = errors.New("topic not found")
	ErrEmptyQuestionPool = errors.New("topic has no questions")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrNoActiveSession   = errors.New("no active interview session")
	ErrStaleQuestion     = errors.New("question is no longer current")
	ErrDuplicateAnswer   = errors.New("question already answered")
	ErrInvalidOption     = errors.New("invalid answer option")
)
