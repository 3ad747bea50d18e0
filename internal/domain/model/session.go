package model

import (
	"strings"
	"time"
)

// sessionTagLength длина короткого идентификатора сессии в данных кнопок
const sessionTagLength = 8

// InterviewSession состояние пробного интервью одного пользователя.
// CurrentIndex только растет; сессия удаляется, когда CurrentIndex == len(Questions).
type InterviewSession struct {
	ID                string
	UserID            int64
	TopicName         string
	Questions         []Question
	CurrentIndex      int
	Results           []QuestionResult
	StartTime         time.Time
	QuestionStartTime time.Time
	TimeLimit         time.Duration
}

// Tag возвращает короткий идентификатор сессии, которым помечаются кнопки ответов
func (s *InterviewSession) Tag() string {
	tag := strings.ReplaceAll(s.ID, "-", "")
	if len(tag) > sessionTagLength {
		tag = tag[:sessionTagLength]
	}
	return tag
}

// Current возвращает текущий вопрос
func (s *InterviewSession) Current() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Deadline момент, после которого ответ на текущий вопрос считается просроченным
func (s *InterviewSession) Deadline() time.Time {
	return s.QuestionStartTime.Add(s.TimeLimit)
}

// Completed сообщает, что на все вопросы получен результат
func (s *InterviewSession) Completed() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// Answered проверяет, есть ли уже результат для вопроса с данным ID
func (s *InterviewSession) Answered(questionID int) bool {
	for _, r := range s.Results {
		if r.Question.ID == questionID {
			return true
		}
	}
	return false
}

// Snapshot возвращает копию сессии, не разделяющую срезы с оригиналом
func (s *InterviewSession) Snapshot() InterviewSession {
	cp := *s
	cp.Questions = append([]Question(nil), s.Questions...)
	cp.Results = append([]QuestionResult(nil), s.Results...)
	return cp
}

// QuestionView то, что нужно показать пользователю для текущего вопроса интервью
type QuestionView struct {
	SessionTag string
	Topic      string
	Index      int // с нуля
	Total      int
	Question   Question
	TimeLimit  time.Duration
	Deadline   time.Time
}
