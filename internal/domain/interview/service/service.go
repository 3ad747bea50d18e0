package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/domain/sessions"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
)

const skipWord = "skip"

// Observer получает события интервью. Используется для метрик.
type Observer interface {
	InterviewStarted(topic string)
	QuestionResolved(topic string, result model.QuestionResult)
	InterviewCompleted(report model.Report)
}

type nopObserver struct{}

func (nopObserver) InterviewStarted(string)                        {}
func (nopObserver) QuestionResolved(string, model.QuestionResult) {}
func (nopObserver) InterviewCompleted(model.Report)               {}

// Step результат обработки ответа: решенный вопрос и либо следующий вопрос, либо итоговый отчет
type Step struct {
	Resolved model.QuestionResult
	Next     *model.QuestionView
	Report   *model.Report
}

// InterviewService конечный автомат пробного интервью.
// Все изменения сессии выполняются под мьютексом пользователя из реестра.
type InterviewService struct {
	registry *sessions.Registry
	clock    timer.Clock
	observer Observer
}

// NewInterviewService создает новый экземпляр InterviewService
func NewInterviewService(registry *sessions.Registry, observer Observer) *InterviewService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &InterviewService{
		registry: registry,
		clock:    registry.Clock(),
		observer: observer,
	}
}

// Start начинает новое интервью по теме и возвращает первый вопрос
func (s *InterviewService) Start(userID int64, topic string) (model.QuestionView, error) {
	unlock := s.registry.Lock(userID)
	defer unlock()

	session, err := s.registry.Start(userID, strings.ToLower(strings.TrimSpace(topic)))
	if err != nil {
		return model.QuestionView{}, err
	}
	s.observer.InterviewStarted(session.TopicName)

	return view(session), nil
}

// Current возвращает текущий вопрос активного интервью
func (s *InterviewService) Current(userID int64) (model.QuestionView, error) {
	unlock := s.registry.Lock(userID)
	defer unlock()

	session, ok := s.registry.Get(userID)
	if !ok {
		return model.QuestionView{}, model.ErrNoActiveSession
	}
	return view(session), nil
}

// Cancel прерывает интервью без отчета
func (s *InterviewService) Cancel(userID int64) error {
	unlock := s.registry.Lock(userID)
	defer unlock()

	if _, ok := s.registry.Get(userID); !ok {
		return model.ErrNoActiveSession
	}
	s.registry.Remove(userID)
	return nil
}

// SubmitAnswer обрабатывает ответ, набранный текстом.
// Для вопросов с вариантами ожидается номер варианта или "skip".
func (s *InterviewService) SubmitAnswer(userID int64, raw string) (Step, error) {
	unlock := s.registry.Lock(userID)
	defer unlock()

	session, ok := s.registry.Get(userID)
	if !ok {
		return Step{}, model.ErrNoActiveSession
	}
	question, ok := session.Current()
	if !ok {
		return Step{}, model.ErrNoActiveSession
	}

	now := s.clock.Now()
	elapsed := now.Sub(session.QuestionStartTime)
	answer := strings.TrimSpace(raw)

	var result model.QuestionResult
	switch {
	case elapsed > session.TimeLimit:
		result = timeoutResult(question, answer, session.TimeLimit)
	case question.IsMultipleChoice():
		if strings.EqualFold(answer, skipWord) {
			result = skippedResult(question, elapsed)
			break
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(question.Options) {
			return Step{}, fmt.Errorf("answer %q: %w", answer, model.ErrInvalidOption)
		}
		result = selectedResult(question, n-1, elapsed)
	case strings.EqualFold(answer, skipWord):
		result = skippedResult(question, elapsed)
	default:
		result = model.QuestionResult{
			Question:       question,
			Outcome:        model.OutcomeAnswered,
			UserAnswer:     answer,
			SelectedOption: -1,
			IsCorrect:      GradeFreeText(answer, question.ReferenceAnswer),
			TimeTaken:      timer.WholeSeconds(elapsed),
		}
	}

	return s.advance(session, result, now), nil
}

// SelectOption обрабатывает нажатие кнопки варианта ответа
func (s *InterviewService) SelectOption(userID int64, sessionTag string, questionID, option int) (Step, error) {
	unlock := s.registry.Lock(userID)
	defer unlock()

	session, question, err := s.pressed(userID, sessionTag, questionID)
	if err != nil {
		return Step{}, err
	}
	if option < 0 || option >= len(question.Options) {
		return Step{}, fmt.Errorf("option %d: %w", option, model.ErrInvalidOption)
	}

	now := s.clock.Now()
	elapsed := now.Sub(session.QuestionStartTime)

	var result model.QuestionResult
	if elapsed > session.TimeLimit {
		result = timeoutResult(question, "", session.TimeLimit)
	} else {
		result = selectedResult(question, option, elapsed)
	}

	return s.advance(session, result, now), nil
}

// SkipQuestion обрабатывает нажатие кнопки пропуска вопроса
func (s *InterviewService) SkipQuestion(userID int64, sessionTag string, questionID int) (Step, error) {
	unlock := s.registry.Lock(userID)
	defer unlock()

	session, question, err := s.pressed(userID, sessionTag, questionID)
	if err != nil {
		return Step{}, err
	}

	now := s.clock.Now()
	elapsed := now.Sub(session.QuestionStartTime)

	var result model.QuestionResult
	if elapsed > session.TimeLimit {
		result = timeoutResult(question, "", session.TimeLimit)
	} else {
		result = skippedResult(question, elapsed)
	}

	return s.advance(session, result, now), nil
}

// pressed проверяет, что кнопка относится к текущему вопросу активной сессии
func (s *InterviewService) pressed(userID int64, sessionTag string, questionID int) (*model.InterviewSession, model.Question, error) {
	session, ok := s.registry.Get(userID)
	if !ok {
		if s.registry.Answered(userID, sessionTag, questionID) {
			return nil, model.Question{}, fmt.Errorf("question %d: %w", questionID, model.ErrDuplicateAnswer)
		}
		return nil, model.Question{}, model.ErrNoActiveSession
	}
	if session.Tag() != sessionTag {
		return nil, model.Question{}, fmt.Errorf("session %s: %w", sessionTag, model.ErrStaleQuestion)
	}
	if session.Answered(questionID) {
		return nil, model.Question{}, fmt.Errorf("question %d: %w", questionID, model.ErrDuplicateAnswer)
	}
	question, ok := session.Current()
	if !ok || question.ID != questionID {
		return nil, model.Question{}, fmt.Errorf("question %d: %w", questionID, model.ErrStaleQuestion)
	}
	return session, question, nil
}

// advance записывает результат и переходит к следующему вопросу или завершает интервью
func (s *InterviewService) advance(session *model.InterviewSession, result model.QuestionResult, now time.Time) Step {
	session.Results = append(session.Results, result)
	session.CurrentIndex++
	session.QuestionStartTime = now
	s.observer.QuestionResolved(session.TopicName, result)

	step := Step{Resolved: result}
	if session.Completed() {
		report := BuildReport(session, now)
		s.registry.Complete(session.UserID)
		s.observer.InterviewCompleted(report)
		step.Report = &report
		return step
	}

	next := view(session)
	step.Next = &next
	return step
}

func view(session *model.InterviewSession) model.QuestionView {
	question, _ := session.Current()
	return model.QuestionView{
		SessionTag: session.Tag(),
		Topic:      session.TopicName,
		Index:      session.CurrentIndex,
		Total:      len(session.Questions),
		Question:   question,
		TimeLimit:  session.TimeLimit,
		Deadline:   session.Deadline(),
	}
}

func timeoutResult(q model.Question, answer string, limit time.Duration) model.QuestionResult {
	return model.QuestionResult{
		Question:       q,
		Outcome:        model.OutcomeTimeout,
		UserAnswer:     answer,
		SelectedOption: -1,
		TimeTaken:      timer.WholeSeconds(limit),
	}
}

func skippedResult(q model.Question, elapsed time.Duration) model.QuestionResult {
	return model.QuestionResult{
		Question:       q,
		Outcome:        model.OutcomeSkipped,
		UserAnswer:     skipWord,
		SelectedOption: -1,
		TimeTaken:      timer.WholeSeconds(elapsed),
	}
}

func selectedResult(q model.Question, option int, elapsed time.Duration) model.QuestionResult {
	return model.QuestionResult{
		Question:       q,
		Outcome:        model.OutcomeSelected,
		UserAnswer:     q.Options[option],
		SelectedOption: option,
		IsCorrect:      q.IsCorrectOption(option),
		TimeTaken:      timer.WholeSeconds(elapsed),
	}
}
