package model

// Outcome описывает, чем закончился вопрос интервью
type Outcome string

const (
	OutcomeAnswered Outcome = "answered" // ответ свободным текстом
	OutcomeSelected Outcome = "selected" // выбран вариант ответа
	OutcomeSkipped  Outcome = "skipped"
	OutcomeTimeout  Outcome = "timeout"
)

// QuestionResult результат одного вопроса интервью. После добавления в сессию не меняется.
type QuestionResult struct {
	Question       Question
	Outcome        Outcome
	UserAnswer     string
	SelectedOption int
	IsCorrect      bool
	TimeTaken      int // секунды
}

// Label возвращает метку результата для отчета
func (r QuestionResult) Label() string {
	switch r.Outcome {
	case OutcomeSkipped:
		return "Skipped"
	case OutcomeTimeout:
		return "Timeout"
	}
	if r.IsCorrect {
		return "Correct"
	}
	return "Incorrect"
}

// AnswerText возвращает ответ пользователя в читаемом виде
func (r QuestionResult) AnswerText() string {
	switch r.Outcome {
	case OutcomeSkipped:
		return "SKIPPED"
	case OutcomeTimeout:
		return "TIME OUT"
	case OutcomeSelected:
		if r.SelectedOption >= 0 && r.SelectedOption < len(r.Question.Options) {
			return r.Question.Options[r.SelectedOption]
		}
	}
	return r.UserAnswer
}
