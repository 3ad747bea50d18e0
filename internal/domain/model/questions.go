package model

// Difficulty уровень сложности вопроса
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties задает порядок уровней сложности в отчетах
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Question представляет вопрос из банка вопросов.
// Если Options пуст, ответ проверяется как свободный текст, иначе это вопрос с вариантами ответа.
type Question struct {
	ID              int        `json:"id" validate:"gte=0"`
	Prompt          string     `json:"question" validate:"required"`
	ReferenceAnswer string     `json:"answer" validate:"required"`
	Options         []string   `json:"options,omitempty" validate:"omitempty,len=3,dive,required"`
	CorrectOption   *int       `json:"correctOption,omitempty"`
	Difficulty      Difficulty `json:"difficulty" validate:"oneof=easy medium hard"`
	Tags            []string   `json:"tags,omitempty"`
}

// IsMultipleChoice сообщает, отвечают ли на вопрос выбором варианта
func (q Question) IsMultipleChoice() bool {
	return len(q.Options) > 0
}

// IsCorrectOption проверяет выбранный вариант ответа
func (q Question) IsCorrectOption(index int) bool {
	return q.CorrectOption != nil && *q.CorrectOption == index
}

// CorrectOptionText возвращает текст правильного варианта, если он задан
func (q Question) CorrectOptionText() string {
	if q.CorrectOption == nil || *q.CorrectOption < 0 || *q.CorrectOption >= len(q.Options) {
		return ""
	}
	return q.Options[*q.CorrectOption]
}

// Topic представляет тему с упорядоченным списком вопросов
type Topic struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions" validate:"unique=ID,dive"`
}

// TopicSummary краткая информация о теме для списков и справки
type TopicSummary struct {
	Name          string
	Description   string
	QuestionCount int
}
