package model

// Константы для данных inline-кнопок. Привязаны к разбору в пакете callback.
// Не следует изменять значения без изменения логики разбора.
const (
	MenuKey           = "menu"
	HelpKey           = "show_help"
	TopicsKey         = "view_topics"
	PracticeModeKey   = "practice_mode"
	TestModeKey       = "test_mode"
	PracticeTopicKey  = "practice"
	PracticeAnswerKey = "pans"
	StartInterviewKey = "interview"
	SelectOptionKey   = "opt"
	SkipQuestionKey   = "skip"
)

// Button кнопка ответа: подпись и непрозрачные данные callback
type Button struct {
	Label   string
	Payload string
}

// Document файл, который нужно отправить вместе с ответом
type Document struct {
	FileName string
	MIME     string
	Caption  string
	Data     []byte
}

// Reply одно исходящее сообщение: текст, строки кнопок и необязательный файл
type Reply struct {
	Text     string
	Buttons  [][]Button
	Document *Document
}
