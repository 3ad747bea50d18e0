package dto

// TopicsResponse список тем банка вопросов
type TopicsResponse struct {
	Topics []TopicInfo `json:"topics"`
}

type TopicInfo struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
}
