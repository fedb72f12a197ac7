package chatgateway

// SendMessageRequest тело запроса на отправку сообщения
type SendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
