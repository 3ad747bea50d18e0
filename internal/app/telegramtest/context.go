// Package telegramtest содержит подделку telebot.Context для тестов обработчиков.
package telegramtest

import (
	"strings"
	"sync"

	"gopkg.in/telebot.v4"
)

// Sent одно отправленное сообщение
type Sent struct {
	What any
	Opts []any
}

// Context реализует telebot.Context в объеме, нужном обработчикам.
// Остальные методы достаются от встроенного nil-интерфейса и паникуют при вызове.
type Context struct {
	telebot.Context

	User *telebot.User
	Msg  *telebot.Message
	CB   *telebot.Callback

	// SendErr возвращается из Send, если задан
	SendErr error
	// OnSend вызывается в начале каждого Send, например чтобы задержать отправку
	OnSend func()

	mu        sync.Mutex
	sent      []Sent
	responses []*telebot.CallbackResponse
	store     map[string]any
}

// NewMessage контекст текстового сообщения. Для команд Payload заполняется как в telebot.
func NewMessage(userID int64, text string) *Context {
	user := &telebot.User{ID: userID, FirstName: "Test", Username: "tester"}
	msg := &telebot.Message{ID: 1, Sender: user, Chat: &telebot.Chat{ID: userID}, Text: text}
	if strings.HasPrefix(text, "/") {
		if _, payload, ok := strings.Cut(text, " "); ok {
			msg.Payload = strings.TrimSpace(payload)
		}
	}
	return &Context{User: user, Msg: msg}
}

// NewCallback контекст нажатия inline-кнопки
func NewCallback(userID int64, data string) *Context {
	user := &telebot.User{ID: userID, FirstName: "Test", Username: "tester"}
	msg := &telebot.Message{ID: 2, Chat: &telebot.Chat{ID: userID}}
	return &Context{
		User: user,
		Msg:  msg,
		CB:   &telebot.Callback{ID: "cb", Sender: user, Message: msg, Data: data},
	}
}

func (c *Context) Sender() *telebot.User { return c.User }

func (c *Context) Chat() *telebot.Chat {
	if c.Msg != nil {
		return c.Msg.Chat
	}
	return nil
}

func (c *Context) Message() *telebot.Message { return c.Msg }

func (c *Context) Callback() *telebot.Callback { return c.CB }

func (c *Context) Update() telebot.Update {
	u := telebot.Update{ID: 1, Callback: c.CB}
	if c.CB == nil {
		u.Message = c.Msg
	}
	return u
}

func (c *Context) Text() string {
	if c.Msg == nil {
		return ""
	}
	return c.Msg.Text
}

func (c *Context) Data() string {
	if c.CB != nil {
		return c.CB.Data
	}
	if c.Msg != nil {
		return c.Msg.Payload
	}
	return ""
}

func (c *Context) Args() []string {
	if c.CB != nil {
		return strings.Split(c.CB.Data, "|")
	}
	if c.Msg != nil && c.Msg.Payload != "" {
		return strings.Fields(c.Msg.Payload)
	}
	return nil
}

func (c *Context) Send(what any, opts ...any) error {
	if c.OnSend != nil {
		c.OnSend()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	c.sent = append(c.sent, Sent{What: what, Opts: opts})
	return nil
}

func (c *Context) Respond(resp ...*telebot.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(resp) == 0 {
		resp = []*telebot.CallbackResponse{{}}
	}
	c.responses = append(c.responses, resp...)
	return nil
}

func (c *Context) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = make(map[string]any)
	}
	c.store[key] = val
}

// Sent возвращает все отправленные сообщения
func (c *Context) Sent() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.sent...)
}

// Texts возвращает тексты отправленных сообщений, документы пропускаются
func (c *Context) Texts() []string {
	var texts []string
	for _, s := range c.Sent() {
		if text, ok := s.What.(string); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// LastText текст последнего отправленного сообщения
func (c *Context) LastText() string {
	texts := c.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Documents возвращает отправленные документы
func (c *Context) Documents() []*telebot.Document {
	var docs []*telebot.Document
	for _, s := range c.Sent() {
		if doc, ok := s.What.(*telebot.Document); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Markup возвращает inline-клавиатуру i-го отправленного сообщения
func (c *Context) Markup(i int) *telebot.ReplyMarkup {
	sent := c.Sent()
	if i < 0 || i >= len(sent) {
		return nil
	}
	for _, opt := range sent[i].Opts {
		switch o := opt.(type) {
		case *telebot.SendOptions:
			return o.ReplyMarkup
		case *telebot.ReplyMarkup:
			return o
		}
	}
	return nil
}

// Responses возвращает ответы на callback
func (c *Context) Responses() []*telebot.CallbackResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*telebot.CallbackResponse(nil), c.responses...)
}
