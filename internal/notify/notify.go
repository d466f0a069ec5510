// Package notify is the console's toast center. Screens publish short
// user-facing messages; frontends subscribe and render them however they
// like (terminal line, status bar, test capture).
package notify

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Fixed user-facing messages shared across screens.
const (
	MsgLoadFailed       = "Không thể tải dữ liệu"
	MsgSaveFailed       = "Lưu thất bại"
	MsgDeleteFailed     = "Xóa thất bại"
	MsgActionFailed     = "Thao tác thất bại"
	MsgMissingInput     = "Vui lòng điền đầy đủ thông tin"
	MsgPasswordMismatch = "Mật khẩu không khớp"
	MsgSaved            = "Lưu thành công"
	MsgDeleted          = "Xóa thành công"
	MsgUpdated          = "Cập nhật thành công"
	MsgCreated          = "Tạo mới thành công"
	MsgActionDone       = "Thao tác thành công"
)

// Message is one toast.
type Message struct {
	Level Level
	Text  string
}

// Center fans messages out to subscribers.
type Center struct {
	mu   sync.RWMutex
	subs []func(Message)
}

func NewCenter() *Center {
	return &Center{}
}

// Subscribe registers a sink for future messages.
func (c *Center) Subscribe(fn func(Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Center) publish(level Level, text string) {
	c.mu.RLock()
	subs := make([]func(Message), len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()
	msg := Message{Level: level, Text: text}
	for _, fn := range subs {
		fn(msg)
	}
}

func (c *Center) Success(text string) { c.publish(LevelSuccess, text) }
func (c *Center) Error(text string)   { c.publish(LevelError, text) }
func (c *Center) Info(text string)    { c.publish(LevelInfo, text) }
