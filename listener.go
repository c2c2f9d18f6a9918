package boardio

import (
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/input"
)

// InputListener receives what the board does not consume: every key the
// cursor does not handle, and a notification after each cursor move. The
// session passed to the callbacks is the one delivering them; use it to
// update cells, show dialogs or stop the loop.
type InputListener interface {
	HandleKey(key input.Key, s *Session)
	CursorMoved(pos coordinate.Position, s *Session)
}

// ListenerFuncs adapts plain functions to InputListener. Either field may
// be nil; programs without a cursor typically set OnKey only.
type ListenerFuncs struct {
	OnKey         func(key input.Key, s *Session)
	OnCursorMoved func(pos coordinate.Position, s *Session)
}

func (l ListenerFuncs) HandleKey(key input.Key, s *Session) {
	if l.OnKey != nil {
		l.OnKey(key, s)
	}
}

func (l ListenerFuncs) CursorMoved(pos coordinate.Position, s *Session) {
	if l.OnCursorMoved != nil {
		l.OnCursorMoved(pos, s)
	}
}
