// Package boardio runs terminal board applications: it owns the terminal
// (raw mode, alternate screen, cursor visibility), lays out a board and an
// optional info panel, and drives the key-input loop that feeds them.
//
// The rendering core under board/ never touches the terminal; the session
// is the single writer of the directive streams it returns.
package boardio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/hnimtadd/boardio/board"
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/board/cursor"
	"github.com/hnimtadd/boardio/board/grid"
	"github.com/hnimtadd/boardio/board/info"
	"github.com/hnimtadd/boardio/board/utils"
	"github.com/hnimtadd/boardio/input"
	"github.com/hnimtadd/boardio/logger"
)

// The screen origin is the terminal's top-left corner, 1-based.
const (
	screenTop  = 1
	screenLeft = 1
)

// State of the session lifecycle.
type State int

const (
	// Fresh session, no layout yet.
	StateCreated State = iota
	// Board (and info panel) laid out and painted; not reading input yet.
	StateInitialized
	// Input loop running.
	StateStarted
	// Input ignored except for the resume key.
	StatePaused
	// Input loop left; the session can be re-initialized.
	StateStopped
)

type Options struct {
	// Key input stream, usually os.Stdin.
	Input io.Reader
	// Directive output, usually os.Stdout.
	Output io.Writer
	// Receiver for keys the board does not consume. Required.
	Listener InputListener

	// Put the input terminal into raw mode (restored by Close). Ignored
	// when Input is not a terminal.
	RawMode bool
	// Switch to the alternate screen buffer (left by Close). Turn this off
	// while debugging: a crash on the alternate screen wipes its own
	// output.
	AltScreen bool

	Logger logger.Logger
}

// Session drives one board application. All methods are called from the
// same goroutine that runs Start; nothing here is safe for concurrent use.
type Session struct {
	board *board.Board
	info  *info.Info
	state State

	keys     *input.Decoder
	out      *bufio.Writer
	listener InputListener

	resumeKey *input.Key

	altScreen bool
	rawFd     int
	rawState  *term.State

	logger logger.Logger
}

// NewSession prepares the terminal. Raw-mode or write failures are
// returned, not panicked: the terminal is outside this program's contract.
func NewSession(opts Options) (*Session, error) {
	utils.Assert(opts.Listener != nil, "session needs an input listener")

	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}

	s := &Session{
		state:    StateCreated,
		keys:     input.NewDecoder(opts.Input),
		out:      bufio.NewWriter(opts.Output),
		listener: opts.Listener,
		rawFd:    -1,
		logger:   log,
	}

	if opts.RawMode {
		if f, ok := opts.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			st, err := term.MakeRaw(int(f.Fd()))
			if err != nil {
				return nil, fmt.Errorf("enter raw mode: %w", err)
			}
			s.rawFd = int(f.Fd())
			s.rawState = st
		}
	}

	if opts.AltScreen {
		s.out.WriteString(ansi.SetMode(ansi.AltScreenSaveCursorMode))
		s.altScreen = true
	}
	// The terminal's own cursor stays hidden for the session: the board
	// paints its highlight cursor itself.
	s.out.WriteString(ansi.ResetMode(ansi.TextCursorEnableMode))
	if err := s.out.Flush(); err != nil {
		s.restoreTerminal()
		return nil, fmt.Errorf("prepare terminal: %w", err)
	}
	return s, nil
}

// Close restores the terminal: cursor visible, main screen buffer, cooked
// input mode.
func (s *Session) Close() error {
	s.out.WriteString(ansi.SetMode(ansi.TextCursorEnableMode))
	if s.altScreen {
		s.out.WriteString(ansi.ResetMode(ansi.AltScreenSaveCursorMode))
	}
	err := s.out.Flush()
	if rerr := s.restoreTerminal(); err == nil {
		err = rerr
	}
	return err
}

func (s *Session) restoreTerminal() error {
	if s.rawState == nil {
		return nil
	}
	st := s.rawState
	s.rawState = nil
	return term.Restore(s.rawFd, st)
}

// Init lays out the board and the optional info panel and paints the
// initial screen. Valid from Created or Stopped only; anything else is a
// programming error and panics.
func (s *Session) Init(b *board.Board, inf *info.Info) error {
	utils.Assert(s.state == StateCreated || s.state == StateStopped,
		"only a new or stopped session can be initialized")
	utils.Assert(b != nil, "session needs a board")

	s.board = b
	s.info = inf
	s.layout()

	if out, ok := s.board.Updates(); ok {
		s.out.WriteString(out)
	}
	if s.info != nil {
		s.out.WriteString(s.info.Border())
		if out, ok := s.info.Updates(); ok {
			s.out.WriteString(out)
		}
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("paint initial screen: %w", err)
	}

	s.state = StateInitialized
	return nil
}

// layout positions the board and the info panel on the screen. The panel's
// free axis is stretched to match the board.
func (s *Session) layout() {
	if s.info == nil {
		s.board.SetOrigin(coordinate.NewPosition(screenLeft, screenTop))
		return
	}

	bW, bH := s.board.Width(), s.board.Height()
	iW, iH := bW, bH
	size := s.info.Size()

	var bPos, iPos coordinate.Position
	switch s.info.Layout() {
	case info.LayoutLeft:
		iW = size
		bPos = coordinate.NewPosition(iW+1, screenTop)
		iPos = coordinate.NewPosition(screenLeft, screenTop)
	case info.LayoutRight:
		iW = size
		bPos = coordinate.NewPosition(screenLeft, screenTop)
		iPos = coordinate.NewPosition(bW+1, screenTop)
	case info.LayoutTop:
		iH = size
		bPos = coordinate.NewPosition(screenLeft, iH+1)
		iPos = coordinate.NewPosition(screenLeft, screenTop)
	case info.LayoutBottom:
		iH = size
		bPos = coordinate.NewPosition(screenLeft, screenTop)
		iPos = coordinate.NewPosition(screenLeft, bH+1)
	}

	s.board.SetOrigin(bPos)
	s.info.SetArea(iPos, iW, iH)
}

// Start runs the blocking input loop until Stop is called or the input
// stream ends. Keys go to the board's cursor first; what the cursor does
// not handle goes to the listener. Valid from Initialized or Stopped only.
func (s *Session) Start() error {
	utils.Assert(s.state == StateInitialized || s.state == StateStopped,
		"only an initialized or stopped session can be started")
	s.state = StateStarted

	for s.state == StateStarted || s.state == StatePaused {
		key, err := s.keys.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}

		if s.state == StatePaused {
			// Only the resume key reaches the listener; the listener is
			// expected to call Resume.
			if s.resumeKey != nil && key == *s.resumeKey {
				s.listener.HandleKey(key, s)
			}
		} else {
			pos, res := s.board.HandleKey(key)
			switch res {
			case cursor.Moved:
				s.listener.CursorMoved(pos, s)
			case cursor.NotHandled:
				s.listener.HandleKey(key, s)
			case cursor.Consumed:
				// Movement blocked at a non-wrapping edge; swallow.
			}
		}

		if err := s.paint(); err != nil {
			return err
		}
	}
	return nil
}

// paint flushes pending board and info repaints to the terminal.
func (s *Session) paint() error {
	if out, ok := s.board.Updates(); ok {
		s.out.WriteString(out)
	}
	if s.info != nil {
		if out, ok := s.info.Updates(); ok {
			s.out.WriteString(out)
		}
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("write updates: %w", err)
	}
	return nil
}

// Stop leaves the input loop. Valid from Started only.
func (s *Session) Stop() {
	utils.Assert(s.state == StateStarted, "only a started session can be stopped")
	s.state = StateStopped
}

// Pause ignores all input except resumeKey, which is delivered to the
// listener so it can call Resume. Valid from Started only.
func (s *Session) Pause(resumeKey input.Key) {
	utils.Assert(s.state == StateStarted, "only a started session can be paused")
	s.resumeKey = &resumeKey
	s.state = StatePaused
}

// Resume returns to normal input handling. Valid from Paused only.
func (s *Session) Resume() {
	utils.Assert(s.state == StatePaused, "only a paused session can be resumed")
	s.resumeKey = nil
	s.state = StateStarted
}

// State returns the session lifecycle state.
func (s *Session) State() State {
	return s.state
}

// UpdateCells forwards a batch of targeted cell updates to the board.
func (s *Session) UpdateCells(updates []grid.Update) {
	s.board.UpdateCells(updates)
}

// ShowMessage opens the board's modal dialog; see board.ShowMessage for
// the line format and alignment markers.
func (s *Session) ShowMessage(lines []string) {
	s.board.ShowMessage(lines)
}

// HideMessage closes the dialog; the next repaint redraws the whole board.
func (s *Session) HideMessage() {
	s.board.HideMessage()
}

// SetInfoText replaces the info panel's content. No-op without a panel.
func (s *Session) SetInfoText(lines []string) {
	if s.info != nil {
		s.info.SetText(lines)
	}
}
