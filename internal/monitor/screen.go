package monitor

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/netuse/internal/errors"
	"golang.org/x/term"
)

// Fallback dimensions when the terminal size can't be discovered.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// SizeFunc reports the terminal dimensions.
type SizeFunc func() (columns, rows int, err error)

// TerminalSize returns a SizeFunc querying the terminal behind f.
func TerminalSize(f *os.File) SizeFunc {
	return func() (int, int, error) {
		return term.GetSize(int(f.Fd()))
	}
}

// FixedSize returns a SizeFunc that always reports the given dimensions.
func FixedSize(columns, rows int) SizeFunc {
	return func() (int, int, error) {
		return columns, rows, nil
	}
}

// Screen draws frames in place on a terminal. It tracks the render cursor so
// a frame never writes past the second-to-last row, which would scroll.
//
// Output is buffered and flushed once per frame.
type Screen struct {
	buf  *bufio.Writer
	out  *termenv.Output
	size SizeFunc

	columns   int
	rows      int
	cursorRow int
}

// NewScreen creates a Screen writing to w.
func NewScreen(w io.Writer, size SizeFunc) *Screen {
	buf := bufio.NewWriter(w)
	return &Screen{
		buf:  buf,
		out:  termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii)),
		size: size,
	}
}

// Init discovers the terminal size, clears it and hides the cursor.
func (s *Screen) Init() error {
	s.discover()
	s.out.ClearScreen()
	s.out.HideCursor()
	return s.flush()
}

// Resize rediscovers the terminal size. The screen is cleared when the size
// changed so nothing drawn for the old geometry remains.
func (s *Screen) Resize() (bool, error) {
	columns, rows := s.columns, s.rows
	s.discover()
	if columns == s.columns && rows == s.rows {
		return false, nil
	}
	s.out.ClearScreen()
	return true, s.flush()
}

func (s *Screen) discover() {
	columns, rows, err := s.size()
	if err != nil || columns <= 0 || rows <= 0 {
		columns, rows = envSize()
	}
	s.columns, s.rows = columns, rows
}

func envSize() (int, int) {
	columns, rows := DefaultColumns, DefaultRows
	if c, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && c > 0 {
		columns = c
	}
	if r, err := strconv.Atoi(os.Getenv("LINES")); err == nil && r > 0 {
		rows = r
	}
	return columns, rows
}

// BeginFrame moves the cursor home and resets the row count.
func (s *Screen) BeginFrame() {
	s.cursorRow = 0
	s.out.MoveCursor(1, 1)
}

// Line writes one row, cut to the terminal width, and clears the rest of it.
// It returns false without writing when the frame is full.
func (s *Screen) Line(text string) bool {
	if s.Remaining() == 0 {
		return false
	}
	_, _ = s.out.WriteString(ansi.Truncate(text, s.columns, ""))
	s.out.ClearLineRight()
	_, _ = s.out.WriteString("\n")
	s.cursorRow++
	return true
}

// Remaining is the number of rows still available in this frame.
func (s *Screen) Remaining() int {
	if left := s.rows - 1 - s.cursorRow; left > 0 {
		return left
	}
	return 0
}

// Finish blanks every unused row below the last table and flushes the frame.
func (s *Screen) Finish() error {
	for s.Remaining() > 0 {
		s.out.ClearLineRight()
		_, _ = s.out.WriteString("\n")
		s.cursorRow++
	}
	return s.flush()
}

// Close shows the cursor again and leaves the shell prompt on a fresh line.
func (s *Screen) Close() error {
	s.out.ShowCursor()
	_, _ = s.out.WriteString("\n")
	return s.flush()
}

func (s *Screen) flush() error {
	if err := s.buf.Flush(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Couldn't write to the terminal",
			"Check that stdout is still open")
	}
	return nil
}

// Rows returns the discovered terminal height.
func (s *Screen) Rows() int { return s.rows }

// Columns returns the discovered terminal width.
func (s *Screen) Columns() int { return s.columns }

// CursorRow returns the next row to be written in this frame.
func (s *Screen) CursorRow() int { return s.cursorRow }
