package inspector

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/editstate/internal/config"
	"github.com/dshills/editstate/internal/editing/ime"
	"github.com/dshills/editstate/internal/editing/state"
	"github.com/dshills/editstate/internal/logging"
)

// ErrQuit signals a normal user-initiated exit.
var ErrQuit = errors.New("quit")

// Inspector is the interactive delta viewer: a single-line editing
// buffer driven by keystrokes, with the classified delta payload of each
// edit shown below it.
type Inspector struct {
	screen  tcell.Screen
	st      *state.State
	adapter *ime.Adapter
	log     logging.Sink

	cfg     config.Config
	caret   int
	history []string
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the sink for usage error reports.
func WithLogger(sink logging.Sink) Option {
	return func(in *Inspector) {
		if sink != nil {
			in.log = sink
		}
	}
}

// WithScreen injects a screen, used by tests with a simulation screen.
func WithScreen(screen tcell.Screen) Option {
	return func(in *Inspector) {
		in.screen = screen
	}
}

// New creates an Inspector from the given configuration.
func New(cfg config.Config, opts ...Option) (*Inspector, error) {
	in := &Inspector{
		cfg: cfg,
		log: logging.Nop{},
	}
	for _, opt := range opts {
		opt(in)
	}

	in.st = state.New(
		state.WithText(cfg.Demo.InitialText),
		state.WithLogger(in.log),
	)
	in.adapter = ime.New(in.st, ime.WithLogger(in.log))
	in.caret = in.st.Len()
	if err := in.st.SetSelection(in.caret, in.caret); err != nil {
		return nil, err
	}

	in.st.AddWatcher(state.WatcherFunc(func(text, sel, comp bool) {
		in.recordDelta()
	}))

	if in.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		in.screen = screen
	}
	if err := in.screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	return in, nil
}

// ApplyConfig installs a live-reloaded configuration. Only display
// settings take effect; the buffer is untouched.
func (in *Inspector) ApplyConfig(cfg config.Config) {
	in.cfg = cfg
	in.trimHistory()
}

// Run drives the event loop until the user quits or the screen fails.
func (in *Inspector) Run() error {
	defer in.screen.Fini()

	for {
		in.draw()

		switch ev := in.screen.PollEvent().(type) {
		case *tcell.EventResize:
			in.screen.Sync()

		case *tcell.EventInterrupt:
			if cfg, ok := ev.Data().(config.Config); ok {
				in.ApplyConfig(cfg)
			}

		case *tcell.EventKey:
			if err := in.handleKey(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case nil:
			return nil
		}
	}
}

// PostConfig delivers a reloaded configuration into the event loop.
func (in *Inspector) PostConfig(cfg config.Config) {
	_ = in.screen.PostEvent(tcell.NewEventInterrupt(cfg))
}

func (in *Inspector) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit

	case tcell.KeyCtrlT:
		in.toggleComposition()

	case tcell.KeyRune:
		in.typeRune(ev.Rune())

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.backspace()

	case tcell.KeyLeft:
		in.moveCaret(-1)

	case tcell.KeyRight:
		in.moveCaret(1)
	}
	return nil
}

func (in *Inspector) typeRune(r rune) {
	if in.adapter.Active() {
		if err := in.adapter.CompositionUpdate(in.adapter.Text() + string(r)); err != nil {
			in.log.Errorf("composition update: %v", err)
		}
		in.caret = in.st.Selection().End
		return
	}

	if _, err := in.st.InsertAt(in.caret, string(r)); err != nil {
		in.log.Errorf("insert: %v", err)
		return
	}
	in.caret += len(string(r))
	in.setCaret()
}

func (in *Inspector) backspace() {
	if in.adapter.Active() {
		text := in.adapter.Text()
		if text == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(text)
		if err := in.adapter.CompositionUpdate(text[:len(text)-size]); err != nil {
			in.log.Errorf("composition update: %v", err)
		}
		in.caret = in.st.Selection().End
		return
	}

	if in.caret == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(in.st.Text()[:in.caret])
	if _, err := in.st.Delete(in.caret-size, in.caret); err != nil {
		in.log.Errorf("delete: %v", err)
		return
	}
	in.caret -= size
	in.setCaret()
}

func (in *Inspector) moveCaret(dir int) {
	if in.adapter.Active() {
		return
	}

	text := in.st.Text()
	if dir < 0 && in.caret > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:in.caret])
		in.caret -= size
	}
	if dir > 0 && in.caret < len(text) {
		_, size := utf8.DecodeRuneInString(text[in.caret:])
		in.caret += size
	}
	in.setCaret()
}

func (in *Inspector) toggleComposition() {
	if in.adapter.Active() {
		in.adapter.CompositionEnd()
		in.caret = in.st.Selection().End
		return
	}
	in.setCaret()
	in.adapter.CompositionStart()
}

func (in *Inspector) setCaret() {
	if err := in.st.SetSelection(in.caret, in.caret); err != nil {
		in.log.Errorf("selection: %v", err)
	}
}

// recordDelta appends the latest delta payload to the history.
func (in *Inspector) recordDelta() {
	d, ok := in.st.LastDelta()
	if !ok {
		return
	}
	payload, err := d.MarshalPayload()
	if err != nil {
		in.log.Errorf("marshalling payload: %v", err)
		return
	}
	in.history = append(in.history, string(payload))
	in.trimHistory()
}

func (in *Inspector) trimHistory() {
	if max := in.cfg.Demo.PayloadHistory; len(in.history) > max {
		in.history = in.history[len(in.history)-max:]
	}
}

func (in *Inspector) draw() {
	in.screen.Clear()
	width, height := in.screen.Size()

	base := tcell.StyleDefault
	composing := base.Underline(true)
	dim := base.Dim(true)

	in.drawText(0, 0, width, dim, "editstate inspector  (Ctrl-T compose, Esc quit)")

	// Buffer line, composing region underlined.
	text := in.st.Text()
	comp := in.st.Composing()
	col := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col >= width {
			break
		}
		style := base
		start, _ := gr.Positions()
		if comp.IsSet() && comp.Contains(start) {
			style = composing
		}
		runes := gr.Runes()
		in.screen.SetContent(col, 2, runes[0], runes[1:], style)
		col += gr.Width()
	}
	if !in.adapter.Active() && in.caretColumn() < width {
		in.screen.ShowCursor(in.caretColumn(), 2)
	} else {
		in.screen.HideCursor()
	}

	status := fmt.Sprintf("sel=%v comp=%v", in.st.Selection(), in.st.Composing())
	if d, ok := in.st.LastDelta(); ok {
		status += fmt.Sprintf("  last=%v", d.Kind)
	}
	in.drawText(0, 4, width, dim, status)

	// Payload history, newest last.
	row := 6
	first := 0
	if avail := height - row; avail > 0 && len(in.history) > avail {
		first = len(in.history) - avail
	}
	for _, line := range in.history[first:] {
		if row >= height {
			break
		}
		in.drawText(0, row, width, base, line)
		row++
	}

	in.screen.Show()
}

// caretColumn maps the caret byte offset to a display column.
func (in *Inspector) caretColumn() int {
	col := 0
	gr := uniseg.NewGraphemes(in.st.Text())
	for gr.Next() {
		start, _ := gr.Positions()
		if start >= in.caret {
			break
		}
		col += gr.Width()
	}
	return col
}

func (in *Inspector) drawText(x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col-x >= maxWidth {
			break
		}
		runes := gr.Runes()
		in.screen.SetContent(col, y, runes[0], runes[1:], style)
		col += gr.Width()
	}
}
