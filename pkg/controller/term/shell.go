package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/page"
	"github.com/secmon-lab/notepad/pkg/utils/async"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// ErrQuit ends Run without error
var ErrQuit = goerr.New("quit")

const helpText = `commands:
  open <path>             go to "/" (auth) or "/dashboard"
  tab login|register      switch auth tab
  login <user> <pass>     log in
  register <user> <pass>  create an account
  list                    show notes
  reload                  fetch notes again
  draft <text>            type into the note input
  add [text]              create a note from text or the current draft
  rm <id>                 delete a note
  logout                  end the session
  help                    show this help
  quit                    leave
prefix a command with & to run it in the background`

// Shell is an interactive terminal front end driving the pages
type Shell struct {
	app    *page.App
	out    io.Writer
	colors *palette

	notes  *NoteListView
	status *StatusView
	auth   *AuthView

	pending sync.WaitGroup
}

type ShellOption func(*shellConfig)

type shellConfig struct {
	color bool
}

// WithColor turns ANSI colours on or off
func WithColor(enabled bool) ShellOption {
	return func(c *shellConfig) {
		c.color = enabled
	}
}

func NewShell(api interfaces.NotesAPI, out io.Writer, opts ...ShellOption) *Shell {
	cfg := shellConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &syncWriter{w: out}
	colors := newPalette(cfg.color)
	s := &Shell{
		out:    w,
		colors: colors,
		notes:  NewNoteListView(w, colors),
		status: NewStatusView(w, colors),
		auth:   NewAuthView(w, colors),
	}
	s.app = page.NewApp(api, page.WithBootHook(s.onBoot))
	return s
}

// App is the page host driven by the shell
func (s *Shell) App() *page.App {
	return s.app
}

// Notes is the note list view
func (s *Shell) Notes() *NoteListView {
	return s.notes
}

// Status is the status view
func (s *Shell) Status() *StatusView {
	return s.status
}

func (s *Shell) onBoot(route types.Route, p page.Page) {
	s.notes.Detach()
	s.status.Detach()

	switch pg := p.(type) {
	case *page.AuthPage:
		fmt.Fprintln(s.out, s.colors.title.Sprint("== notepad: sign in =="))
		s.status.Attach(pg)
		s.auth.Render(pg.Tab())
	case *page.Dashboard:
		fmt.Fprintln(s.out, s.colors.title.Sprint("== notepad: your notes =="))
		s.status.Attach(pg)
		s.notes.Attach(pg.List())
	default:
		fmt.Fprintln(s.out, s.colors.err.Sprintf("no page here (%s)", route))
	}
}

// Run opens startPath and reads commands from in until EOF or quit. Background commands are
// awaited before returning.
func (s *Shell) Run(ctx context.Context, in io.Reader, startPath string) error {
	defer s.app.Close()
	defer s.pending.Wait()

	if err := s.app.Open(ctx, startPath); err != nil {
		return goerr.Wrap(err, "failed to open start page", goerr.V("path", startPath))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.colors.dim.Sprint("> "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), "&"); ok {
			s.Background(ctx, rest)
			continue
		}

		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintln(s.out, s.colors.err.Sprint(err.Error()))
		}

		if err := ctx.Err(); err != nil {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}

// Background runs line without waiting for it
func (s *Shell) Background(ctx context.Context, line string) {
	s.pending.Add(1)
	done := async.Dispatch(ctx, func(ctx context.Context) error {
		err := s.Exec(ctx, line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		return err
	})
	go func() {
		<-done
		s.pending.Done()
	}()
}

// Wait blocks until every background command has finished
func (s *Shell) Wait() {
	s.pending.Wait()
}

// Exec runs one command line. Errors are usage errors; outcomes of backend calls are reported
// through the page status instead.
func (s *Shell) Exec(ctx context.Context, line string) error {
	cmd, rawArgs, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	cmd = strings.TrimSpace(cmd)
	args := strings.TrimSpace(rawArgs)
	logging.From(ctx).Debug("shell command", "command", cmd)

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	case "open":
		if args == "" {
			return goerr.New("usage: open <path>")
		}
		return s.app.Open(ctx, args)
	}

	_, current := s.app.Current()
	switch p := current.(type) {
	case *page.AuthPage:
		return s.execAuth(ctx, p, cmd, rawArgs)
	case *page.Dashboard:
		return s.execDashboard(ctx, p, cmd, args)
	default:
		return goerr.New("no page is open, try: open /", goerr.V("command", cmd))
	}
}

// execAuth gets args untrimmed so passwords keep their spaces
func (s *Shell) execAuth(ctx context.Context, p *page.AuthPage, cmd, args string) error {
	switch cmd {
	case "tab":
		tab, err := types.ParseAuthTab(strings.TrimSpace(args))
		if err != nil {
			return goerr.Wrap(err, "usage: tab login|register")
		}
		if err := p.SelectTab(tab); err != nil {
			return err
		}
		s.auth.Render(p.Tab())
		return nil

	case "login", "register":
		username, password := splitCredentials(args)
		if cmd == "login" {
			p.SubmitLogin(ctx, username, password)
		} else {
			p.SubmitRegistration(ctx, username, password)
		}
		return nil
	}

	return goerr.New("not available on the sign in page", goerr.V("command", cmd))
}

func (s *Shell) execDashboard(ctx context.Context, d *page.Dashboard, cmd, args string) error {
	switch cmd {
	case "list", "ls":
		s.notes.Render(s.out)
		return nil
	case "reload":
		d.LoadAll(ctx)
		return nil
	case "draft":
		d.SetDraft(args)
		return nil
	case "add":
		content := args
		if content == "" {
			content = d.Draft()
		}
		d.Create(ctx, content)
		return nil
	case "rm", "delete":
		if args == "" {
			return goerr.New("usage: rm <id>")
		}
		d.Delete(ctx, model.NoteID(args))
		return nil
	case "logout":
		d.Logout(ctx)
		return nil
	}

	return goerr.New("not available on the notes page", goerr.V("command", cmd))
}

// splitCredentials takes the first word as username and everything after the following space,
// verbatim, as password. Missing parts are sent empty and left to the backend to judge.
func splitCredentials(args string) (string, string) {
	username, password, _ := strings.Cut(strings.TrimLeft(args, " \t"), " ")
	return username, password
}

// syncWriter serializes writes from views and background commands
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
