package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/fivemoreminix/textstore/pkg/config"
	"github.com/fivemoreminix/textstore/ui"
	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

var theme = ui.Theme{}

// settingsEvent carries reloaded settings from the config watcher into the
// event loop, so the buffer is only touched from the main goroutine.
type settingsEvent struct {
	tcell.EventTime
	settings config.Settings
	err      error
}

func newSettingsEvent(settings config.Settings, err error) *settingsEvent {
	ev := &settingsEvent{settings: settings, err: err}
	ev.SetEventNow()
	return ev
}

// logOutput returns the file named by QEDIT_LOG_FILE, or io.Discard. The
// terminal belongs to tcell, so logs never go to stderr.
func logOutput() io.Writer {
	path := os.Getenv("QEDIT_LOG_FILE")
	if path == "" {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard // If we cannot open the requested file, disable logging silently.
	}
	return f
}

// applySettings hands s to te. A forced line ending different from the
// buffer's converts the buffer, so its line starts match the new mode.
func applySettings(te *ui.TextEdit, s config.Settings) {
	if s.LineEnding != nil && *s.LineEnding != te.Buffer.LineEnding() {
		te.ChangeLineDelimiters(*s.LineEnding)
	}
	s.Apply(te.Buffer)
	te.TabSize = s.TabSize
	te.LineNumbers = s.LineNumbers
}

// readFile returns the contents at path, or nothing if the file does not exist yet.
func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return contents, err
}

func saveFile(te *ui.TextEdit) error {
	if te.FilePath == "" {
		return errors.New("no file name; start qedit with a path to save")
	}
	f, err := os.Create(te.FilePath)
	if err != nil {
		return err
	}
	if _, err := te.Buffer.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	te.Dirty = false
	return nil
}

// nextLineEnding cycles Unix, Windows, MacClassic.
func nextLineEnding(le buffer.LineEnding) buffer.LineEnding {
	switch le {
	case buffer.Unix:
		return buffer.Windows
	case buffer.Windows:
		return buffer.MacClassic
	}
	return buffer.Unix
}

func drawStatusBar(s tcell.Screen, y, width int, te *ui.TextEdit, message string) {
	style := theme.GetOrDefault("StatusBar")
	ui.DrawRect(s, 0, y, width, 1, ' ', style)

	name := te.FilePath
	if name == "" {
		name = "noname"
	}
	if te.Dirty {
		name += " *"
	}
	line, col := te.GetCursor().GetLineCol()
	status := fmt.Sprintf(" %s  %d:%d  %d lines  %s  %s", name, line+1, col+1, te.Buffer.LineCount(),
		te.Buffer.LineEnding(), te.Highlighter.Language.Name)
	if message != "" {
		status += "  | " + message
	}
	ui.DrawStr(s, 0, y, status, style)
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "settings file (.toml, .yaml, or .yml)")
	writeConfig := flag.Bool("write-config", false, "write the current settings to the settings file and exit")
	flag.Parse()

	log.SetOutput(logOutput())
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Printf("qedit: %v; using defaults", err)
		settings = config.Defaults()
	}

	if *writeConfig {
		if err := config.Save(*configPath, settings); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	path := flag.Arg(0)
	contents, err := readFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	s, e := tcell.NewScreen()
	if e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	if e := s.Init(); e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	defer s.Fini() // Useful for handling panics

	sizex, sizey := s.Size()

	textEdit := ui.NewTextEdit(&s, path, contents, &theme)
	applySettings(textEdit, settings)
	textEdit.SetPos(0, 0)
	textEdit.SetSize(sizex, sizey-1)
	log.Printf("qedit: opened %q, %d bytes, %d lines, %s line endings", path, textEdit.Buffer.Len(),
		textEdit.Buffer.LineCount(), textEdit.Buffer.LineEnding())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, err := config.NewWatcher(*configPath); err != nil {
		log.Printf("qedit: live settings reload disabled: %v", err)
	} else {
		defer watcher.Close()
		go func() {
			_ = watcher.Run(ctx, func(settings config.Settings, err error) {
				_ = s.PostEvent(newSettingsEvent(settings, err))
			})
		}()
	}

	var focusedComponent ui.Component = textEdit
	textEdit.SetFocused(true)

	var gotoLine *GotoLinePrompt // if nil, we don't draw it
	closePrompt := func() {
		gotoLine.SetFocused(false)
		gotoLine = nil
		textEdit.SetFocused(true)
	}

	var message string // Shown in the status bar until the next key

main_loop:
	for {
		s.Clear()

		textEdit.Draw(s)
		if gotoLine != nil {
			gotoLine.SetPos(0, sizey-1)
			gotoLine.SetSize(sizex)
			gotoLine.Draw(s)
		} else {
			drawStatusBar(s, sizey-1, sizex, textEdit, message)
		}

		s.Show()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			sizex, sizey = s.Size()
			textEdit.SetSize(sizex, sizey-1)

			s.Sync() // Redraw everything
		case *settingsEvent:
			if ev.err != nil {
				log.Printf("qedit: %v", ev.err)
				message = "settings not reloaded"
				break
			}
			applySettings(textEdit, ev.settings)
			log.Printf("qedit: settings reloaded from %s", *configPath)
			message = "settings reloaded"
		case *tcell.EventKey:
			message = ""

			if gotoLine != nil {
				gotoLine.HandleEvent(ev)
				break
			}

			switch ev.Key() {
			case tcell.KeyCtrlQ:
				break main_loop
			case tcell.KeyCtrlS:
				if err := saveFile(textEdit); err != nil {
					log.Printf("qedit: save: %v", err)
					message = err.Error()
				} else {
					message = "saved"
				}
				continue
			case tcell.KeyCtrlG:
				textEdit.SetFocused(false)
				gotoLine = NewGotoLinePrompt(&s, &theme, func(line int) {
					textEdit.GotoLine(line)
					closePrompt()
				}, closePrompt)
				gotoLine.SetFocused(true)
				continue
			case tcell.KeyCtrlE:
				le := nextLineEnding(textEdit.Buffer.LineEnding())
				textEdit.ChangeLineDelimiters(le)
				message = "line endings: " + le.String()
				continue
			}

			focusedComponent.HandleEvent(ev)
		}
	}
}
