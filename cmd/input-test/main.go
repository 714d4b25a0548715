// Command input-test is an interactive event viewer: it echoes decoded key
// and mouse events and keeps a draggable object on screen.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/termkit/config"
	"github.com/lixenwraith/termkit/render"
	"github.com/lixenwraith/termkit/terminal"
)

var (
	bgColor     = terminal.RGB(20, 20, 30)
	fgColor     = terminal.RGB(200, 200, 200)
	dimColor    = terminal.RGB(140, 140, 160)
	borderColor = terminal.RGB(60, 60, 80)
	headerBg    = terminal.RGB(40, 40, 60)
	objColor    = terminal.RGB(100, 255, 100)
	dragColor   = terminal.RGB(255, 255, 100)
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		log.Fatal("input-test: stdout is not a terminal")
	}

	opts, err := config.Load(os.Getenv("TERMKIT_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	sess := terminal.NewSession(opts)
	if err := sess.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer sess.Fini()

	sess.SetMouseMode(terminal.MouseModeClick | terminal.MouseModeDrag | terminal.MouseModeMotion)

	w, h := sess.Size()
	buf := sess.Buffer()

	objX, objY := w/2, h/2
	dragging := false

	const maxLog = 12
	eventLog := make([]string, 0, maxLog)
	addLog := func(s string) {
		if len(eventLog) >= maxLog {
			copy(eventLog, eventLog[1:])
			eventLog = eventLog[:maxLog-1]
		}
		eventLog = append(eventLog, s)
	}

	draw := func() {
		region := render.NewRegion(buf, 0, 0, w, h)
		region.Fill(bgColor)

		region.TextCenter(0, "Input Test - press keys, move mouse, drag the [X] - Ctrl+C quits",
			fgColor, headerBg, terminal.AttrBold)
		region.HLine(1, render.LineSingle, borderColor)

		for i, entry := range eventLog {
			y := 2 + i
			if y >= h-2 {
				break
			}
			region.Text(1, y, entry, fgColor, terminal.ColorDefault, terminal.AttrNone)
		}

		if objX >= 0 && objX < w-2 && objY >= 0 && objY < h {
			fg := objColor
			if dragging {
				fg = dragColor
			}
			region.Text(objX, objY, "[X]", fg, headerBg, terminal.AttrBold)
		}

		region.HLine(h-2, render.LineSingle, borderColor)
		status := fmt.Sprintf("size %dx%d | backend %s | object (%d,%d) | dragging %v",
			w, h, sess.Backend().Name(), objX, objY, dragging)
		region.Text(1, h-1, status, dimColor, terminal.ColorDefault, terminal.AttrNone)

		sess.Render()
	}

	draw()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for sess.Running() {
		<-ticker.C
		dirty := false

		for _, ev := range sess.Events().Drain() {
			switch ev.Kind {
			case terminal.KindKey:
				if ev.Key.Ctrl && ev.Key.Name == "c" {
					return
				}
				addLog(formatKeyEvent(ev.Key))
				dirty = true

			case terminal.KindMouse:
				addLog(formatMouseEvent(ev.Mouse))
				dirty = true

				m := ev.Mouse
				switch m.Action {
				case terminal.MousePress:
					if m.Button == terminal.MouseLeft &&
						m.X >= objX && m.X < objX+3 && m.Y == objY {
						dragging = true
					}
				case terminal.MouseRelease:
					dragging = false
				case terminal.MouseMove:
					if dragging {
						objX, objY = m.X, m.Y
					}
				}

			case terminal.KindResize:
				w, h = ev.Width, ev.Height
				sess.Resize(w, h)
				dirty = true

			case terminal.KindClosed, terminal.KindError:
				return
			}
		}

		if dirty {
			draw()
		}
	}
}

func formatKeyEvent(k terminal.KeyEvent) string {
	var mods []string
	if k.Ctrl {
		mods = append(mods, "ctrl")
	}
	if k.Meta {
		mods = append(mods, "meta")
	}
	if k.Shift {
		mods = append(mods, "shift")
	}
	prefix := ""
	if len(mods) > 0 {
		prefix = strings.Join(mods, "+") + "+"
	}
	return fmt.Sprintf("key   %s%-12s raw % x", prefix, k.Name, k.Raw)
}

func formatMouseEvent(m terminal.MouseEvent) string {
	return fmt.Sprintf("mouse %-7s %-10s (%d,%d)", m.Action, m.Button, m.X, m.Y)
}
