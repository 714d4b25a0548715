// Command tui-demo renders an animated dashboard at ~30 fps to exercise the
// diff pipeline: only the cells that change each frame hit the terminal.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/termkit/config"
	"github.com/lixenwraith/termkit/render"
	"github.com/lixenwraith/termkit/terminal"
)

var (
	bgColor     = terminal.RGB(20, 20, 30)
	fgColor     = terminal.RGB(200, 200, 200)
	borderColor = terminal.RGB(80, 100, 140)
	accentColor = terminal.RGB(100, 200, 220)
	goodColor   = terminal.RGB(80, 200, 80)
	dimColor    = terminal.RGB(100, 100, 100)
	headerBg    = terminal.RGB(40, 50, 70)
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		log.Fatal("tui-demo: stdout is not a terminal")
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

	w, h := sess.Size()
	buf := sess.Buffer()

	frame := 0
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for sess.Running() {
		for _, ev := range sess.Events().Drain() {
			switch ev.Kind {
			case terminal.KindKey:
				if (ev.Key.Ctrl && ev.Key.Name == "c") ||
					ev.Key.Name == "escape" || ev.Key.Name == "q" {
					return
				}
			case terminal.KindResize:
				w, h = ev.Width, ev.Height
				sess.Resize(w, h)
			case terminal.KindClosed, terminal.KindError:
				return
			}
		}

		drawFrame(sess, buf, w, h, frame)
		frame++

		<-ticker.C
	}
}

func drawFrame(sess *terminal.Session, buf *terminal.CellBuffer, w, h, frame int) {
	root := render.NewRegion(buf, 0, 0, w, h)
	root.Fill(bgColor)

	caps := sess.Backend().Capabilities()
	title := fmt.Sprintf(" termkit demo - %s backend - q quits ", sess.Backend().Name())
	root.TextCenter(0, title, fgColor, headerBg, terminal.AttrBold)

	if h > 6 && w > 20 {
		panel := root.Sub(1, 2, w-2, h-4)
		panel.Box(render.LineSingle, borderColor)

		inner := panel.Sub(2, 1, panel.Width()-4, panel.Height()-2)
		inner.Text(0, 0, "capabilities", accentColor, terminal.ColorDefault, terminal.AttrUnderline)
		inner.Text(0, 1, fmt.Sprintf("truecolor    %v", caps.TrueColor), fgColor, terminal.ColorDefault, terminal.AttrNone)
		inner.Text(0, 2, fmt.Sprintf("images       %v", caps.Images), fgColor, terminal.ColorDefault, terminal.AttrNone)
		inner.Text(0, 3, fmt.Sprintf("synchronized %v", caps.SynchronizedOutput), fgColor, terminal.ColorDefault, terminal.AttrNone)

		// Animated sine wave, blended over the panel background
		if inner.Height() > 8 {
			baseline := 6 + (inner.Height()-8)/2
			for x := 0; x < inner.Width(); x++ {
				phase := float64(x+frame) * 0.2
				y := baseline + int(math.Sin(phase)*3+0.5)
				c := render.Blend(bgColor, goodColor, render.BlendScreen)
				inner.Text(x, y, "*", c, terminal.ColorDefault, terminal.AttrBold)
			}
		}
	}

	status := fmt.Sprintf(" frame %d | %dx%d ", frame, w, h)
	root.Text(0, h-1, status, dimColor, terminal.ColorDefault, terminal.AttrNone)

	sess.Render()
}
