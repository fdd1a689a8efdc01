package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/queen-placement/genetic"
)

var (
	headerStyle    = tcell.StyleDefault.Bold(true)
	lightCellStyle = tcell.StyleDefault.Background(tcell.ColorTan).Foreground(tcell.ColorBlack)
	darkCellStyle  = tcell.StyleDefault.Background(tcell.ColorSaddleBrown).Foreground(tcell.ColorBlack)
)

// Display is a tcell-backed live view of search progress: generation
// counter, best fitness, and the best board so far, redrawn in place.
type Display struct {
	screen tcell.Screen
	cancel func()
}

// NewDisplay initializes the terminal screen and starts key polling.
// cancel is invoked when the user presses Esc or Ctrl-C; the generation
// loop is the sole place a long search can be interrupted.
func NewDisplay(cancel func()) (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	d := &Display{screen: screen, cancel: cancel}
	go d.pollEvents()
	return d, nil
}

func (d *Display) pollEvents() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				if d.cancel != nil {
					d.cancel()
				}
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

// Update redraws the progress view for one generation.
func (d *Display) Update(generation int, best genetic.Chromosome, fitness float64) {
	d.screen.Clear()
	d.drawText(0, 0, fmt.Sprintf("generation %d", generation), headerStyle)
	d.drawText(0, 1, fmt.Sprintf("best fitness %.4f  [%s]", fitness, best), tcell.StyleDefault)

	genes := best.Genes()
	n := len(genes)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			style := lightCellStyle
			if (row+col)%2 == 1 {
				style = darkCellStyle
			}
			square := ' '
			if genes[row] == genetic.Gene(col) {
				square = '♛'
			}
			d.screen.SetContent(col*2, row+3, square, nil, style)
			d.screen.SetContent(col*2+1, row+3, ' ', nil, style)
		}
	}
	d.screen.Show()
}

func (d *Display) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		d.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// Close restores the terminal. Safe to call once the search is over or
// from a crash handler before the stack trace is printed.
func (d *Display) Close() {
	d.screen.Fini()
}
