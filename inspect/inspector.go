// Package inspect implements a terminal inspector for paging through
// arrays, matrices, and submatrix windows, and for running bulk
// operators interactively against a generated demo dataset.
package inspect

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/bulk"
	"github.com/Daniel-Alievsky/algart-sub004/config"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
)

// Inspector is the text user interface: a tview.Application with a
// layout of panels over a demo array plus a trace log fed by a
// telemetry.Broadcaster subscription.
type Inspector struct {
	Data   array.Array
	Cfg    *config.InspectorSection
	Tracer *telemetry.Broadcaster

	App  *tview.Application
	Flex *tview.Flex

	PageView     *tview.TextView
	ConsoleView  *tview.TextView
	TraceLogView *tview.TextView
	CommandInput *tview.InputField

	page int64
	sub  chan telemetry.TraceEvent
	done chan struct{}
}

// NewInspector builds an Inspector over data. cfg may be nil, in which
// case config.DefaultConfig().Inspector's values apply.
func NewInspector(data array.Array, cfg *config.InspectorSection, tracer *telemetry.Broadcaster) *Inspector {
	if cfg == nil {
		d := config.DefaultConfig()
		cfg = &d.Inspector
	}
	in := &Inspector{
		Data:   data,
		Cfg:    cfg,
		Tracer: tracer,
		App:    tview.NewApplication(),
		done:   make(chan struct{}),
	}
	in.initializeViews()
	in.buildLayout()
	in.setupKeyBindings()
	if tracer != nil {
		in.sub = tracer.Subscribe()
		go in.drainTrace()
	}
	return in
}

func (in *Inspector) initializeViews() {
	in.PageView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	in.PageView.SetBorder(true).SetTitle(" Array page ")

	in.ConsoleView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	in.ConsoleView.SetBorder(true).SetTitle(" Bulk operator console ")

	in.TraceLogView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	in.TraceLogView.SetBorder(true).SetTitle(" Trace log ")

	in.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	in.CommandInput.SetBorder(true).SetTitle(" Command ")
	in.CommandInput.SetDoneFunc(in.handleCommand)
}

func (in *Inspector) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(in.PageView, 0, 2, false).
		AddItem(in.TraceLogView, 0, 1, false)

	in.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(in.ConsoleView, 8, 0, false).
		AddItem(in.CommandInput, 3, 0, true)
}

func (in *Inspector) setupKeyBindings() {
	in.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			in.App.Stop()
			return nil
		case tcell.KeyPgDn:
			in.page++
			in.RefreshAll()
			return nil
		case tcell.KeyPgUp:
			if in.page > 0 {
				in.page--
			}
			in.RefreshAll()
			return nil
		}
		return event
	})
}

func (in *Inspector) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := in.CommandInput.GetText()
	in.CommandInput.SetText("")
	if cmd == "" {
		return
	}
	if err := in.ExecuteCommand(cmd); err != nil {
		in.writeConsole(fmt.Sprintf("[red]error:[white] %v\n", err))
	}
	in.RefreshAll()
}

// ExecuteCommand parses cmdLine the way a debugger command line does
// (whitespace-split, first token selects the handler) and runs it.
func (in *Inspector) ExecuteCommand(cmdLine string) error {
	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	switch cmd {
	case "page", "p":
		return in.cmdPage(args)
	case "sum":
		return in.cmdSum()
	case "range", "minmax":
		return in.cmdRange()
	case "hist", "histogram":
		return in.cmdHistogram(args)
	case "quit", "q":
		in.App.Stop()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (in *Inspector) cmdPage(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: page <n>")
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid page number: %s", args[0])
	}
	in.page = n
	return nil
}

// ctx returns the context bulk operators should run under, carrying
// in.Tracer so the console commands emit trace events just like any
// other caller that opts in via bulk.WithTracer.
func (in *Inspector) ctx() context.Context {
	ctx := context.Background()
	if in.Tracer != nil {
		ctx = bulk.WithTracer(ctx, in.Tracer)
	}
	return ctx
}

func (in *Inspector) cmdSum() error {
	total, err := bulk.Summator(in.ctx(), in.Data)
	if err != nil {
		return err
	}
	in.writeConsole(fmt.Sprintf("sum = %v\n", total))
	return nil
}

func (in *Inspector) cmdRange() error {
	res, err := bulk.RangeCalculator(in.ctx(), in.Data)
	if err != nil {
		return err
	}
	if res.Empty {
		in.writeConsole("range: array is empty\n")
		return nil
	}
	in.writeConsole(fmt.Sprintf("min=%v@%d max=%v@%d\n", res.MinValue, res.MinIndex, res.MaxValue, res.MaxIndex))
	return nil
}

func (in *Inspector) cmdHistogram(args []string) error {
	nBins := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bin count: %s", args[0])
		}
		nBins = n
	}
	from, to := 0.0, 1.0
	if k := in.Data.ElementKind(); k.IsNumeric() && k != kind.Bit {
		if mn, ok := k.MinValue(); ok {
			from = mn
		}
		if mx, ok := k.MaxValue(); ok {
			to = mx
		}
	}
	res, err := bulk.HistogramCalculator(in.ctx(), in.Data, from, to, nBins)
	if err != nil {
		return err
	}
	in.writeConsole(fmt.Sprintf("histogram(allInside=%v) = %v\n", res.AllInside, res.Bins))
	return nil
}

func (in *Inspector) writeConsole(text string) {
	fmt.Fprint(in.ConsoleView, text)
	in.ConsoleView.ScrollToEnd()
}

// RefreshAll repaints the page view against the current page and cfg,
// then asks tview to redraw.
func (in *Inspector) RefreshAll() {
	in.updatePageView()
	in.App.Draw()
}

func (in *Inspector) updatePageView() {
	in.PageView.Clear()
	rows, cols := in.Cfg.PageRows, in.Cfg.PageCols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 8
	}
	perPage := int64(rows * cols)
	start := in.page * perPage
	n := in.Data.Length()
	var b strings.Builder
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			idx := start + int64(r*cols+c)
			if idx >= n {
				break
			}
			v, err := in.Data.Get(idx)
			if err != nil {
				cells = append(cells, "ERR")
				continue
			}
			cells = append(cells, in.formatValue(v))
		}
		if len(cells) == 0 {
			break
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	in.PageView.SetText(b.String())
}

func (in *Inspector) formatValue(v any) string {
	if in.Cfg.NumberFormat == "hex" {
		switch x := v.(type) {
		case int32:
			return fmt.Sprintf("%#x", uint32(x))
		case int64:
			return fmt.Sprintf("%#x", uint64(x))
		case uint8:
			return fmt.Sprintf("%#x", x)
		case uint16:
			return fmt.Sprintf("%#x", x)
		}
	}
	return fmt.Sprintf("%v", v)
}

func (in *Inspector) drainTrace() {
	for ev := range in.sub {
		in.App.QueueUpdateDraw(func() {
			fmt.Fprintf(in.TraceLogView, "%s tasks=%d block=%d elapsed=%s\n", ev.Kind, ev.Tasks, ev.BlockSize, ev.Elapsed)
			in.TraceLogView.ScrollToEnd()
		})
	}
	close(in.done)
}

// Run starts the tview event loop; it blocks until the user quits.
func (in *Inspector) Run() error {
	in.RefreshAll()
	return in.App.SetRoot(in.Flex, true).EnableMouse(true).Run()
}

// Close unsubscribes from the tracer, if any, and waits for the drain
// goroutine to exit.
func (in *Inspector) Close() {
	if in.Tracer != nil && in.sub != nil {
		in.Tracer.Unsubscribe(in.sub)
		<-in.done
	}
}
