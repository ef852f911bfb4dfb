package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"tdms-savior/ds"
	"tdms-savior/tdms"
	"tdms-savior/tdms/dsample"
	"tdms-savior/tdms/dtype"
)

const previewSize = 10

type ScreenKind int

const (
	ScreenList ScreenKind = iota
	ScreenDetail
)

type Screen struct {
	Kind    ScreenKind
	Cursor  int
	Channel *tdms.Channel
	Detail  Detail
}

type Detail struct {
	DataType string
	Len      uint64
	Stats    *Stats
	Preview  []string
	Err      error
}

// Browser lists every channel of a file; enter opens a detail screen and esc
// walks back through the screen history.
type Browser struct {
	title    string
	channels []*tdms.Channel
	screens  *ds.Stack[Screen]
}

func NewBrowser(title string, file *tdms.File) *Browser {
	channels := lo.Flatten(
		lo.Map(
			file.Groups(),
			func(group *tdms.Group, _ int) []*tdms.Channel {
				return group.Channels()
			},
		),
	)
	screens := ds.NewStack[Screen]()
	screens.Push(Screen{Kind: ScreenList})
	return &Browser{
		title:    title,
		channels: channels,
		screens:  screens,
	}
}

func (r *Browser) Current() Screen {
	screen, _ := r.screens.Peek()
	return screen
}

func (r *Browser) Depth() int {
	return r.screens.Len()
}

func loadDetail(channel *tdms.Channel) Detail {
	detail := Detail{DataType: "no data"}
	dataType, ok, err := channel.DataType()
	if err != nil {
		detail.Err = err
		return detail
	}
	if ok {
		detail.DataType = dataType.String()
	}
	values, err := channel.ReadAll()
	if err != nil {
		detail.Err = err
		return detail
	}
	detail.Preview = dtype.FormatSlice(values, previewSize)
	detail.Len, err = channel.Len()
	if err != nil {
		detail.Err = err
		return detail
	}
	if ok && dataType.IsNumeric() {
		floats, err := dsample.ToFloat64s(values)
		if err == nil {
			stats := ComputeStats(floats)
			detail.Stats = &stats
		}
	}
	return detail
}

func (r *Browser) moveCursor(delta int) {
	if len(r.channels) == 0 {
		return
	}
	r.screens.ReplaceLast(
		func(screen Screen) Screen {
			cursor := screen.Cursor + delta
			if cursor < 0 {
				cursor = 0
			}
			if cursor >= len(r.channels) {
				cursor = len(r.channels) - 1
			}
			screen.Cursor = cursor
			return screen
		},
	)
}

func (r *Browser) Init() tea.Cmd {
	return nil
}

func (r *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	current := r.Current()
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return r, tea.Quit
	case "esc", "backspace":
		if r.screens.Len() > 1 {
			r.screens.Pop()
		}
	case "up", "k":
		if current.Kind == ScreenList {
			r.moveCursor(-1)
		}
	case "down", "j":
		if current.Kind == ScreenList {
			r.moveCursor(1)
		}
	case "enter":
		if current.Kind == ScreenList && len(r.channels) > 0 {
			channel := r.channels[current.Cursor]
			r.screens.Push(Screen{
				Kind:    ScreenDetail,
				Channel: channel,
				Detail:  loadDetail(channel),
			})
		}
	}
	return r, nil
}

func (r *Browser) viewList(screen Screen) string {
	sb := strings.Builder{}
	if len(r.channels) == 0 {
		sb.WriteString("No channels.\n")
	}
	for i, channel := range r.channels {
		cursor := "  "
		if i == screen.Cursor {
			cursor = "> "
		}
		sb.WriteString(cursor + channel.Path() + "\n")
	}
	sb.WriteString("\nup/down: move, enter: open, q: quit\n")
	return sb.String()
}

func (r *Browser) viewDetail(screen Screen) string {
	sb := strings.Builder{}
	detail := screen.Detail
	sb.WriteString(screen.Channel.Path() + "\n\n")
	if detail.Err != nil {
		sb.WriteString("Error: " + detail.Err.Error() + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("Type:   %s\n", detail.DataType))
		sb.WriteString(fmt.Sprintf("Length: %d\n", detail.Len))
		if detail.Stats != nil {
			sb.WriteString(fmt.Sprintf("Min:    %g\n", detail.Stats.Min))
			sb.WriteString(fmt.Sprintf("Max:    %g\n", detail.Stats.Max))
			sb.WriteString(fmt.Sprintf("Mean:   %g\n", detail.Stats.Mean))
		}
		for _, property := range screen.Channel.Properties() {
			sb.WriteString(fmt.Sprintf("%s = %s\n", property.Name, dtype.Format(property.Value)))
		}
		if len(detail.Preview) > 0 {
			sb.WriteString("\nFirst values:\n")
			sb.WriteString(strings.Join(detail.Preview, "\n") + "\n")
		}
	}
	sb.WriteString("\nesc: back, q: quit\n")
	return sb.String()
}

func (r *Browser) View() string {
	output := "TDMS SAVIOR\n\n"
	output += "File: " + r.title + "\n\n"
	screen := r.Current()
	switch screen.Kind {
	case ScreenList:
		output += r.viewList(screen)
	case ScreenDetail:
		output += r.viewDetail(screen)
	default:
		panic(ds.ErrUnreachableCode{Caller: "ui.Browser.View", Value: screen.Kind})
	}
	return output
}
