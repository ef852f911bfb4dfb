package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdms-savior/tdms"
	"tdms-savior/tdms/dtype"
	"tdms-savior/tdms/lbytes"
	"tdms-savior/tdms/tdmstest"
)

type countingSource struct {
	*bytes.Reader
	readAts int
}

func (r *countingSource) ReadAt(p []byte, off int64) (int, error) {
	r.readAts++
	return r.Reader.ReadAt(p, off)
}

func openSample(t *testing.T) *tdms.File {
	file, _ := openCountedSample(t)
	return file
}

func openCountedSample(t *testing.T) (*tdms.File, *countingSource) {
	le := lbytes.LittleEndian
	bs := tdmstest.NewBuilder().
		Segment(
			tdmstest.Segment{
				TOC: tdmstest.DefaultTOC,
				Objects: []tdmstest.Object{
					{Path: "/'G'", Index: tdmstest.NoData()},
					{
						Path:  "/'G'/'A'",
						Index: tdmstest.Inline(dtype.DoubleFloat, 4),
						Properties: []tdmstest.Property{
							{Name: "unit_string", DataType: dtype.String, Value: "V"},
						},
					},
					{Path: "/'G'/'S'", Index: tdmstest.InlineString(1, 5)},
				},
				RawData: append(tdmstest.Float64s(le, 1, 2, 3, 6), tdmstest.Strings(le, "x")...),
			},
		).
		Bytes()
	source := &countingSource{Reader: bytes.NewReader(bs)}
	file, err := tdms.Open(source)
	require.NoError(t, err)
	return file, source
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(
		t,
		Stats{Len: 4, Min: -1, Max: 6, Mean: 2.5},
		ComputeStats([]float64{2, -1, 3, 6}),
	)
}

func TestBrowser_Navigation(t *testing.T) {
	browser := NewBrowser("sample.tdms", openSample(t))
	view := browser.View()
	assert.Contains(t, view, "> /'G'/'A'")
	assert.Contains(t, view, "  /'G'/'S'")

	browser.Update(key("up"))
	assert.Equal(t, 0, browser.Current().Cursor)
	browser.Update(key("down"))
	browser.Update(key("down"))
	assert.Equal(t, 1, browser.Current().Cursor)
	browser.Update(key("k"))
	assert.Equal(t, 0, browser.Current().Cursor)

	browser.Update(key("enter"))
	require.Equal(t, 2, browser.Depth())
	screen := browser.Current()
	assert.Equal(t, ScreenDetail, screen.Kind)
	assert.Equal(t, "/'G'/'A'", screen.Channel.Path())
	assert.Equal(t, uint64(4), screen.Detail.Len)
	require.NotNil(t, screen.Detail.Stats)
	assert.Equal(t, 3.0, screen.Detail.Stats.Mean)

	view = browser.View()
	assert.Contains(t, view, "Type:   double_float")
	assert.Contains(t, view, "Max:    6")
	assert.Contains(t, view, `unit_string = "V"`)

	// Detail screens ignore list keys.
	browser.Update(key("enter"))
	assert.Equal(t, 2, browser.Depth())

	browser.Update(key("esc"))
	assert.Equal(t, 1, browser.Depth())
	assert.Equal(t, ScreenList, browser.Current().Kind)
	browser.Update(key("esc"))
	assert.Equal(t, 1, browser.Depth())
}

func TestBrowser_StringChannel(t *testing.T) {
	browser := NewBrowser("sample.tdms", openSample(t))
	browser.Update(key("down"))
	browser.Update(key("enter"))

	detail := browser.Current().Detail
	require.NoError(t, detail.Err)
	assert.Nil(t, detail.Stats)
	assert.Equal(t, []string{`"x"`}, detail.Preview)
	assert.NotContains(t, browser.View(), "Mean:")
}

func TestBrowser_Quit(t *testing.T) {
	browser := NewBrowser("sample.tdms", openSample(t))
	_, cmd := browser.Update(key("q"))
	assert.NotNil(t, cmd)
	_, cmd = browser.Update(key("down"))
	assert.Nil(t, cmd)
}

func TestBrowser_DetailReadsChannelOnce(t *testing.T) {
	file, source := openCountedSample(t)
	browser := NewBrowser("sample.tdms", file)
	before := source.readAts

	browser.Update(key("enter"))
	require.NotNil(t, browser.Current().Detail.Stats)
	// one segment holds the channel, so a single extraction is one ReadAt
	assert.Equal(t, 1, source.readAts-before)
}
