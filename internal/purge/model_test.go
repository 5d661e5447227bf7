package purge

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/nmkill/internal/core"
	"github.com/lakshaymaurya-felt/nmkill/internal/pipeline"
	"github.com/lakshaymaurya-felt/nmkill/internal/record"
)

func scanResult() pipeline.Result {
	return pipeline.Result{
		Records: sampleRecords().Records(),
		Stats:   pipeline.Stats{Projects: 2, TotalBytes: 16_300_000, Elapsed: 1500 * time.Millisecond},
	}
}

type deleter struct {
	paths []string
	err   error
}

func (d *deleter) delete(path string) error {
	d.paths = append(d.paths, path)
	return d.err
}

func newModel(t *testing.T, d *deleter) Model {
	t.Helper()
	m := New(context.Background(), Options{
		Version: "1.2.3",
		Scan: func(context.Context) (pipeline.Result, error) {
			return scanResult(), nil
		},
		Delete: d.delete,
	})
	m, _ = update(m, scanDoneMsg{result: scanResult()})
	require.False(t, m.scanning)
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: k})
}

func typeRune(m Model, r rune) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestScanningView(t *testing.T) {
	m := New(context.Background(), Options{Version: "1.2.3"})
	view := m.View()
	assert.Contains(t, view, "nmkill")
	assert.Contains(t, view, "(1.2.3)")
	assert.Contains(t, view, "Finding Node Modules...")
}

func TestInitRunsScan(t *testing.T) {
	called := false
	m := New(context.Background(), Options{
		Scan: func(context.Context) (pipeline.Result, error) {
			called = true
			return scanResult(), nil
		},
	})
	msg := m.runScan()()
	done, ok := msg.(scanDoneMsg)
	require.True(t, ok)
	assert.True(t, called)
	assert.Len(t, done.result.Records, 2)
}

func TestScanFailureQuits(t *testing.T) {
	boom := errors.New("find exited 2")
	m := New(context.Background(), Options{})
	m, cmd := update(m, scanDoneMsg{err: boom})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.Err(), boom)
}

func TestBrowseListsRecordsAndExit(t *testing.T) {
	m := newModel(t, &deleter{})
	view := m.View()
	assert.Contains(t, view, "Choose the Node Modules:")
	assert.Contains(t, view, "web")
	assert.Contains(t, view, "12.30 MB")
	assert.Contains(t, view, "Exit")
}

func TestConfirmYesDeletes(t *testing.T) {
	d := &deleter{}
	m := newModel(t, d)

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, ConfirmingDeletion, m.Mode())
	assert.Contains(t, m.View(), `Are you sure want to remove "api"?`)
	assert.Contains(t, m.View(), "Yap")
	assert.Contains(t, m.View(), "Nope")

	m, cmd := typeRune(m, 'y')
	require.NotNil(t, cmd)
	assert.Equal(t, Browsing, m.Mode())

	m, _ = update(m, cmd())
	assert.Equal(t, []string{"/src/api/node_modules"}, d.paths)

	recs := m.Records()
	assert.True(t, recs[0].Active)
	assert.False(t, recs[1].Active)
	assert.Contains(t, m.View(), "✔ api")
}

func TestConfirmDefaultsToNope(t *testing.T) {
	d := &deleter{}
	m := newModel(t, d)

	m, _ = press(m, tea.KeyEnter)
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, Browsing, m.Mode())
	assert.Empty(t, d.paths)
	assert.True(t, m.Records()[0].Active)
}

func TestToggleThenEnterDeletes(t *testing.T) {
	d := &deleter{}
	m := newModel(t, d)

	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyRight)
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	assert.Equal(t, []string{"/src/web/node_modules"}, d.paths)
	assert.False(t, m.Records()[0].Active)
}

func TestEscCancelsConfirmation(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = press(m, tea.KeyEnter)
	m, cmd := press(m, tea.KeyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, Browsing, m.Mode())
	assert.False(t, m.quitting)
}

func TestFailedDeleteShowsErrorAndKeepsRecord(t *testing.T) {
	d := &deleter{err: &core.DeleteError{Path: "/src/web/node_modules", Err: errors.New("permission denied")}}
	m := newModel(t, d)

	m, _ = press(m, tea.KeyEnter)
	m, cmd := typeRune(m, 'y')
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())

	assert.True(t, m.Records()[0].Active)
	assert.Contains(t, m.View(), "permission denied")
	assert.NoError(t, m.Err())
}

func TestSelectingDeletedRecordIsIgnored(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = update(m, deleteResultMsg{index: 0})
	require.False(t, m.Records()[0].Active)

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, Browsing, m.Mode())
}

func TestSelectingPendingRecordIsIgnored(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = press(m, tea.KeyEnter)
	m, cmd := typeRune(m, 'y')
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "removing")

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, Browsing, m.Mode())
}

func TestOneRemovalAtATime(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = press(m, tea.KeyEnter)
	m, cmd := typeRune(m, 'y')
	require.NotNil(t, cmd)

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, Browsing, m.Mode(), "second selection while the first removal runs")

	m, _ = update(m, cmd())
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, ConfirmingDeletion, m.Mode())
	assert.Equal(t, 1, m.state.Index)
}

func TestExitItemQuits(t *testing.T) {
	m := newModel(t, &deleter{})
	for i := 0; i < 5; i++ {
		m, _ = press(m, tea.KeyDown)
	}
	assert.Equal(t, 2, m.cursor)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.state.Done)
	assert.Empty(t, m.View())
}

func TestCtrlCQuitsWhileConfirming(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = press(m, tea.KeyEnter)
	m, cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.state.Done)
}

func TestQuitCancelsScanContext(t *testing.T) {
	m := New(context.Background(), Options{})
	ctx := m.ctx
	_, cmd := typeRune(m, 'q')
	require.NotNil(t, cmd)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestCursorScrollsViewport(t *testing.T) {
	var recs []record.Record
	for i := 0; i < 30; i++ {
		recs = append(recs, record.Record{DisplayName: "p", SizeMB: "1.00", Active: true})
	}
	m := New(context.Background(), Options{})
	m, _ = update(m, scanDoneMsg{result: pipeline.Result{Records: recs}})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})

	for i := 0; i < 10; i++ {
		m, _ = press(m, tea.KeyDown)
	}
	assert.Equal(t, 10, m.cursor)
	assert.Equal(t, 10-m.viewportHeight()+1, m.offset)
}

func TestFreeSpaceInFooter(t *testing.T) {
	m := newModel(t, &deleter{})
	m, _ = update(m, spaceMsg{space: core.DiskSpace{Path: "/", Free: 5_000_000_000, Total: 10_000_000_000}})
	assert.Contains(t, m.View(), "5.0 GB free")
}

func TestPrintStatic(t *testing.T) {
	var buf bytes.Buffer
	PrintStatic(&buf, "1.2.3", scanResult(), &core.DiskSpace{Path: "/", Free: 1_000_000_000, Total: 2_000_000_000})
	out := buf.String()

	assert.Contains(t, out, "nmkill(1.2.3)")
	assert.Contains(t, out, "  1.  web")
	assert.Contains(t, out, "/src/api/node_modules")
	assert.Contains(t, out, "Projects: 2")
	assert.Contains(t, out, "Free space on /: 1.0 GB of 2.0 GB")
	assert.Equal(t, 2, strings.Count(out, " MB\n"))
}

func TestPrintStaticEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintStatic(&buf, "dev", pipeline.Result{}, nil)
	assert.Contains(t, buf.String(), "No node_modules with a package.json found.")
	assert.NotContains(t, buf.String(), "Free space")
}
