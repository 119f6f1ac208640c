package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipbox/assist"
	"snipbox/clipboard"
	"snipbox/db"
	"snipbox/model"
	"snipbox/search"
	"snipbox/store"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeAssistant struct {
	form model.CommandForm
	err  error

	mu      sync.Mutex
	prompts []string
}

func (f *fakeAssistant) Suggest(_ context.Context, prompt string) (model.CommandForm, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.form, f.err
}

type harness struct {
	app      *App
	backend  *db.Memory
	commands *store.Commands
	usage    *store.UsageLog
	clip     *fakeClipboard
}

func newHarness(t *testing.T, assistant assist.Assistant, seed ...model.CommandForm) *harness {
	t.Helper()

	backend := db.NewMemory()
	n := 0
	commands, err := store.NewCommands(backend, store.WithIDs(func() string {
		n++
		return fmt.Sprintf("cmd-%d", n)
	}))
	require.NoError(t, err)
	// Seeded oldest first, so the list shows them in reverse.
	for _, f := range seed {
		_, err := commands.Create(f)
		require.NoError(t, err)
	}
	usage, err := store.NewUsageLog(backend)
	require.NoError(t, err)

	clip := &fakeClipboard{}
	app, err := NewApp(Options{
		Commands:     commands,
		Usage:        usage,
		Themes:       store.NewThemes(backend),
		Assistant:    assistant,
		Clipboard:    clip,
		DefaultTheme: store.ThemeDark,
		Now:          func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &harness{app: app, backend: backend, commands: commands, usage: usage, clip: clip}
}

func (h *harness) press(keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.app.Update(tea.KeyMsg{Type: k})
	}
	return cmd
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// findMsg runs cmd, descending into batches, and returns the first message
// of type T.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	out := make(chan T, 1)
	var walk func(tea.Cmd)
	walk = func(c tea.Cmd) {
		if c == nil {
			return
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, sub := range msg {
				go walk(sub)
			}
		case T:
			select {
			case out <- msg:
			default:
			}
		}
	}
	go walk(cmd)

	select {
	case msg := <-out:
		return msg
	case <-time.After(3 * time.Second):
		var zero T
		t.Fatalf("no %T produced", zero)
		return zero
	}
}

var (
	findForm   = model.CommandForm{Title: "Find big files", Template: "find {{path}} -size +{{size}}", Category: "Files", Tags: []string{"find"}}
	dockerForm = model.CommandForm{Title: "Docker ps", Template: "docker ps -a", Category: "Containers", Tags: []string{"docker"}}
)

func TestFillAndCopy(t *testing.T) {
	h := newHarness(t, nil, findForm)

	h.press(tea.KeyEnter)
	require.Equal(t, modeFill, h.app.mode)
	require.Equal(t, []string{"path", "size"}, h.app.fillNames)

	h.typeText("/tmp")
	assert.Contains(t, h.app.View(), "$ find /tmp -size +{{size}}")

	h.press(tea.KeyEnter)
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Equal(t, "find /tmp -size +{{size}}", h.clip.text)

	logs := h.usage.List()
	require.Len(t, logs, 1)
	assert.Equal(t, "cmd-1", logs[0].CommandID)
	assert.Equal(t, findForm.Title, logs[0].Title)
	assert.Equal(t, findForm.Template, logs[0].Template)
	assert.Equal(t, "find /tmp -size +{{size}}", logs[0].FilledCommand)
	assert.Contains(t, h.app.status, "Copied")
}

func TestCommandWithoutVariablesCopiesImmediately(t *testing.T) {
	h := newHarness(t, nil, dockerForm)

	h.press(tea.KeyEnter)
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Equal(t, "docker ps -a", h.clip.text)
	assert.Len(t, h.usage.List(), 1)
}

func TestClipboardFailureIsReported(t *testing.T) {
	h := newHarness(t, nil, dockerForm)
	h.clip.err = clipboard.ErrUnavailable

	h.press(tea.KeyEnter)
	assert.Contains(t, h.app.err, "clipboard unavailable")
	assert.Empty(t, h.usage.List())
	assert.Len(t, h.commands.List(), 1)
}

func TestBindingsSurviveReopenButNotEdit(t *testing.T) {
	h := newHarness(t, nil, findForm)

	h.press(tea.KeyEnter)
	h.typeText("/var")
	h.press(tea.KeyEsc)
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Contains(t, h.app.View(), "find /var -size +{{size}}")

	h.press(tea.KeyEnter)
	assert.Equal(t, "/var", h.app.fillInputs[0].Value())
	h.press(tea.KeyEsc)

	h.press(tea.KeyCtrlE)
	require.Equal(t, modeEdit, h.app.mode)
	h.press(tea.KeyEnter)
	require.Equal(t, modeNormal, h.app.mode)

	h.press(tea.KeyEnter)
	assert.Equal(t, "", h.app.fillInputs[0].Value())
}

func TestSearchAndCategory(t *testing.T) {
	h := newHarness(t, nil, findForm, dockerForm)
	require.Len(t, h.app.filtered, 2)
	assert.Equal(t, []string{search.All, "Containers", "Files"}, h.app.categories)

	h.typeText("docker")
	require.Len(t, h.app.filtered, 1)
	assert.Equal(t, "Docker ps", h.app.filtered[0].Title)

	h.press(tea.KeyEsc)
	assert.Len(t, h.app.filtered, 2)

	h.press(tea.KeyTab, tea.KeyTab)
	require.Len(t, h.app.filtered, 1)
	assert.Equal(t, "Files", h.app.filtered[0].Category)

	h.press(tea.KeyShiftTab, tea.KeyShiftTab)
	assert.Len(t, h.app.filtered, 2)
}

func TestDeleteWithConfirm(t *testing.T) {
	h := newHarness(t, nil, findForm, dockerForm)

	h.press(tea.KeyCtrlD)
	require.Equal(t, modeDelete, h.app.mode)
	assert.Contains(t, h.app.View(), "Delete 'Docker ps'? (y/n)")

	h.typeText("n")
	assert.Len(t, h.commands.List(), 2)

	h.press(tea.KeyCtrlD)
	h.typeText("y")
	assert.Equal(t, modeNormal, h.app.mode)
	require.Len(t, h.commands.List(), 1)
	assert.Equal(t, "Find big files", h.commands.List()[0].Title)
	assert.Equal(t, []string{search.All, "Files"}, h.app.categories)
}

func TestAddCommand(t *testing.T) {
	h := newHarness(t, nil, findForm)

	h.press(tea.KeyCtrlA)
	require.Equal(t, modeAdd, h.app.mode)

	h.press(tea.KeyEnter)
	assert.Equal(t, "Title is required", h.app.err)
	assert.Equal(t, modeAdd, h.app.mode)

	h.typeText("Echo")
	h.press(tea.KeyTab)
	h.typeText("echo {{msg}}")
	h.press(tea.KeyTab, tea.KeyTab)
	h.typeText("fi")
	h.press(tea.KeyTab)
	assert.Equal(t, "Files", h.app.formInputs[fieldCategory].Value(), "tab completes category")
	h.press(tea.KeyTab)
	h.typeText("shell,print,shell")
	h.press(tea.KeyEnter)

	require.Equal(t, modeNormal, h.app.mode)
	cmds := h.commands.List()
	require.Len(t, cmds, 2)
	assert.Equal(t, "Echo", cmds[0].Title)
	assert.Equal(t, "echo {{msg}}", cmds[0].Template)
	assert.Equal(t, "Files", cmds[0].Category)
	assert.Equal(t, []string{"shell", "print"}, cmds[0].Tags)
}

func TestEditMissingCommandShowsNotice(t *testing.T) {
	h := newHarness(t, nil, findForm)

	h.press(tea.KeyCtrlE)
	require.Equal(t, modeEdit, h.app.mode)
	require.NoError(t, h.commands.Delete("cmd-1"))

	h.press(tea.KeyEnter)
	assert.Equal(t, "That command no longer exists", h.app.err)
	assert.Equal(t, modeEdit, h.app.mode)
	assert.Empty(t, h.commands.List())
}

func TestAssistFillsForm(t *testing.T) {
	fa := &fakeAssistant{form: model.CommandForm{
		Title:    "Tail logs",
		Template: "tail -f {{file}}",
		Category: "Files",
		Tags:     []string{"logs", "tail"},
	}}
	h := newHarness(t, fa)

	h.press(tea.KeyCtrlA, tea.KeyCtrlG)
	require.True(t, h.app.assistOpen)
	h.typeText("follow a log")
	cmd := h.press(tea.KeyEnter)
	assert.True(t, h.app.guard.Busy())

	h.press(tea.KeyCtrlG)
	h.typeText("again")
	h.press(tea.KeyEnter)
	assert.Contains(t, h.app.status, "Still waiting")

	msg := findMsg[assistResultMsg](t, cmd)
	h.app.Update(msg)

	assert.False(t, h.app.guard.Busy())
	assert.Equal(t, "Tail logs", h.app.formInputs[fieldTitle].Value())
	assert.Equal(t, "tail -f {{file}}", h.app.formInputs[fieldTemplate].Value())
	assert.Equal(t, "logs, tail", h.app.formInputs[fieldTags].Value())
	assert.Equal(t, []string{"follow a log"}, fa.prompts)
}

func TestAssistFailureLeavesFormUntouched(t *testing.T) {
	fa := &fakeAssistant{err: fmt.Errorf("%w: not json", assist.ErrMalformedResponse)}
	h := newHarness(t, fa)

	h.press(tea.KeyCtrlA)
	h.typeText("Mine")
	h.press(tea.KeyCtrlG)
	h.typeText("anything")
	msg := findMsg[assistResultMsg](t, h.press(tea.KeyEnter))
	h.app.Update(msg)

	assert.Equal(t, "AI assist returned an unusable draft", h.app.err)
	assert.Equal(t, "Mine", h.app.formInputs[fieldTitle].Value())
	assert.Equal(t, modeAdd, h.app.mode)
}

func TestAssistTransportFailure(t *testing.T) {
	fa := &fakeAssistant{err: errors.New("connection refused")}
	h := newHarness(t, fa)

	h.press(tea.KeyCtrlA, tea.KeyCtrlG)
	h.typeText("anything")
	h.app.Update(findMsg[assistResultMsg](t, h.press(tea.KeyEnter)))

	assert.Equal(t, "AI assist failed: connection refused", h.app.err)
}

func TestLateAssistReplyIsDiscarded(t *testing.T) {
	fa := &fakeAssistant{form: model.CommandForm{Title: "Late", Template: "late"}}
	h := newHarness(t, fa)

	h.press(tea.KeyCtrlA, tea.KeyCtrlG)
	h.typeText("slow request")
	msg := findMsg[assistResultMsg](t, h.press(tea.KeyEnter))

	h.press(tea.KeyEsc)
	h.press(tea.KeyCtrlA)
	require.Equal(t, modeAdd, h.app.mode)

	h.app.Update(msg)
	assert.Empty(t, h.app.formInputs[fieldTitle].Value())
	assert.Empty(t, h.app.formInputs[fieldTemplate].Value())
}

func TestAssistNotConfigured(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyCtrlA, tea.KeyCtrlG)
	assert.False(t, h.app.assistOpen)
	assert.Contains(t, h.app.err, "not configured")
}

func TestThemeTogglePersists(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyCtrlT)
	assert.Equal(t, store.ThemeLight, h.app.theme)

	saved, ok, err := store.NewThemes(h.backend).Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, store.ThemeLight, saved)

	again, err := NewApp(Options{
		Commands:     h.commands,
		Usage:        h.usage,
		Themes:       store.NewThemes(h.backend),
		DefaultTheme: store.ThemeDark,
	})
	require.NoError(t, err)
	assert.Equal(t, store.ThemeLight, again.theme)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t, nil, findForm, dockerForm)

	h.press(tea.KeyEnter) // docker, copied directly
	h.press(tea.KeyEnter)
	h.press(tea.KeyDown, tea.KeyEnter)
	h.typeText("/")
	h.press(tea.KeyEnter)

	h.press(tea.KeyCtrlS)
	require.Equal(t, modeDashboard, h.app.mode)

	content := h.app.dashboardContent()
	assert.Contains(t, content, "3 copies total")
	first := strings.Index(content, "docker ps -a")
	second := strings.Index(content, "find / -size +{{size}}")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)

	h.press(tea.KeyEsc)
	assert.Equal(t, modeNormal, h.app.mode)
}

func TestDashboardEmpty(t *testing.T) {
	h := newHarness(t, nil)
	h.press(tea.KeyCtrlS)
	assert.Contains(t, h.app.dashboardContent(), "Nothing copied yet.")
}
