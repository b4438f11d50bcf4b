//go:build e2e && unix

package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyEnter = "\r"
	keyCtrlC = "\x03"
)

// terminal drives Run through a pseudo terminal in-process
type terminal struct {
	t   *testing.T
	ptm *os.File
	tty *os.File

	mu  sync.Mutex
	out strings.Builder
}

func newTerminal(t *testing.T) *terminal {
	t.Helper()

	ptm, tty, err := pty.Open()
	require.NoError(t, err)
	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 40, Cols: 120}))

	term := &terminal{t: t, ptm: ptm, tty: tty}
	// The program blocks on writes unless somebody drains the master side
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptm.Read(buf)
			if n > 0 {
				term.mu.Lock()
				term.out.Write(buf[:n])
				term.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()

	t.Cleanup(func() {
		_ = ptm.Close()
		_ = tty.Close()
	})
	return term
}

func (term *terminal) send(keys string) {
	term.t.Helper()
	for _, r := range keys {
		_, err := term.ptm.Write([]byte(string(r)))
		require.NoError(term.t, err)
		time.Sleep(20 * time.Millisecond)
	}
}

func (term *terminal) output() string {
	term.mu.Lock()
	defer term.mu.Unlock()
	return term.out.String()
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dataPath := filepath.Join(dir, "bookmarks.json")

	term := newTerminal(t)

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(),
			WithConfigPath(configPath),
			WithDataPath(dataPath),
			WithLogFile(filepath.Join(dir, "keydash.log")),
			WithProgramOptions(tea.WithInput(term.tty), tea.WithOutput(term.tty)),
		)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(term.output(), "keydash")
	}, 5*time.Second, 50*time.Millisecond, "dashboard never rendered")

	// The starter data file is written on first run
	_, err := os.Stat(dataPath)
	require.NoError(t, err)

	term.send(":theme nord")
	term.send(keyEnter)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(configPath)
		return err == nil && strings.Contains(string(data), "nord")
	}, 5*time.Second, 50*time.Millisecond, "theme was not persisted")

	term.send(keyCtrlC)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after ctrl+c")
	}
}
