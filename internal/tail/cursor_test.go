package tail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorTailer_InitialThenResuming(t *testing.T) {
	tailer := NewCursorTailer("web", 200, "1 hour ago")
	assert.Equal(t, PhaseInitial, tailer.Phase())
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' -n 200 --since '1 hour ago' --show-cursor", tailer.Command())

	lines := tailer.Consume("server started\nlistening on :3000\n-- cursor: s=1;i=2\n")
	assert.Equal(t, []string{"server started", "listening on :3000"}, lines)
	assert.Equal(t, PhaseResuming, tailer.Phase())
	assert.Equal(t, "s=1;i=2", tailer.Cursor())
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' --after-cursor 's=1;i=2' --show-cursor", tailer.Command())
}

func TestCursorTailer_NeverReemitsOrYieldsMarkers(t *testing.T) {
	tailer := NewCursorTailer("web", 10, "")

	polls := []string{
		"a\nb\n-- cursor: c1\n",
		"-- No entries --\n",
		"c\n-- cursor: c2\n",
		"",
		"d\r\ne\n-- cursor: c3\n",
	}

	var all []string
	for _, out := range polls {
		all = append(all, tailer.Consume(out)...)
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, all)
	assert.Equal(t, "c3", tailer.Cursor())
}

func TestCursorTailer_KeepsCursorWhenPollHasNone(t *testing.T) {
	tailer := NewCursorTailer("web", 10, "")
	tailer.Consume("a\n-- cursor: c1\n")

	assert.Empty(t, tailer.Consume("-- No entries --\n"))
	assert.Equal(t, "c1", tailer.Cursor())
	assert.Contains(t, tailer.Command(), "--after-cursor 'c1'")
}

func TestCursorTailer_ResumingWithoutCursorKeepsSince(t *testing.T) {
	tailer := NewCursorTailer("web", 50, "2024-01-01 00:00:00")
	assert.Empty(t, tailer.Consume("-- No entries --\n"))

	cmd := tailer.Command()
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' --since '2024-01-01 00:00:00' --show-cursor", cmd)
}

func TestCursorTailer_EmptyJournalThenFirstEntries(t *testing.T) {
	tailer := NewCursorTailer("web", 50, "")
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' -n 50 --show-cursor", tailer.Command())

	assert.Empty(t, tailer.Consume("-- No entries --\n"))
	assert.Empty(t, tailer.Cursor())

	// Unbounded only while no cursor exists; the first read proved the journal empty
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' --show-cursor", tailer.Command())

	lines := tailer.Consume("booting\nready\n-- cursor: c1\n")
	assert.Equal(t, []string{"booting", "ready"}, lines)
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' --after-cursor 'c1' --show-cursor", tailer.Command())

	assert.Empty(t, tailer.Consume("-- No entries --\n"))
	assert.Equal(t, "journalctl -u 'web' --no-pager -o 'cat' --after-cursor 'c1' --show-cursor", tailer.Command())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "initial", PhaseInitial.String())
	assert.Equal(t, "resuming", PhaseResuming.String())
}
