package runner

import "strings"

const (
	transcriptHeader = "Program output:\n"
	runSeparator     = "\n--- Run ---\n"
)

// Transcript accumulates the output pane across runs.
type Transcript struct {
	b strings.Builder
}

// NewTranscript returns a transcript holding only the header.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.Clear()
	return t
}

// Begin marks the start of a run.
func (t *Transcript) Begin() {
	t.b.WriteString(runSeparator)
}

// Append adds the display text of a finished run.
func (t *Transcript) Append(r Result) {
	text := r.Display()
	t.b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		t.b.WriteByte('\n')
	}
}

// Clear resets to the header.
func (t *Transcript) Clear() {
	t.b.Reset()
	t.b.WriteString(transcriptHeader)
}

func (t *Transcript) String() string {
	return t.b.String()
}
