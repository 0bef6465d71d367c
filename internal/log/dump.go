package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// DocDump receives every rendered document before it is written.
type DocDump interface {
	Dump(binding, lang, device string, doc []byte)
}

// docDump implements DocDump with thread-safe output.
type docDump struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewDump creates a new DocDump. If writer is nil, returns a no-op dump.
func NewDump(w io.Writer) DocDump {
	return &docDump{w: w, now: time.Now}
}

// Dump writes one framed document:
//
//	2026/10/17 12:00:00 ruby/en Temperature: 2048 bytes
//	<document>
//	--- end Temperature ---
func (d *docDump) Dump(binding, lang, device string, doc []byte) {
	if d.w == nil {
		return
	}

	header := fmt.Sprintf("%s %s/%s %s: %d bytes\n",
		d.now().Format("2006/01/02 15:04:05"),
		binding,
		lang,
		device,
		len(doc))

	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = io.WriteString(d.w, header)
	_, _ = d.w.Write(doc)
	if len(doc) > 0 && doc[len(doc)-1] != '\n' {
		_, _ = io.WriteString(d.w, "\n")
	}
	_, _ = fmt.Fprintf(d.w, "--- end %s ---\n", device)
}
