package executor

import (
	"bytes"
	"sync"

	"github.com/Cyclone1070/p4bridge/internal/p4/output"
	"github.com/sirupsen/logrus"
)

// capture is the per-invocation line sink shared by the stdout and stderr
// readers. Appends and echo happen under one lock so lines never interleave.
type capture struct {
	mu    sync.Mutex
	lines []output.Line
	echo  logrus.FieldLogger
}

func (c *capture) add(text string, ch output.Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = append(c.lines, output.Line{Text: text, Channel: ch})
	if c.echo == nil {
		return
	}
	if ch == output.StdErr {
		c.echo.Error(text)
	} else {
		c.echo.Info(text)
	}
}

func (c *capture) snapshot() []output.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]output.Line(nil), c.lines...)
}

// lineWriter splits a byte stream into decoded lines tagged with one channel.
// A trailing fragment without a newline is emitted by flush.
type lineWriter struct {
	sink    *capture
	channel output.Channel
	pending bytes.Buffer
}

func newLineWriter(sink *capture, ch output.Channel) *lineWriter {
	return &lineWriter{sink: sink, channel: ch}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.pending.Write(p)
	for {
		data := w.pending.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		w.sink.add(output.Decode(bytes.TrimSuffix(data[:i], []byte{'\r'})), w.channel)
		w.pending.Next(i + 1)
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	if w.pending.Len() == 0 {
		return
	}
	w.sink.add(output.Decode(bytes.TrimSuffix(w.pending.Bytes(), []byte{'\r'})), w.channel)
	w.pending.Reset()
}
