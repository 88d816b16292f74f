package stream

import (
	"bytes"
	"encoding/json"
	"io"

	"mcpchat/internal/logger"
)

// framePrefix marks the records of interest; all other lines are
// ignored for forward compatibility.
var framePrefix = []byte("data: ")

// Decoder turns an arbitrarily-chunked byte stream into a finite
// sequence of Events, one Next call at a time. Buffering happens at the
// byte level, so a multi-byte character split across two reads is
// reassembled before any decoding. A Decoder is not restartable.
type Decoder struct {
	r       io.Reader
	buf     []byte
	queue   []Event
	eof     bool
	readBuf []byte
	log     *logger.LogEntry
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:       r,
		readBuf: make([]byte, 4096),
		log:     logger.Named("stream"),
	}
}

// Next returns the next decoded event. io.EOF signals that the
// underlying stream ended; any unterminated trailing fragment is
// discarded, never emitted as a partial frame.
func (d *Decoder) Next() (Event, error) {
	for {
		if len(d.queue) > 0 {
			ev := d.queue[0]
			d.queue = d.queue[1:]
			return ev, nil
		}
		if d.eof {
			return Event{}, io.EOF
		}

		n, err := d.r.Read(d.readBuf)
		if n > 0 {
			d.buf = append(d.buf, d.readBuf[:n]...)
			d.drainLines()
		}
		if err != nil {
			if err != io.EOF {
				return Event{}, err
			}
			d.eof = true
			if len(d.buf) > 0 {
				d.log.WithField("bytes", len(d.buf)).Warn("discarding unterminated stream remainder")
				d.buf = nil
			}
		}
	}
}

// drainLines splits complete lines off the buffer and decodes each,
// keeping the final (possibly incomplete) fragment buffered.
func (d *Decoder) drainLines() {
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			return
		}
		line := d.buf[:idx]
		d.buf = d.buf[idx+1:]
		d.decodeLine(bytes.TrimSuffix(line, []byte("\r")))
	}
}

func (d *Decoder) decodeLine(line []byte) {
	if !bytes.HasPrefix(line, framePrefix) {
		return
	}
	payload := line[len(framePrefix):]
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		// A malformed frame is skipped, never fatal to the stream.
		d.log.WithField("err", err).Warnf("skipping malformed frame: %.200s", payload)
		return
	}
	d.queue = append(d.queue, rec.events()...)
}
