package stream

import (
	"io"
	"strings"
	"testing"
)

// chunkReader yields its parts one Read at a time, mimicking arbitrary
// network segmentation.
type chunkReader struct {
	parts [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.parts) == 0 {
		return 0, io.EOF
	}
	part := r.parts[0]
	r.parts = r.parts[1:]
	n := copy(p, part)
	if n < len(part) {
		r.parts = append([][]byte{part[n:]}, r.parts...)
	}
	return n, nil
}

func decodeAll(t *testing.T, r io.Reader) []Event {
	t.Helper()
	d := NewDecoder(r)
	var out []Event
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, ev)
	}
}

func TestDecoderBasicSequence(t *testing.T) {
	t.Parallel()

	body := "data: {\"chunk\":\"Hel\"}\n" +
		"data: {\"chunk\":\"lo\"}\n" +
		"data: {\"tool\":\"search\"}\n" +
		"data: {\"chunk\":\"!\"}\n" +
		"data: {\"done\":true}\n"
	got := decodeAll(t, strings.NewReader(body))

	want := []Event{
		{Kind: KindChunk, Text: "Hel"},
		{Kind: KindChunk, Text: "lo"},
		{Kind: KindTool, Tool: "search"},
		{Kind: KindChunk, Text: "!"},
		{Kind: KindDone},
	}
	assertEvents(t, got, want)
}

func TestDecoderFrameSplitAcrossReads(t *testing.T) {
	t.Parallel()

	// One frame delivered in three reads, cut mid-JSON.
	r := &chunkReader{parts: [][]byte{
		[]byte("data: {\"chu"),
		[]byte("nk\":\"ab"),
		[]byte("c\"}\ndata: {\"done\":true}\n"),
	}}
	got := decodeAll(t, r)
	assertEvents(t, got, []Event{{Kind: KindChunk, Text: "abc"}, {Kind: KindDone}})
}

func TestDecoderMultibyteRuneSplitAcrossReads(t *testing.T) {
	t.Parallel()

	frame := []byte("data: {\"chunk\":\"你好\"}\ndata: {\"done\":true}\n")
	// Cut inside the first multi-byte character. The byte-level buffer
	// must reassemble it.
	cut := 16
	for ; cut < len(frame); cut++ {
		if frame[cut] >= 0x80 {
			cut++
			break
		}
	}
	r := &chunkReader{parts: [][]byte{frame[:cut], frame[cut:]}}
	got := decodeAll(t, r)
	assertEvents(t, got, []Event{{Kind: KindChunk, Text: "你好"}, {Kind: KindDone}})
}

func TestDecoderCRLFAndIgnoredRecords(t *testing.T) {
	t.Parallel()

	body := ": keepalive comment\r\n" +
		"event: message\r\n" +
		"\r\n" +
		"data: {\"chunk\":\"x\"}\r\n" +
		"id: 42\n" +
		"data: {\"done\":true}\r\n"
	got := decodeAll(t, strings.NewReader(body))
	assertEvents(t, got, []Event{{Kind: KindChunk, Text: "x"}, {Kind: KindDone}})
}

func TestDecoderMalformedFrameSkipped(t *testing.T) {
	t.Parallel()

	body := "data: {\"chunk\":\"a\"}\n" +
		"data: {not json at all\n" +
		"data: {\"chunk\":\"b\"}\n" +
		"data: {\"done\":true}\n"
	got := decodeAll(t, strings.NewReader(body))
	assertEvents(t, got, []Event{
		{Kind: KindChunk, Text: "a"},
		{Kind: KindChunk, Text: "b"},
		{Kind: KindDone},
	})
}

func TestDecoderTrailingFragmentDiscarded(t *testing.T) {
	t.Parallel()

	body := "data: {\"chunk\":\"kept\"}\n" +
		"data: {\"chunk\":\"never terminated\"}" // no newline
	got := decodeAll(t, strings.NewReader(body))
	assertEvents(t, got, []Event{{Kind: KindChunk, Text: "kept"}})
}

func TestDecoderToolAndChunkInOneRecord(t *testing.T) {
	t.Parallel()

	body := "data: {\"chunk\":\"after\",\"tool\":\"web\"}\ndata: {\"done\":true}\n"
	got := decodeAll(t, strings.NewReader(body))
	// The tool marker surfaces before the content of the same record.
	assertEvents(t, got, []Event{
		{Kind: KindTool, Tool: "web"},
		{Kind: KindChunk, Text: "after"},
		{Kind: KindDone},
	})
}

func TestDecoderErrorOutranksDone(t *testing.T) {
	t.Parallel()

	body := "data: {\"done\":true,\"error\":\"model not found\"}\n"
	got := decodeAll(t, strings.NewReader(body))
	assertEvents(t, got, []Event{{Kind: KindFailed, Message: "model not found"}})
	if !got[0].Terminal() {
		t.Fatalf("Failed event must be terminal")
	}
}

func TestDecoderEOFIsSticky(t *testing.T) {
	t.Parallel()

	d := NewDecoder(strings.NewReader("data: {\"done\":true}\n"))
	if ev, err := d.Next(); err != nil || ev.Kind != KindDone {
		t.Fatalf("first Next: ev=%+v err=%v", ev, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := d.Next(); err != io.EOF {
			t.Fatalf("Next after end: err=%v want io.EOF", err)
		}
	}
}

func assertEvents(t *testing.T, got, want []Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("event count=%d want=%d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d]=%+v want=%+v", i, got[i], want[i])
		}
	}
}
