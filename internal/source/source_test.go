// If you are AI: This file contains unit tests for the reader pump and payload access.

package source

import (
	"bytes"
	"context"
	"io"
	"testing"
	"testing/iotest"

	"flvdemux/internal/core/protocol/amf0"
	"flvdemux/internal/core/protocol/flv"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testStream(t *testing.T) []byte {
	t.Helper()
	meta, err := amf0.EncodeAll("onMetaData", amf0.ECMAArray{"duration": float64(1)})
	require.NoError(t, err)
	return flv.EncodeStream(flv.NewHeader(true, true),
		flv.NewTag(flv.TagTypeScript, 0, meta),
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x00, 0x00, 0x00, 0x00}),
		flv.NewTag(flv.TagTypeAudio, 21, []byte{0xAF, 0x01, 0xDE, 0xAD}),
	)
}

func collect(events *[]flv.Event) EventFunc {
	return func(ev flv.Event) error {
		*events = append(*events, ev)
		return nil
	}
}

func TestPumpChunkSizes(t *testing.T) {
	data := testStream(t)
	want, err := flv.Demux(data)
	require.NoError(t, err)

	for _, size := range []int{0, 1, 5, 64} {
		var got []flv.Event
		err := Pump(context.Background(), bytes.NewReader(data), flv.NewDemuxer(), size, collect(&got))
		require.NoError(t, err, "chunk size %d", size)
		require.Equal(t, want, got, "chunk size %d", size)
	}
}

func TestPumpShortReads(t *testing.T) {
	data := testStream(t)
	want, err := flv.Demux(data)
	require.NoError(t, err)

	var got []flv.Event
	err = Pump(context.Background(), iotest.OneByteReader(bytes.NewReader(data)), flv.NewDemuxer(), 1024, collect(&got))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPumpTruncated(t *testing.T) {
	data := testStream(t)
	err := Pump(context.Background(), bytes.NewReader(data[:len(data)-3]), flv.NewDemuxer(), 16, nil)
	require.True(t, errors.Is(err, flv.ErrTruncatedStream), "got %v", err)
}

func TestPumpStopsOnFailure(t *testing.T) {
	data := testStream(t)
	data[0] = 'X'

	var got []flv.Event
	r := &countingReader{r: bytes.NewReader(data)}
	err := Pump(context.Background(), r, flv.NewDemuxer(), 4, collect(&got))
	require.True(t, errors.Is(err, flv.ErrInvalidSignature), "got %v", err)
	require.Len(t, got, 1)
	require.Less(t, r.n, len(data))
}

func TestPumpReadError(t *testing.T) {
	boom := errors.New("boom")
	err := Pump(context.Background(), iotest.ErrReader(boom), flv.NewDemuxer(), 16, nil)
	require.Equal(t, boom, errors.Cause(err))
}

func TestPumpCallbackError(t *testing.T) {
	stop := errors.New("stop")
	err := Pump(context.Background(), bytes.NewReader(testStream(t)), flv.NewDemuxer(), 8, func(flv.Event) error {
		return stop
	})
	require.Equal(t, stop, err)
}

func TestPumpContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Pump(ctx, bytes.NewReader(testStream(t)), flv.NewDemuxer(), 8, nil)
	require.Equal(t, context.Canceled, err)
}

func TestReadPayload(t *testing.T) {
	data := testStream(t)
	events, err := flv.Demux(data)
	require.NoError(t, err)

	audio := events[3].(flv.TagParsed).Tag
	payload, err := ReadPayload(bytes.NewReader(data), audio)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAF, 0x01, 0xDE, 0xAD}, payload)

	_, err = ReadPayload(bytes.NewReader(data[:len(data)-8]), audio)
	require.Error(t, err)

	empty, err := ReadPayload(bytes.NewReader(nil), flv.TagRecord{})
	require.NoError(t, err)
	require.Empty(t, empty)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
