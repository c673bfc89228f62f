// If you are AI: This file contains unit tests for batch probing.

package probe

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"flvdemux/internal/core/protocol/amf0"
	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func testStream(t *testing.T) []byte {
	t.Helper()
	meta, err := amf0.EncodeAll("onMetaData", amf0.ECMAArray{
		"duration": float64(0.08),
		"width":    float64(640),
		"height":   float64(360),
	})
	require.NoError(t, err)
	return flv.EncodeStream(flv.NewHeader(true, true),
		flv.NewTag(flv.TagTypeScript, 0, meta),
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x00}),
		flv.NewTag(flv.TagTypeAudio, 23, []byte{0xAF, 0x01}),
		flv.NewTag(flv.TagTypeVideo, 40, []byte{0x27, 0x01}),
		flv.NewTag(flv.TagTypeAudio, 80, []byte{0xAF, 0x01}),
	)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestProbe(t *testing.T) {
	data := testStream(t)
	p := New(Options{ChunkSize: 7, Metadata: true}, nil, nil)

	rep := p.Probe(context.Background(), bytes.NewReader(data))
	require.True(t, rep.OK(), rep.Error)
	require.NotNil(t, rep.Header)
	require.True(t, rep.Header.HasVideo)
	require.Equal(t, map[string]int{"script": 1, "video": 2, "audio": 2}, rep.Tags)
	require.Equal(t, uint32(80), rep.Duration)
	require.Equal(t, uint64(len(data)), rep.Bytes)
	require.NotNil(t, rep.Metadata)
	require.Equal(t, 640.0, rep.Metadata.Width)
	require.Equal(t, 360.0, rep.Metadata.Height)
}

func TestProbeWithoutMetadata(t *testing.T) {
	p := New(Options{}, nil, nil)
	rep := p.Probe(context.Background(), bytes.NewReader(testStream(t)))
	require.True(t, rep.OK())
	require.Nil(t, rep.Metadata)
}

func TestProbeTruncated(t *testing.T) {
	data := testStream(t)
	m := metrics.New()
	p := New(Options{ChunkSize: 16}, nil, m)

	rep := p.Probe(context.Background(), bytes.NewReader(data[:len(data)-5]))
	require.False(t, rep.OK())
	require.Equal(t, flv.KindTruncatedStream.String(), rep.ErrorKind)
	require.Equal(t, 3, rep.Tags["video"]+rep.Tags["audio"])
	n, err := testutil.GatherAndCount(m.Registry(), "flvdemux_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data := testStream(t)
	bad := append([]byte{}, data...)
	bad[4] = 0x07

	paths := []string{
		writeFile(t, dir, "good.flv", data),
		writeFile(t, dir, "bad.flv", bad),
		filepath.Join(dir, "missing.flv"),
		writeFile(t, dir, "good2.flv", data),
	}

	p := New(Options{Workers: 2, ChunkSize: 5, Metadata: true}, nil, nil)
	reports, err := p.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	for i, rep := range reports {
		require.Equal(t, paths[i], rep.Path)
	}
	require.True(t, reports[0].OK())
	require.True(t, reports[3].OK())
	require.Equal(t, reports[0].Tags, reports[3].Tags)

	require.False(t, reports[1].OK())
	require.Equal(t, flv.KindInvalidReservedBits.String(), reports[1].ErrorKind)
	require.Nil(t, reports[1].Header)

	require.False(t, reports[2].OK())
	require.Empty(t, reports[2].ErrorKind)
}
