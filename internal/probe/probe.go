// If you are AI: This file implements batch probing of FLV files.
// Each file is demuxed by its own Demuxer; files run concurrently on an ants worker pool.

package probe

import (
	"context"
	"io"
	"os"
	"sync"

	"flvdemux/internal/core/protocol/flv"
	"flvdemux/internal/metadata"
	"flvdemux/internal/metrics"
	"flvdemux/internal/source"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures a Prober.
type Options struct {
	Workers   int  // Files probed in parallel
	ChunkSize int  // Bytes per Feed call
	Metadata  bool // Decode onMetaData payloads
}

// Report summarises one probed stream.
type Report struct {
	Path      string             `json:"path"`
	Header    *flv.Header        `json:"header,omitempty"`
	Tags      map[string]int     `json:"tags"`
	Bytes     uint64             `json:"bytes"`
	Duration  uint32             `json:"duration_ms"` // timestamp of the last tag
	Metadata  *metadata.Metadata `json:"metadata,omitempty"`
	Error     string             `json:"error,omitempty"`
	ErrorKind string             `json:"error_kind,omitempty"`
	Err       error              `json:"-"`
}

// OK reports whether the stream demuxed cleanly.
func (r *Report) OK() bool {
	return r.Err == nil
}

// Prober probes files.
type Prober struct {
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Prober. A nil logger discards logs and nil metrics record nothing.
func New(opts Options, logger *zap.Logger, m *metrics.Metrics) *Prober {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{opts: opts, logger: logger, metrics: m}
}

// Run probes every path and returns the reports in input order.
// The returned error is only set when the pool cannot run; per-file failures are in the reports.
func (p *Prober) Run(ctx context.Context, paths []string) ([]Report, error) {
	reports := make([]Report, len(paths))

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(p.opts.Workers, func(arg interface{}) {
		defer wg.Done()
		i := arg.(int)
		reports[i] = p.ProbeFile(ctx, paths[i])
	})
	if err != nil {
		return nil, errors.Wrap(err, "create probe pool")
	}
	defer pool.Release()

	for i := range paths {
		wg.Add(1)
		if err := pool.Invoke(i); err != nil {
			wg.Done()
			reports[i] = Report{Path: paths[i], Err: err, Error: err.Error()}
		}
	}
	wg.Wait()
	return reports, nil
}

// ProbeFile opens and probes a single file.
func (p *Prober) ProbeFile(ctx context.Context, path string) Report {
	f, err := os.Open(path)
	if err != nil {
		rep := Report{Path: path, Tags: map[string]int{}}
		rep.fail(errors.Wrap(err, "open"))
		return rep
	}
	defer f.Close()

	rep := p.Probe(ctx, f)
	rep.Path = path
	return rep
}

// Probe demuxes r to the end. Metadata payloads are read back through r's ReaderAt.
func (p *Prober) Probe(ctx context.Context, r interface {
	io.Reader
	io.ReaderAt
}) Report {
	rep := Report{Tags: map[string]int{}}
	d := flv.NewDemuxer()

	err := source.Pump(ctx, r, d, p.opts.ChunkSize, func(ev flv.Event) error {
		p.metrics.ObserveEvents([]flv.Event{ev})
		switch e := ev.(type) {
		case flv.HeaderParsed:
			h := e.Header
			rep.Header = &h
		case flv.TagParsed:
			rec := e.Tag
			rep.Tags[rec.Header.Type.String()]++
			if rec.Header.Timestamp > rep.Duration {
				rep.Duration = rec.Header.Timestamp
			}
			if p.opts.Metadata && rep.Metadata == nil && rec.Script != nil && rec.Script.Name == metadata.Name {
				rep.Metadata = p.readMetadata(r, rec)
			}
		}
		return nil
	})
	rep.Bytes = d.State().AbsoluteOffset + uint64(d.Buffered())
	p.metrics.ObserveBytes(int(rep.Bytes))

	if err != nil {
		var fe *flv.Error
		if errors.As(err, &fe) && fe.Kind == flv.KindTruncatedStream {
			p.metrics.ObserveFailure(fe.Kind)
		}
		rep.fail(err)
	}
	return rep
}

// readMetadata decodes an onMetaData payload. Failures are logged, not reported.
func (p *Prober) readMetadata(r io.ReaderAt, rec flv.TagRecord) *metadata.Metadata {
	payload, err := source.ReadPayload(r, rec)
	if err != nil {
		p.logger.Warn("read metadata payload", zap.Uint64("offset", rec.PayloadOffset), zap.Error(err))
		return nil
	}
	md, err := metadata.Decode(payload)
	if err != nil {
		p.logger.Warn("decode metadata", zap.Uint64("offset", rec.PayloadOffset), zap.Error(err))
		return nil
	}
	return md
}

func (r *Report) fail(err error) {
	r.Err = err
	r.Error = err.Error()
	var fe *flv.Error
	if errors.As(err, &fe) {
		r.ErrorKind = fe.Kind.String()
	}
}
