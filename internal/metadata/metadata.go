// If you are AI: This file interprets onMetaData script-data payloads.
// Values are decoded with the amf0 package and mapped onto Metadata with mapstructure.

package metadata

import (
	"flvdemux/internal/core/protocol/amf0"
	"flvdemux/internal/core/protocol/flv"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	// Name is the script-data entry name that carries stream metadata.
	Name = "onMetaData"
	// setDataFrame prefixes onMetaData in streams recorded from RTMP publishers.
	setDataFrame = "@setDataFrame"
)

// ErrNotMetadata is returned for script-data payloads that are not onMetaData.
var ErrNotMetadata = errors.New("script data is not onMetaData")

// Metadata holds the well-known onMetaData properties.
// Unrecognised properties are kept in Extra.
type Metadata struct {
	Duration        float64                `mapstructure:"duration" json:"duration"`
	Width           float64                `mapstructure:"width" json:"width,omitempty"`
	Height          float64                `mapstructure:"height" json:"height,omitempty"`
	FrameRate       float64                `mapstructure:"framerate" json:"framerate,omitempty"`
	VideoCodecID    float64                `mapstructure:"videocodecid" json:"videocodecid,omitempty"`
	VideoDataRate   float64                `mapstructure:"videodatarate" json:"videodatarate,omitempty"`
	AudioCodecID    float64                `mapstructure:"audiocodecid" json:"audiocodecid,omitempty"`
	AudioDataRate   float64                `mapstructure:"audiodatarate" json:"audiodatarate,omitempty"`
	AudioSampleRate float64                `mapstructure:"audiosamplerate" json:"audiosamplerate,omitempty"`
	AudioSampleSize float64                `mapstructure:"audiosamplesize" json:"audiosamplesize,omitempty"`
	Stereo          bool                   `mapstructure:"stereo" json:"stereo,omitempty"`
	FileSize        float64                `mapstructure:"filesize" json:"filesize,omitempty"`
	Encoder         string                 `mapstructure:"encoder" json:"encoder,omitempty"`
	Extra           map[string]interface{} `mapstructure:",remain" json:"extra,omitempty"`
}

// Decode interprets a complete script-data tag payload, including its end marker.
// The payload should already have passed flv.DecodeScriptData.
func Decode(payload []byte) (*Metadata, error) {
	if len(payload) == 0 {
		return nil, errors.Wrap(ErrNotMetadata, "empty payload")
	}
	body := payload
	if n := len(payload); n >= 3 && payload[n-3] == 0 && payload[n-2] == 0 && payload[n-1] == flv.ScriptDataEndMarker {
		body = payload[:n-3]
	}

	vals, err := amf0.DecodeAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode script data")
	}
	if len(vals) > 0 && vals[0] == setDataFrame {
		vals = vals[1:]
	}
	if len(vals) < 2 || vals[0] != Name {
		return nil, ErrNotMetadata
	}

	props := vals[1]
	switch props.(type) {
	case amf0.ECMAArray, amf0.Object:
	default:
		return nil, errors.Wrapf(ErrNotMetadata, "properties are %T", props)
	}

	var md Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create metadata decoder")
	}
	if err := decoder.Decode(props); err != nil {
		return nil, errors.Wrap(err, "map metadata")
	}
	return &md, nil
}
