package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// ResourceType names one tier of the
// sequence -> video -> reference hierarchy.
type ResourceType string

const (
	ResourceSequence  ResourceType = "videosequence"
	ResourceVideo     ResourceType = "video"
	ResourceReference ResourceType = "videoreference"
)

var (
	ErrUnknownResource = errors.New("unknown resource type")
	ErrFieldRequired   = errors.New("field required")
	ErrInvalidField    = errors.New("invalid field value")
)

// ParseResourceType accepts singular, plural
// and short ("sequence", "reference") names.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSuffix(s, "s")) {
	case "videosequence", "sequence":
		return ResourceSequence, nil
	case "video":
		return ResourceVideo, nil
	case "videoreference", "reference", "ref":
		return ResourceReference, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// Path returns URL path segment of the collection.
func (rt ResourceType) Path(plural bool) string {
	if plural {
		return string(rt) + "s"
	}
	return string(rt)
}

// TimeFormat is used for start timestamps on the wire,
// fractional seconds are kept. Same layout is set on Video.Start form tag.
const TimeFormat = time.RFC3339Nano

type VideoSequence struct {
	UUID        string     `json:"uuid,omitempty" yaml:"uuid,omitempty" url:"-"`
	Name        string     `json:"name" yaml:"name" url:"name,omitempty"`
	CameraID    string     `json:"camera_id" yaml:"camera_id" url:"camera_id,omitempty"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty" url:"description,omitempty"`
	LastUpdated *time.Time `json:"last_updated_time,omitempty" yaml:"-" url:"-"`
}

type Video struct {
	UUID              string     `json:"uuid,omitempty" yaml:"uuid,omitempty" url:"-"`
	Name              string     `json:"name" yaml:"name" url:"name,omitempty"`
	VideoSequenceUUID string     `json:"video_sequence_uuid" yaml:"-" url:"video_sequence_uuid,omitempty"`
	Start             time.Time  `json:"start_timestamp" yaml:"start" url:"start,omitempty" layout:"2006-01-02T15:04:05.999999999Z07:00"`
	DurationMillis    *int64     `json:"duration_millis,omitempty" yaml:"duration_millis,omitempty" url:"duration_millis,omitempty"`
	Description       *string    `json:"description,omitempty" yaml:"description,omitempty" url:"description,omitempty"`
	LastUpdated       *time.Time `json:"last_updated_time,omitempty" yaml:"-" url:"-"`
}

// Duration returns video length, zero if unknown.
func (v Video) Duration() time.Duration {
	if v.DurationMillis == nil {
		return 0
	}
	return time.Duration(*v.DurationMillis) * time.Millisecond
}

// End returns time of video end (UTC).
func (v Video) End() time.Time {
	return v.Start.UTC().Add(v.Duration())
}

type VideoReference struct {
	UUID        string     `json:"uuid,omitempty" yaml:"uuid,omitempty" url:"-"`
	VideoUUID   string     `json:"video_uuid" yaml:"-" url:"video_uuid,omitempty"`
	URI         string     `json:"uri" yaml:"uri" url:"uri,omitempty"`
	Container   *string    `json:"container,omitempty" yaml:"container,omitempty" url:"container,omitempty"`
	VideoCodec  *string    `json:"video_codec,omitempty" yaml:"video_codec,omitempty" url:"video_codec,omitempty"`
	AudioCodec  *string    `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty" url:"audio_codec,omitempty"`
	Width       *int       `json:"width,omitempty" yaml:"width,omitempty" url:"width,omitempty"`
	Height      *int       `json:"height,omitempty" yaml:"height,omitempty" url:"height,omitempty"`
	FrameRate   *float64   `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty" url:"frame_rate,omitempty"`
	SizeBytes   *int64     `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty" url:"size_bytes,omitempty"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty" url:"description,omitempty"`
	LastUpdated *time.Time `json:"last_updated_time,omitempty" yaml:"-" url:"-"`
}

// Form encodes sequence fields for a create or update request.
// Empty fields are omitted.
func (vs VideoSequence) Form() (url.Values, error) {
	return query.Values(vs)
}

// Form encodes video fields, start time is sent in UTC.
func (v Video) Form() (url.Values, error) {
	if !v.Start.IsZero() {
		v.Start = v.Start.UTC()
	}
	return query.Values(v)
}

func (vr VideoReference) Form() (url.Values, error) {
	return query.Values(vr)
}

// Validate checks fields required on creation.
func (vs VideoSequence) Validate() error {
	if vs.Name == "" {
		return fmt.Errorf("name: %w", ErrFieldRequired)
	}
	if vs.CameraID == "" {
		return fmt.Errorf("camera_id: %w", ErrFieldRequired)
	}
	return nil
}

func (v Video) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("name: %w", ErrFieldRequired)
	}
	if v.VideoSequenceUUID == "" {
		return fmt.Errorf("video_sequence_uuid: %w", ErrFieldRequired)
	}
	if v.Start.IsZero() {
		return fmt.Errorf("start: %w", ErrFieldRequired)
	}
	if v.DurationMillis != nil && *v.DurationMillis < 0 {
		return fmt.Errorf("duration_millis: %w", ErrInvalidField)
	}
	return nil
}

func (vr VideoReference) Validate() error {
	if vr.VideoUUID == "" {
		return fmt.Errorf("video_uuid: %w", ErrFieldRequired)
	}
	if vr.URI == "" {
		return fmt.Errorf("uri: %w", ErrFieldRequired)
	}
	if _, err := url.Parse(vr.URI); err != nil {
		return fmt.Errorf("uri: %w", ErrInvalidField)
	}
	return nil
}
