package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ApplyForm overwrites fields present in form.
func (vs *VideoSequence) ApplyForm(form url.Values) error {
	formString(form, "name", &vs.Name)
	formString(form, "camera_id", &vs.CameraID)
	formOptString(form, "description", &vs.Description)
	return nil
}

// ApplyForm overwrites fields present in form.
// Start time is read from "start" or "start_timestamp".
func (v *Video) ApplyForm(form url.Values) error {
	formString(form, "name", &v.Name)
	formString(form, "video_sequence_uuid", &v.VideoSequenceUUID)
	formOptString(form, "description", &v.Description)

	for _, key := range []string{"start", "start_timestamp"} {
		if !form.Has(key) {
			continue
		}
		t, err := parseTime(form.Get(key))
		if err != nil {
			return fmt.Errorf("%s: %w", key, ErrInvalidField)
		}
		v.Start = t
	}

	if form.Has("duration_millis") {
		d, err := strconv.ParseInt(form.Get("duration_millis"), 10, 64)
		if err != nil || d < 0 {
			return fmt.Errorf("duration_millis: %w", ErrInvalidField)
		}
		v.DurationMillis = &d
	}

	return nil
}

// ApplyForm overwrites fields present in form.
func (vr *VideoReference) ApplyForm(form url.Values) error {
	formString(form, "video_uuid", &vr.VideoUUID)
	formString(form, "uri", &vr.URI)
	formOptString(form, "container", &vr.Container)
	formOptString(form, "video_codec", &vr.VideoCodec)
	formOptString(form, "audio_codec", &vr.AudioCodec)
	formOptString(form, "description", &vr.Description)

	for key, dst := range map[string]**int{"width": &vr.Width, "height": &vr.Height} {
		if !form.Has(key) {
			continue
		}
		n, err := strconv.Atoi(form.Get(key))
		if err != nil || n < 0 {
			return fmt.Errorf("%s: %w", key, ErrInvalidField)
		}
		*dst = &n
	}

	if form.Has("frame_rate") {
		f, err := strconv.ParseFloat(form.Get("frame_rate"), 64)
		if err != nil || f < 0 {
			return fmt.Errorf("frame_rate: %w", ErrInvalidField)
		}
		vr.FrameRate = &f
	}

	if form.Has("size_bytes") {
		n, err := strconv.ParseInt(form.Get("size_bytes"), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("size_bytes: %w", ErrInvalidField)
		}
		vr.SizeBytes = &n
	}

	return nil
}

func formString(form url.Values, key string, dst *string) {
	if form.Has(key) {
		*dst = form.Get(key)
	}
}

func formOptString(form url.Values, key string, dst **string) {
	if form.Has(key) {
		s := form.Get(key)
		*dst = &s
	}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
