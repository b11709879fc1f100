package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"

	ptr "github.com/GintGld/vam-seed/internal/lib/utils/pointers"
	"github.com/GintGld/vam-seed/internal/models"
)

var (
	ErrUnsupportedPlan = errors.New("unsupported plan format")
	ErrEmptyPlan       = errors.New("plan has no sequences")
)

// Plan describes asset trees to be created.
type Plan struct {
	Sequences []SequencePlan `json:"sequences" yaml:"sequences"`
}

type SequencePlan struct {
	models.VideoSequence `yaml:",inline"`
	Videos               []VideoPlan `json:"videos,omitempty" yaml:"videos,omitempty"`
}

type VideoPlan struct {
	models.Video `yaml:",inline"`
	References   []models.VideoReference `json:"references,omitempty" yaml:"references,omitempty"`
}

// Size returns number of objects the plan creates.
func (p Plan) Size() (sequences, videos, references int) {
	for _, sp := range p.Sequences {
		sequences++
		for _, vp := range sp.Videos {
			videos++
			references += len(vp.References)
		}
	}
	return
}

// Validate checks required fields of every object.
// Parent uuids are not required, they are known only after creation.
func (p Plan) Validate() error {
	if len(p.Sequences) == 0 {
		return ErrEmptyPlan
	}

	for i, sp := range p.Sequences {
		if err := sp.VideoSequence.Validate(); err != nil {
			return fmt.Errorf("sequences[%d]: %w", i, err)
		}
		for j, vp := range sp.Videos {
			v := vp.Video
			v.VideoSequenceUUID = "-"
			if err := v.Validate(); err != nil {
				return fmt.Errorf("sequences[%d].videos[%d]: %w", i, j, err)
			}
			for k, vr := range vp.References {
				vr.VideoUUID = "-"
				if err := vr.Validate(); err != nil {
					return fmt.Errorf("sequences[%d].videos[%d].references[%d]: %w", i, j, k, err)
				}
			}
		}
	}

	return nil
}

// LoadPlan reads plan from JSON or YAML file.
func LoadPlan(path string) (Plan, error) {
	const op = "seed.LoadPlan"

	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", op, err)
	}

	plan, err := ParsePlan(data)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return plan, nil
}

// ParsePlan detects plan format and decodes it.
func ParsePlan(data []byte) (Plan, error) {
	var (
		plan Plan
		err  error
	)

	switch mtype := mimetype.Detect(data); {
	case isMime(mtype, "application/json"):
		err = json.Unmarshal(data, &plan)
	case isMime(mtype, "text/plain"):
		err = yaml.Unmarshal(data, &plan)
	default:
		return Plan{}, fmt.Errorf("%w: %s", ErrUnsupportedPlan, mtype.String())
	}
	if err != nil {
		return Plan{}, err
	}

	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}

	return plan, nil
}

// isMime reports whether m or any of its parents is expected.
func isMime(m *mimetype.MIME, expected string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(expected) {
			return true
		}
	}
	return false
}

// DemoPlan returns the dataset for a fresh development VAM:
// three dives with their video files and tapes.
func DemoPlan() Plan {
	return Plan{
		Sequences: []SequencePlan{
			{
				VideoSequence: models.VideoSequence{Name: "T0097", CameraID: "Tiburon"},
				Videos: []VideoPlan{
					{
						Video: demoVideo("T0097-01", "2016-04-05T00:01:00Z", 15*time.Minute, nil),
						References: []models.VideoReference{
							proRes("http://www.mbari.org/foo/bar/T0097_20160405T000100Z.mov"),
							h264("http://www.mbari.org/foo/bar/T0097_20160405T000100Z.mp4", 1920, 1080, 59.97),
						},
					},
					{
						Video: demoVideo("T0097-02", "2016-04-05T00:01:15Z", 15*time.Minute, ptr.Pointer("This video is cool")),
						References: []models.VideoReference{
							proRes("http://www.mbari.org/foo/bar/T0097_20160405T000115Z.mov"),
							h264("http://www.mbari.org/foo/bar/T0097_20160405T000115Z.mp4", 1920, 1080, 19),
						},
					},
					{
						Video: demoVideo("T0097-01HD", "2016-04-05T00:01:00Z", 45*time.Minute,
							ptr.Pointer("This is a reference to a tape that overlaps with video files")),
						References: []models.VideoReference{
							{
								URI:         "urn:T0097-01HD",
								Width:       ptr.Pointer(1920),
								Height:      ptr.Pointer(1080),
								FrameRate:   ptr.Pointer(29.97),
								Description: ptr.Pointer("D5 Tape"),
							},
						},
					},
				},
			},
			{
				VideoSequence: models.VideoSequence{Name: "V1234", CameraID: "Ventana"},
				Videos: []VideoPlan{
					{
						Video: demoVideo("V1234-01", "2016-06-12T00:18:31Z", 15*time.Minute, nil),
						References: []models.VideoReference{
							proRes("http://www.mbari.org/foo/bar/V1234_20160612T001831.mov"),
							h264("http://www.mbari.org/foo/bar/V1234_20160612T001831.mp4", 1920, 1080, 19),
						},
					},
				},
			},
			{
				VideoSequence: models.VideoSequence{Name: "V9931", CameraID: "Ventana"},
				Videos: []VideoPlan{
					{
						Video: demoVideo("V9931-01", "2011-12-12T00:00:10Z", 45*time.Minute, nil),
						References: []models.VideoReference{
							proRes("http://www.mbari.org/foo/bar/V9931_201101212T000010Z.mov"),
							h264("http://www.mbari.org/foo/bar/V9931_201101212T000010Z.mp4", 1920, 1080, 30),
							h264("http://www.mbari.org/foo/bar/V9931_201101212T000010Z_midres.mp4", 720, 640, 19),
						},
					},
				},
			},
		},
	}
}

func demoVideo(name, start string, d time.Duration, description *string) models.Video {
	t, err := time.Parse(models.TimeFormat, start)
	if err != nil {
		panic(err)
	}

	return models.Video{
		Name:           name,
		Start:          t,
		DurationMillis: ptr.Pointer(d.Milliseconds()),
		Description:    description,
	}
}

func proRes(uri string) models.VideoReference {
	return models.VideoReference{
		URI:        uri,
		Container:  ptr.Pointer("video/quicktime"),
		VideoCodec: ptr.Pointer("ProRes HQ"),
		AudioCodec: ptr.Pointer("AAC"),
		Width:      ptr.Pointer(1920),
		Height:     ptr.Pointer(1080),
		FrameRate:  ptr.Pointer(59.97),
	}
}

func h264(uri string, width, height int, frameRate float64) models.VideoReference {
	return models.VideoReference{
		URI:        uri,
		Container:  ptr.Pointer("video/mp4"),
		VideoCodec: ptr.Pointer("H.264"),
		AudioCodec: ptr.Pointer("AAC"),
		Width:      ptr.Pointer(width),
		Height:     ptr.Pointer(height),
		FrameRate:  ptr.Pointer(frameRate),
	}
}
