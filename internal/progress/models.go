package progress

import (
	"strings"
	"time"
	"unicode"
)

// MediaKind partitions records into the two resume views.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindAudio MediaKind = "audio"
)

// AlbumFilename is the sentinel filename under which whole-album progress for
// multi-track audio is keyed. For album records CurrentTime holds a coarse
// album-level fraction surrogate while TrackCurrentTime carries the
// authoritative seconds elapsed in the active track.
const AlbumFilename = "__album__"

const (
	// completionThreshold marks playback at or beyond this fraction as
	// finished and not worth resuming.
	completionThreshold = 0.95
	// significantFloor is the fraction below which progress is treated as
	// "just started".
	significantFloor = 0.05
	// resumeThresholdSeconds separates meaningful progress from an
	// accidental tap of the play button.
	resumeThresholdSeconds = 10.0
)

// KindFromMediaType maps the library service's free-form media-type string to
// a MediaKind. Audio collections arrive as "etree" (live concert archives) or
// "audio"; everything else plays as video.
func KindFromMediaType(mediaType string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "etree", "audio":
		return KindAudio
	default:
		return KindVideo
	}
}

// Record is one resumable progress entry, keyed by (ItemID, Filename).
type Record struct {
	ItemID       string    `json:"item_id"`
	Filename     string    `json:"filename"`
	CurrentTime  float64   `json:"current_time"`
	Duration     float64   `json:"duration"`
	LastActivity time.Time `json:"last_activity"`
	Title        string    `json:"title"`
	Kind         MediaKind `json:"media_kind"`
	ImageURL     string    `json:"image_url,omitempty"`

	// Track-level fields are set only for whole-album audio records.
	TrackIndex       *int     `json:"track_index,omitempty"`
	TrackFilename    *string  `json:"track_filename,omitempty"`
	TrackCurrentTime *float64 `json:"track_current_time,omitempty"`
}

// NewFileRecord builds a progress record for a single playable file.
// CurrentTime and Duration are seconds.
func NewFileRecord(itemID, filename string, currentTime, duration float64, title, mediaType string) Record {
	return Record{
		ItemID:      itemID,
		Filename:    filename,
		CurrentTime: currentTime,
		Duration:    duration,
		Title:       title,
		Kind:        KindFromMediaType(mediaType),
	}
}

// NewAlbumRecord builds whole-album progress for multi-track audio. The
// albumFraction argument is the coarse album-level position surrogate stored
// in CurrentTime; trackCurrentTime is the seconds elapsed in the active track
// and is what resumability checks consult.
func NewAlbumRecord(itemID string, albumFraction, duration float64, title, mediaType string, trackIndex int, trackFilename string, trackCurrentTime float64) Record {
	idx := trackIndex
	file := trackFilename
	elapsed := trackCurrentTime
	return Record{
		ItemID:           itemID,
		Filename:         AlbumFilename,
		CurrentTime:      albumFraction,
		Duration:         duration,
		Title:            title,
		Kind:             KindFromMediaType(mediaType),
		TrackIndex:       &idx,
		TrackFilename:    &file,
		TrackCurrentTime: &elapsed,
	}
}

// IsAlbum reports whether the record carries whole-album progress.
func (r Record) IsAlbum() bool {
	return r.Filename == AlbumFilename
}

// Fraction returns the playback position as a fraction of duration, clamped
// to [0, 1]. A non-positive duration yields 0.
func (r Record) Fraction() float64 {
	if r.Duration <= 0 {
		return 0
	}
	fraction := r.CurrentTime / r.Duration
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// IsComplete reports whether playback has effectively finished.
func (r Record) IsComplete() bool {
	return r.Fraction() >= completionThreshold
}

// HasSignificantProgress reports whether the record sits between "just
// started" and "finished".
func (r Record) HasSignificantProgress() bool {
	fraction := r.Fraction()
	return fraction >= significantFloor && fraction < completionThreshold
}

// IsValid reports whether the record is safe to surface in resume lists.
// Item identifiers never contain whitespace in the library service's format,
// and a record without a displayable title is useless to the UI.
func (r Record) IsValid() bool {
	if r.ItemID == "" {
		return false
	}
	if strings.ContainsFunc(r.ItemID, unicode.IsSpace) {
		return false
	}
	return strings.TrimSpace(r.Title) != ""
}

// IsResumable reports whether enough of the active unit has played to be
// worth resuming. Album records consult TrackCurrentTime because the coarse
// album-level fraction in CurrentTime says nothing about seconds into the
// current track.
func (r Record) IsResumable() bool {
	elapsed := r.CurrentTime
	if r.TrackCurrentTime != nil {
		elapsed = *r.TrackCurrentTime
	}
	return elapsed > resumeThresholdSeconds
}
