package progress_test

import (
	"testing"

	"playhead/internal/progress"
)

func TestKindFromMediaType(t *testing.T) {
	cases := []struct {
		name      string
		mediaType string
		expected  progress.MediaKind
	}{
		{"etree", "etree", progress.KindAudio},
		{"audio", "audio", progress.KindAudio},
		{"audio uppercase", "AUDIO", progress.KindAudio},
		{"etree padded", "  etree  ", progress.KindAudio},
		{"movies", "movies", progress.KindVideo},
		{"television", "television", progress.KindVideo},
		{"empty", "", progress.KindVideo},
		{"garbage", "not-a-type", progress.KindVideo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := progress.KindFromMediaType(tc.mediaType); got != tc.expected {
				t.Fatalf("KindFromMediaType(%q) = %s, want %s", tc.mediaType, got, tc.expected)
			}
		})
	}
}

func TestFraction(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		duration float64
		expected float64
	}{
		{"zero duration", 100, 0, 0},
		{"negative duration", 100, -5, 0},
		{"halfway", 50, 100, 0.5},
		{"clamped above one", 150, 100, 1},
		{"clamped below zero", -10, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := progress.Record{CurrentTime: tc.current, Duration: tc.duration}
			if got := rec.Fraction(); got != tc.expected {
				t.Fatalf("Fraction() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCompletionAndSignificance(t *testing.T) {
	cases := []struct {
		name        string
		current     float64
		complete    bool
		significant bool
	}{
		{"just started", 1, false, false},
		{"below floor", 4.9, false, false},
		{"at floor", 5, false, true},
		{"midway", 50, false, true},
		{"just below completion", 94.9, false, true},
		{"at completion", 95, true, false},
		{"past end", 120, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := progress.Record{CurrentTime: tc.current, Duration: 100}
			if got := rec.IsComplete(); got != tc.complete {
				t.Fatalf("IsComplete() = %v, want %v", got, tc.complete)
			}
			if got := rec.HasSignificantProgress(); got != tc.significant {
				t.Fatalf("HasSignificantProgress() = %v, want %v", got, tc.significant)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name  string
		rec   progress.Record
		valid bool
	}{
		{"valid", progress.Record{ItemID: "concert-2004", Title: "Concert"}, true},
		{"empty id", progress.Record{ItemID: "", Title: "Concert"}, false},
		{"whitespace inside id", progress.Record{ItemID: "concert 2004", Title: "Concert"}, false},
		{"tab inside id", progress.Record{ItemID: "concert\t2004", Title: "Concert"}, false},
		{"empty title", progress.Record{ItemID: "concert-2004", Title: ""}, false},
		{"blank title", progress.Record{ItemID: "concert-2004", Title: "   "}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.IsValid(); got != tc.valid {
				t.Fatalf("IsValid() = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestIsResumable(t *testing.T) {
	track := func(v float64) *float64 { return &v }

	cases := []struct {
		name      string
		rec       progress.Record
		resumable bool
	}{
		{"just started", progress.Record{CurrentTime: 5, Duration: 3600}, false},
		{"at threshold", progress.Record{CurrentTime: 10, Duration: 3600}, false},
		{"deep in", progress.Record{CurrentTime: 100, Duration: 3600}, true},
		{"album with track progress", progress.Record{CurrentTime: 0.02, TrackCurrentTime: track(30)}, true},
		{"album barely into track", progress.Record{CurrentTime: 0.9, TrackCurrentTime: track(5)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.IsResumable(); got != tc.resumable {
				t.Fatalf("IsResumable() = %v, want %v", got, tc.resumable)
			}
		})
	}
}

func TestNewAlbumRecord(t *testing.T) {
	rec := progress.NewAlbumRecord("gd1977-05-08", 0.4, 5400, "Cornell 5/8/77", "etree", 3, "track04.flac", 210)

	if !rec.IsAlbum() {
		t.Fatal("expected album record")
	}
	if rec.Filename != progress.AlbumFilename {
		t.Fatalf("expected album sentinel filename, got %q", rec.Filename)
	}
	if rec.Kind != progress.KindAudio {
		t.Fatalf("expected audio kind, got %s", rec.Kind)
	}
	if rec.TrackIndex == nil || *rec.TrackIndex != 3 {
		t.Fatalf("unexpected track index: %v", rec.TrackIndex)
	}
	if rec.TrackFilename == nil || *rec.TrackFilename != "track04.flac" {
		t.Fatalf("unexpected track filename: %v", rec.TrackFilename)
	}
	if rec.TrackCurrentTime == nil || *rec.TrackCurrentTime != 210 {
		t.Fatalf("unexpected track time: %v", rec.TrackCurrentTime)
	}
}

func TestNewFileRecord(t *testing.T) {
	rec := progress.NewFileRecord("night-of-the-living-dead", "notld.mp4", 1200, 5700, "Night of the Living Dead", "movies")

	if rec.IsAlbum() {
		t.Fatal("expected single-file record")
	}
	if rec.Kind != progress.KindVideo {
		t.Fatalf("expected video kind, got %s", rec.Kind)
	}
	if rec.TrackIndex != nil || rec.TrackFilename != nil || rec.TrackCurrentTime != nil {
		t.Fatal("expected track fields absent on file records")
	}
}
