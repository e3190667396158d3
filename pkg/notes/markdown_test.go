package notes

import (
	"strings"
	"testing"

	"podclip/pkg/domain"
)

func TestFormatPlaybackPosition(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{930, "15:30"},
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatPlaybackPosition(tt.seconds); got != tt.want {
			t.Errorf("FormatPlaybackPosition(%f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRender_ResolvedClipWithTranscript(t *testing.T) {
	clip := &domain.PodcastClip{
		EpisodeTitle:            "Episode 42: Scaling",
		PodcastName:             "Tech Weekly",
		PlaybackPositionSeconds: 930,
		SourceURL:               "https://techweekly.example.com/42",
		Transcript:              "We talked about sharding.",
		ProcessingStatus:        domain.StatusResolved,
	}

	title, body := Render(clip, "")

	if title != "Episode 42: Scaling (Tech Weekly)" {
		t.Errorf("Expected composed title, got %q", title)
	}
	if !strings.Contains(body, "Position: 15:30") {
		t.Errorf("Expected formatted timestamp in body, got:\n%s", body)
	}
	if !strings.Contains(body, "https://techweekly.example.com/42") {
		t.Errorf("Expected episode link in body, got:\n%s", body)
	}
	if !strings.Contains(body, "## Transcript") || !strings.Contains(body, "We talked about sharding.") {
		t.Errorf("Expected transcript section in body, got:\n%s", body)
	}
}

func TestRender_FailedClipStillRendersRawFields(t *testing.T) {
	clip := &domain.PodcastClip{
		EpisodeTitle:            "Some Episode",
		PodcastName:             "Some Show",
		PlaybackPositionSeconds: 75,
		ProcessingStatus:        domain.StatusFailed,
	}

	_, body := Render(clip, "")

	if !strings.Contains(body, "Some Episode") || !strings.Contains(body, "Some Show") {
		t.Errorf("Expected raw title and podcast name in body, got:\n%s", body)
	}
	if !strings.Contains(body, "Position: 1:15") {
		t.Errorf("Expected position in body, got:\n%s", body)
	}
	if strings.Contains(body, "## Transcript") {
		t.Errorf("Expected no transcript section, got:\n%s", body)
	}
	if strings.Contains(body, "Link:") {
		t.Errorf("Expected no link line for unresolved clip, got:\n%s", body)
	}
}

func TestRender_ShowNotesAndUserNotes(t *testing.T) {
	clip := &domain.PodcastClip{
		EpisodeTitle: "Ep",
		UserNotes:    "remember to re-listen",
	}

	_, body := Render(clip, "An excerpt of the show notes.")

	if !strings.Contains(body, "## Show notes") || !strings.Contains(body, "An excerpt of the show notes.") {
		t.Errorf("Expected show notes section, got:\n%s", body)
	}
	if !strings.Contains(body, "## Notes") || !strings.Contains(body, "remember to re-listen") {
		t.Errorf("Expected user notes section, got:\n%s", body)
	}
}

func TestRender_ChannelMetadata(t *testing.T) {
	clip := &domain.PodcastClip{
		EpisodeTitle: "Episode 42: Scaling",
		PodcastName:  "Tech Weekly",
		ChannelTitle: "Tech Weekly Podcast",
		ChannelLink:  "https://techweekly.example.com",
	}

	title, body := Render(clip, "")

	// The verified channel title wins over the raw now-playing name
	if title != "Episode 42: Scaling (Tech Weekly Podcast)" {
		t.Errorf("Expected channel title in note title, got %q", title)
	}
	if !strings.Contains(body, "Podcast: Tech Weekly Podcast") {
		t.Errorf("Expected channel title as podcast name, got:\n%s", body)
	}
	if !strings.Contains(body, "Show link: https://techweekly.example.com") {
		t.Errorf("Expected channel link line, got:\n%s", body)
	}
}

func TestRender_EmptyClipGetsFallbackTitle(t *testing.T) {
	title, _ := Render(&domain.PodcastClip{}, "")
	if title != "Podcast clip" {
		t.Errorf("Expected fallback title, got %q", title)
	}
}
