package notes

import (
	"fmt"
	"strings"

	"podclip/pkg/domain"
)

// Render composes the note title and Markdown body for a clip. It works with
// whatever the pipeline managed to produce: a fully resolved clip gets the
// episode link and transcript, a failed one still gets the raw now-playing
// title and position.
func Render(clip *domain.PodcastClip, showNotesExcerpt string) (title, body string) {
	title = noteTitle(clip)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if podcast := podcastName(clip); podcast != "" {
		fmt.Fprintf(&b, "- Podcast: %s\n", podcast)
	}
	if clip.EpisodeTitle != "" {
		fmt.Fprintf(&b, "- Episode: %s\n", clip.EpisodeTitle)
	}
	fmt.Fprintf(&b, "- Position: %s\n", FormatPlaybackPosition(clip.PlaybackPositionSeconds))
	if clip.SourceURL != "" {
		fmt.Fprintf(&b, "- Link: %s\n", clip.SourceURL)
	}
	if clip.ChannelLink != "" {
		fmt.Fprintf(&b, "- Show link: %s\n", clip.ChannelLink)
	}

	if clip.Transcript != "" {
		b.WriteString("\n## Transcript\n\n")
		b.WriteString(strings.TrimSpace(clip.Transcript))
		b.WriteString("\n")
	}

	if showNotesExcerpt != "" {
		b.WriteString("\n## Show notes\n\n")
		b.WriteString(strings.TrimSpace(showNotesExcerpt))
		b.WriteString("\n")
	}

	if clip.UserNotes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(strings.TrimSpace(clip.UserNotes))
		b.WriteString("\n")
	}

	return title, b.String()
}

// podcastName returns the show name for the clip. The channel title from the
// resolved feed is canonical; the raw now-playing artist name is the
// fallback for unresolved clips.
func podcastName(clip *domain.PodcastClip) string {
	if title := strings.TrimSpace(clip.ChannelTitle); title != "" {
		return title
	}
	return strings.TrimSpace(clip.PodcastName)
}

// noteTitle composes a title from whatever names the clip has.
func noteTitle(clip *domain.PodcastClip) string {
	episode := strings.TrimSpace(clip.EpisodeTitle)
	podcast := podcastName(clip)

	switch {
	case episode != "" && podcast != "":
		return fmt.Sprintf("%s (%s)", episode, podcast)
	case episode != "":
		return episode
	case podcast != "":
		return podcast
	default:
		return "Podcast clip"
	}
}

// FormatPlaybackPosition renders a playback position as H:MM:SS, or M:SS
// when under an hour.
func FormatPlaybackPosition(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
