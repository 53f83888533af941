package video

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YouTubeVariantsShareEmbedURL(t *testing.T) {
	t.Parallel()

	const id = "dQw4w9WgXcQ"
	inputs := []string{
		"https://www.youtube.com/watch?v=" + id,
		"https://youtube.com/watch?v=" + id + "&t=42s",
		"https://youtu.be/" + id,
		"https://www.youtube.com/embed/" + id,
		"https://www.youtube.com/shorts/" + id,
		"youtu.be/" + id + "?si=abc",
	}

	want := "https://www.youtube.com/embed/" + id + "?autoplay=1"
	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			parsed := Parse(input)
			require.Equal(t, ServiceYouTube, parsed.Service)
			assert.Equal(t, id, parsed.ID)
			assert.Equal(t, input, parsed.OriginalURL)

			embed, ok := EmbedURL(parsed)
			require.True(t, ok)
			assert.Equal(t, want, embed)

			thumb, ok := ThumbnailURL(parsed)
			require.True(t, ok)
			assert.Equal(t, "https://img.youtube.com/vi/"+id+"/hqdefault.jpg", thumb)
		})
	}
}

func TestParse_VimeoVariants(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"https://vimeo.com/76979871",
		"https://player.vimeo.com/video/76979871",
		"https://player.vimeo.com/video/76979871?h=abc",
	} {
		parsed := Parse(input)
		assert.Equal(t, ServiceVimeo, parsed.Service, input)
		assert.Equal(t, "76979871", parsed.ID, input)

		embed, ok := EmbedURL(parsed)
		assert.True(t, ok)
		assert.Equal(t, "https://player.vimeo.com/video/76979871?autoplay=1", embed)

		_, ok = ThumbnailURL(parsed)
		assert.False(t, ok, "vimeo has no derived thumbnail")
	}
}

func TestParse_DirectFile(t *testing.T) {
	t.Parallel()

	parsed := Parse("https://example.com/clip.mp4?x=1")
	assert.Equal(t, ServiceDirect, parsed.Service)
	assert.False(t, parsed.HasID())

	embed, ok := EmbedURL(parsed)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/clip.mp4?x=1", embed)

	_, ok = ThumbnailURL(parsed)
	assert.False(t, ok)

	assert.Equal(t, ServiceDirect, Parse("https://cdn.example.com/reel.MOV").Service)
	assert.Equal(t, ServiceDirect, Parse("/galleries/a/b.webm").Service)
	assert.Equal(t, ServiceNone, Parse("https://example.com/clip.mp4/page").Service)
}

func TestParse_UnknownDegradesToNone(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "not a url", "https://example.com/watch?v=short", "https://youtube.com/watch?v=tooshort"} {
		parsed := Parse(input)
		assert.Equal(t, ServiceNone, parsed.Service, input)
		assert.Empty(t, parsed.ID, input)
		assert.False(t, IsValid(input), input)

		_, ok := EmbedURL(parsed)
		assert.False(t, ok)
		_, ok = ThumbnailURL(parsed)
		assert.False(t, ok)
	}
}

func TestParse_YouTubeWinsOverDirectExtension(t *testing.T) {
	t.Parallel()

	parsed := Parse("https://www.youtube.com/watch?v=dQw4w9WgXcQ&f=a.mp4")
	assert.Equal(t, ServiceYouTube, parsed.Service)
}

func TestDisplayThumbnail(t *testing.T) {
	t.Parallel()

	got, ok := DisplayThumbnail(" https://cdn.example.com/t.jpg ", "https://youtu.be/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/t.jpg", got)

	got, ok = DisplayThumbnail("", "https://youtu.be/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", got)

	_, ok = DisplayThumbnail("", "https://vimeo.com/1")
	assert.False(t, ok)
}

func TestParsedVideoJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Parse("nope"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"service":null,"originalUrl":"nope"}`, string(raw))

	raw, err = json.Marshal(Parse("https://vimeo.com/42"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"service":"vimeo","id":"42","originalUrl":"https://vimeo.com/42"}`, string(raw))
}
