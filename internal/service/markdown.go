package service

import (
	"bytes"
	"fmt"
	htmlstd "html"
	"regexp"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/video"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	contentSanitizer = buildContentSanitizer()

	embedLinePattern = regexp.MustCompile(`^\s*<?(https?://[^\s>]+)>?\s*$`)
	embedSrcPattern  = regexp.MustCompile(`^https://(?:www\.youtube\.com/embed/|player\.vimeo\.com/video/)[A-Za-z0-9_-]+$`)
	listIndexPattern = regexp.MustCompile(`^\d+\.\s+`)
)

// RenderMarkdown turns blog markdown into sanitized HTML. A line holding only
// a YouTube, Vimeo or direct video link becomes an embedded player.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(applyVideoEmbeds(content)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return contentSanitizer.Sanitize(buf.String()), nil
}

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe", "video")
	policy.AllowAttrs("class", "data-video-service").OnElements("div")
	policy.AllowAttrs("src").Matching(embedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading").OnElements("iframe")
	policy.AllowAttrs("src").Matching(regexp.MustCompile(`^https?://`)).OnElements("video")
	policy.AllowAttrs("controls", "preload").OnElements("video")
	return policy
}

func applyVideoEmbeds(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	fence := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence != "" || isIndentedCode(line) || skipEmbedLine(trimmed) {
			continue
		}

		match := embedLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		if embed, ok := videoEmbedHTML(match[1]); ok {
			lines[i] = embed
		}
	}

	return strings.Join(lines, "\n")
}

func videoEmbedHTML(raw string) (string, bool) {
	parsed := video.Parse(raw)
	switch parsed.Service {
	case video.ServiceYouTube:
		return iframeEmbed(parsed.Service, "https://www.youtube.com/embed/"+parsed.ID), true
	case video.ServiceVimeo:
		return iframeEmbed(parsed.Service, "https://player.vimeo.com/video/"+parsed.ID), true
	case video.ServiceDirect:
		return fmt.Sprintf(
			`<div class="video-embed" data-video-service="direct"><video src="%s" controls preload="metadata"></video></div>`,
			htmlstd.EscapeString(parsed.OriginalURL),
		), true
	default:
		return "", false
	}
}

func iframeEmbed(service video.Service, src string) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-service="%s"><iframe src="%s" title="%s video" loading="lazy" allow="encrypted-media; picture-in-picture; fullscreen" allowfullscreen frameborder="0"></iframe></div>`,
		htmlstd.EscapeString(service.String()),
		htmlstd.EscapeString(src),
		htmlstd.EscapeString(service.String()),
	)
}

func fenceMarker(line string) string {
	switch {
	case strings.HasPrefix(line, "```"):
		return "```"
	case strings.HasPrefix(line, "~~~"):
		return "~~~"
	default:
		return ""
	}
}

func isIndentedCode(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func skipEmbedLine(line string) bool {
	if line == "" || strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return listIndexPattern.MatchString(line)
}
