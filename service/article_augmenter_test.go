// ABOUTME: Tests for flavor image and excerpt derivation
// ABOUTME: Covers the YouTube thumbnail rule and the &hellip; placeholder

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"feed-sync/models"
)

func TestArticleAugmenter_FlavorImage(t *testing.T) {
	tests := map[string]struct {
		article models.Article
		want    string
	}{
		"existing uri is kept": {
			article: models.Article{
				FlavorImageURI: "https://cdn.example.com/cover.jpg",
				Content:        `<p><img src="https://other.example.com/x.png"></p>`,
			},
			want: "https://cdn.example.com/cover.jpg",
		},
		"first image is used": {
			article: models.Article{
				Content: `<p>hello <img src="https://example.com/a.png"> <img src="https://example.com/b.png"></p>`,
			},
			want: "https://example.com/a.png",
		},
		"protocol relative image is normalized": {
			article: models.Article{
				Content: `<img src="//example.com/a.png">`,
			},
			want: "https://example.com/a.png",
		},
		"youtube embed wins over image": {
			article: models.Article{
				Content: `<img src="https://example.com/a.png">` +
					`<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>`,
			},
			want: "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		},
		"non youtube iframe is ignored": {
			article: models.Article{
				Content: `<iframe src="https://player.vimeo.com/video/1"></iframe>` +
					`<img src="https://example.com/a.png">`,
			},
			want: "https://example.com/a.png",
		},
		"no media": {
			article: models.Article{Content: `<p>just text</p>`},
			want:    "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			augmenter := NewArticleAugmenter()
			augmenter.Augment(&tt.article)
			assert.Equal(t, tt.want, tt.article.FlavorImageURI)
		})
	}
}

func TestArticleAugmenter_ContentExcerpt(t *testing.T) {
	longText := strings.Repeat("word ", 100)

	tests := map[string]struct {
		article models.Article
		want    func(t *testing.T, got string)
	}{
		"existing excerpt is kept": {
			article: models.Article{
				ContentExcerpt: "A short summary",
				Content:        "<p>full body</p>",
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "A short summary", got)
			},
		},
		"hellip placeholder is replaced by body text": {
			article: models.Article{
				ContentExcerpt: "&hellip;",
				Content:        "<p>the actual body</p>",
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "the actual body", got)
			},
		},
		"derived excerpt is capped with ellipsis": {
			article: models.Article{
				Content: "<p>" + longText + "</p>",
			},
			want: func(t *testing.T, got string) {
				assert.Len(t, []rune(got), excerptMaxLength+1)
				assert.True(t, strings.HasSuffix(got, "…"))
			},
		},
		"markup is stripped": {
			article: models.Article{
				Content: "<p>hello <b>bold</b> world</p>",
			},
			want: func(t *testing.T, got string) {
				assert.Equal(t, "hello bold world", got)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			augmenter := NewArticleAugmenter()
			augmenter.Augment(&tt.article)
			tt.want(t, tt.article.ContentExcerpt)
		})
	}
}

func TestArticleAugmenter_SanitizesContent(t *testing.T) {
	augmenter := NewArticleAugmenter()
	article := models.Article{
		Content: `<p>safe</p><script>alert("xss")</script>`,
	}
	augmenter.Augment(&article)

	assert.Contains(t, article.Content, "safe")
	assert.NotContains(t, article.Content, "<script>")
}
