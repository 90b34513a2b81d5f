// ABOUTME: Derives missing article presentation fields from the article body
// ABOUTME: Fills the flavor image and excerpt, then sanitizes the stored HTML

package service

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"feed-sync/models"
	"feed-sync/utils"
)

const excerptMaxLength = 256

var youtubeEmbedPattern = regexp.MustCompile(`/embed/([\w-]+)`)

// ArticleAugmenter computes presentation fields the server often leaves
// blank. All derivation happens on the raw body before sanitization so
// that embedded players still count as flavor image sources.
type ArticleAugmenter struct {
	policy *bluemonday.Policy
}

// NewArticleAugmenter creates an augmenter with a user-generated-content
// sanitization policy.
func NewArticleAugmenter() *ArticleAugmenter {
	return &ArticleAugmenter{policy: bluemonday.UGCPolicy()}
}

// Augment fills FlavorImageURI and ContentExcerpt when absent and
// replaces Content with its sanitized form. The article is modified in
// place.
func (g *ArticleAugmenter) Augment(article *models.Article) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		// Unparseable content still gets sanitized below.
		doc = nil
	}

	if doc != nil {
		article.FlavorImageURI = g.flavorImageURI(article, doc)
		article.ContentExcerpt = g.contentExcerpt(article, doc)
	}
	article.Content = g.policy.Sanitize(article.Content)
}

// flavorImageURI keeps a server-provided uri as is. Otherwise a YouTube
// embed wins over a plain image, and its video id is turned into the
// public thumbnail url.
func (g *ArticleAugmenter) flavorImageURI(article *models.Article, doc *goquery.Document) string {
	if strings.TrimSpace(article.FlavorImageURI) != "" {
		return article.FlavorImageURI
	}

	media := doc.Find(`img, video, iframe[src*="youtube.com/embed/"]`)
	element := firstByTag(media, "iframe")
	if element == nil {
		element = firstByTag(media, "img")
	}
	if element == nil {
		return ""
	}

	src, _ := element.Attr("src")
	if goquery.NodeName(element) == "iframe" {
		if m := youtubeEmbedPattern.FindStringSubmatch(src); m != nil {
			return "https://img.youtube.com/vi/" + m[1] + "/hqdefault.jpg"
		}
		return ""
	}
	return utils.NormalizeImageURL(src)
}

// contentExcerpt keeps a server-provided excerpt unless it is the
// "&hellip;" placeholder the API sends for empty headlines. Derived
// excerpts are the document text capped at 256 runes.
func (g *ArticleAugmenter) contentExcerpt(article *models.Article, doc *goquery.Document) string {
	excerpt := strings.TrimSpace(article.ContentExcerpt)
	if excerpt == "" || excerpt == "&hellip;" {
		excerpt = strings.Join(strings.Fields(doc.Text()), " ")
	} else {
		excerpt = article.ContentExcerpt
	}

	runes := []rune(excerpt)
	if len(runes) > excerptMaxLength {
		return string(runes[:excerptMaxLength]) + "…"
	}
	return excerpt
}

func firstByTag(sel *goquery.Selection, tag string) *goquery.Selection {
	var found *goquery.Selection
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) == tag {
			found = s
			return false
		}
		return true
	})
	return found
}
