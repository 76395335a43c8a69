// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

func isValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// URL is a web page associated with the person.
type URL struct {
	Common
	Category  string
	Sponsored bool
	SourceID  string
	Name      string
	Domain    string

	URL string
}

func (u *URL) Kind() Kind { return KindURL }

func (u *URL) decode(m wireMap) error {
	if err := u.Common.decode(m); err != nil {
		return err
	}
	u.Category = m.str("category")
	u.Sponsored = m.bool("sponsored")
	u.SourceID = m.str("source_id")
	u.Name = m.str("name")
	u.Domain = m.str("domain")
	u.URL = m.str("url")
	return nil
}

func (u *URL) ToWire() map[string]any {
	w := u.Common.writer()
	w.attr("category", u.Category)
	w.attr("sponsored", u.Sponsored)
	w.attr("source_id", u.SourceID)
	w.attr("name", u.Name)
	w.attr("domain", u.Domain)
	w.child("url", u.URL)
	return w.m
}

func (u *URL) Representation() string { return representation(KindURL, u.ToWire()) }

// IsSearchable requires a non-empty URL.
func (u *URL) IsSearchable() bool { return u.URL != "" }

// IsValidURL reports whether URL is an absolute URL with a scheme and host.
func (u *URL) IsValidURL() bool { return u.URL != "" && isValidURL(u.URL) }

func (u *URL) String() string { return u.URL }

// Image is a picture of the person. ThumbnailToken, when present, lets the
// provider's thumbnail service render it.
type Image struct {
	Common
	URL            string
	ThumbnailToken string
}

func (i *Image) Kind() Kind { return KindImage }

func (i *Image) decode(m wireMap) error {
	if err := i.Common.decode(m); err != nil {
		return err
	}
	i.URL = m.str("url")
	i.ThumbnailToken = m.str("thumbnail_token")
	return nil
}

func (i *Image) ToWire() map[string]any {
	w := i.Common.writer()
	w.child("url", i.URL)
	w.child("thumbnail_token", i.ThumbnailToken)
	return w.m
}

func (i *Image) Representation() string { return representation(KindImage, i.ToWire()) }

// Images are always searchable.
func (i *Image) IsSearchable() bool { return true }

// IsValidURL reports whether URL is an absolute URL with a scheme and host.
func (i *Image) IsValidURL() bool { return i.URL != "" && isValidURL(i.URL) }

func (i *Image) String() string { return i.URL }

// ThumbnailOptions controls the rendered thumbnail.
type ThumbnailOptions struct {
	Width    int
	Height   int
	ZoomFace bool
	Favicon  bool
	HTTPS    bool
}

// DefaultThumbnailOptions is a 100x100 face-zoomed thumbnail with favicon over http.
func DefaultThumbnailOptions() ThumbnailOptions {
	return ThumbnailOptions{Width: 100, Height: 100, ZoomFace: true, Favicon: true}
}

// ThumbnailURL returns the thumbnail service URL for this image.
func (i *Image) ThumbnailURL(opts ThumbnailOptions) (string, error) {
	return GenerateRedundantThumbnailURL(i, nil, opts)
}

var dsidPattern = regexp.MustCompile(`(?i)&dsid=\d+`)

// GenerateRedundantThumbnailURL builds a thumbnail URL from up to two images
// so the service can fall back to the second when the first is unavailable.
// When two tokens are combined their "&dsid=N" suffixes are dropped.
func GenerateRedundantThumbnailURL(first, second *Image, opts ThumbnailOptions) (string, error) {
	if first == nil && second == nil {
		return "", fmt.Errorf("%w: Please provide at least one image", ErrInvalidArgument)
	}
	var tokens []string
	for _, img := range []*Image{first, second} {
		if img != nil && img.ThumbnailToken != "" {
			tokens = append(tokens, img.ThumbnailToken)
		}
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: You can only generate thumbnail URLs for image objects with a thumbnail token.", ErrInvalidArgument)
	}
	if len(tokens) > 1 {
		for i, t := range tokens {
			tokens[i] = dsidPattern.ReplaceAllString(t, "")
		}
	}

	scheme := "http"
	if opts.HTTPS {
		scheme = "https"
	}
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://thumb.pipl.com/image?tokens=")
	b.WriteString(strings.Join(tokens, ","))
	b.WriteString("&width=" + strconv.Itoa(opts.Width))
	b.WriteString("&height=" + strconv.Itoa(opts.Height))
	b.WriteString("&zoom_face=" + flag(opts.ZoomFace))
	b.WriteString("&favicon=" + flag(opts.Favicon))
	return b.String(), nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
