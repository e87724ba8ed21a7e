// Package imageresolver turns a raw product image reference into an ordered list
// of candidate URLs that a client tries one after another, ending with a
// placeholder that always loads.
package imageresolver

import (
	"regexp"
	"strings"
)

// InlinePlaceholder is used when no placeholder asset is configured.
const InlinePlaceholder = "data:image/svg+xml;utf8," +
	"<svg xmlns='http://www.w3.org/2000/svg' width='400' height='300' viewBox='0 0 400 300'>" +
	"<rect width='400' height='300' fill='%23eef1f5'/>" +
	"<text x='200' y='160' font-family='sans-serif' font-size='20' text-anchor='middle' fill='%23808a99'>No image</text>" +
	"</svg>"

var (
	httpRef      = regexp.MustCompile(`(?i)^https?://`)
	imageExt     = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|webp)$`)
	anyExt       = regexp.MustCompile(`\.[a-zA-Z]+$`)
	knownFolders = map[string]bool{"images": true, "assets": true}
)

var (
	DefaultFolders    = []string{"", "images/", "assets/"}
	DefaultExtensions = []string{".jpg", ".JPG", ".png", ".PNG", ".jpeg", ".JPEG", ".webp", ".WEBP"}
)

// Resolver builds candidate lists against a single asset root.
type Resolver struct {
	Root        string
	Folders     []string
	Extensions  []string
	Placeholder string
}

func New(root, placeholder string) *Resolver {
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}
	if placeholder == "" {
		placeholder = InlinePlaceholder
	}
	return &Resolver{
		Root:        root,
		Folders:     DefaultFolders,
		Extensions:  DefaultExtensions,
		Placeholder: placeholder,
	}
}

// Candidates lists every URL worth trying for imageRef, most likely first.
// The list is never empty and its last element is always the placeholder.
func (r *Resolver) Candidates(imageRef, productID string) []string {
	input := strings.TrimSpace(imageRef)
	isHTTP := httpRef.MatchString(input)

	folderHint := ""
	if i := strings.Index(input, "/"); i > 0 && !isHTTP {
		folderHint = strings.ToLower(input[:i])
	}
	file := input[strings.LastIndex(input, "/")+1:]
	file, _, _ = strings.Cut(file, "?")
	base := imageExt.ReplaceAllString(file, "")
	idBase := strings.TrimSpace(productID)

	var names []string
	if isHTTP {
		names = append(names, input)
	}
	if input != "" && !isHTTP {
		names = append(names, input)
	}
	if base != "" {
		names = append(names, "images/"+base)
	}
	if idBase != "" {
		names = append(names, "images/"+idBase)
	}

	pool := newOrderedSet(r.Placeholder)
	for _, n := range names {
		hasExt := anyExt.MatchString(n)
		if isHTTP && n == input {
			// absolute URLs are always tried verbatim first
			pool.add(n)
		}
		if hasExt {
			pool.add(r.rooted(n))
			continue
		}
		for _, e := range r.Extensions {
			pool.add(r.rooted(n + e))
		}
	}

	if knownFolders[folderHint] && base != "" {
		for _, f := range r.Folders {
			for _, e := range r.Extensions {
				pool.add(r.Root + f + base + e)
			}
		}
	}

	return append(pool.items, r.Placeholder)
}

// List builds the per-image state a renderer keeps while retrying.
func (r *Resolver) List(imageRef, productID string) *CandidateList {
	return NewCandidateList(r.Candidates(imageRef, productID))
}

func (r *Resolver) rooted(name string) string {
	if httpRef.MatchString(name) {
		return name
	}
	return r.Root + strings.TrimPrefix(name, "/")
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

// newOrderedSet treats the excluded values as already present.
func newOrderedSet(exclude ...string) *orderedSet {
	s := &orderedSet{seen: make(map[string]struct{})}
	for _, e := range exclude {
		s.seen[e] = struct{}{}
	}
	return s
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
