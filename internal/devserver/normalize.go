// Package devserver serves the built portfolio site during local development
// and redirects case-mismatched project folder links to their lowercase form.
package devserver

import (
	"context"
	"net/url"
	"strings"
)

// Candidate is the folder segment of one request under the prefix.
type Candidate struct {
	Folder string
	Lower  string
	// Name is the resource looked up, "<prefix>/<lower>".
	Name string
	rest string
}

// Decision is the outcome of Normalize. A zero Decision is a passthrough.
type Decision struct {
	Redirect bool
	Location string
}

// Normalizer redirects /<prefix>/<Folder>/... to /<prefix>/<folder>/... when
// the lowercase folder exists and the request used a different casing.
type Normalizer struct {
	Prefix  string
	Checker ResourceChecker
}

// candidate extracts the folder segment of path. ok is false when the path
// is outside the prefix, has no folder segment or is already lowercase.
func (n *Normalizer) candidate(path string) (c Candidate, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, after, found := strings.Cut(trimmed, "/")
	if !found || first != n.Prefix {
		return Candidate{}, false
	}

	folder, rest, hasRest := strings.Cut(after, "/")
	if folder == "" {
		return Candidate{}, false
	}
	lower := strings.ToLower(folder)
	if lower == folder {
		return Candidate{}, false
	}
	if hasRest {
		rest = "/" + rest
	}
	return Candidate{Folder: folder, Lower: lower, Name: n.Prefix + "/" + lower, rest: rest}, true
}

// Normalize decides whether path (with its raw query) should be redirected.
// A checker error is returned alongside a passthrough decision.
func (n *Normalizer) Normalize(ctx context.Context, path, rawQuery string) (Decision, error) {
	c, ok := n.candidate(path)
	if !ok {
		return Decision{}, nil
	}

	exists, err := n.Checker.Exists(ctx, c.Name)
	if err != nil {
		return Decision{}, err
	}
	if !exists {
		return Decision{}, nil
	}

	target := url.URL{Path: "/" + c.Name + c.rest, RawQuery: rawQuery}
	return Decision{Redirect: true, Location: target.String()}, nil
}
