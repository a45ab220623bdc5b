package corpus

import (
	"path"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/frontmatter"
)

// Document is one content file the sidebar can reference by ID.
type Document struct {
	ID          string
	Path        string // slash-separated, relative to the docs directory
	Slug        string // route below the docs base path, always starting with '/'
	Title       string
	Label       string // sidebar_label, falling back to Title
	Draft       bool
	Fields      frontmatter.Fields
	Links       []Link
	Fingerprint string
}

var (
	numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*([^-_.\s].*)$`)
	// Names like 2021-01-05-notes or 1.2-release keep their leading digits.
	dateOrVersion = regexp.MustCompile(`^\d+[-_.]\d+`)
)

// StripNumberPrefix removes an ordering prefix such as "01-" from name.
func StripNumberPrefix(name string) string {
	if dateOrVersion.MatchString(name) {
		return name
	}
	if m := numberPrefix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// stripPathPrefixes applies StripNumberPrefix to every segment of dir.
func stripPathPrefixes(dir string) string {
	if dir == "." || dir == "" {
		return ""
	}
	segs := strings.Split(dir, "/")
	for i, s := range segs {
		segs[i] = StripNumberPrefix(s)
	}
	return strings.Join(segs, "/")
}

// baseName returns the file name without its extension.
func baseName(rel string) string {
	name := path.Base(rel)
	return strings.TrimSuffix(name, path.Ext(name))
}

// DocumentID derives the id of the file at rel (slash-separated, relative to
// the docs directory). A frontmatter id replaces the file-name segment.
func DocumentID(rel string, fields frontmatter.Fields) string {
	dir := stripPathPrefixes(path.Dir(rel))
	name := fields.ID
	if name == "" {
		name = StripNumberPrefix(baseName(rel))
	}
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// DocumentSlug derives the route of the file at rel below the docs base path.
// index and README files address their directory.
func DocumentSlug(rel string, fields frontmatter.Fields) string {
	dir := stripPathPrefixes(path.Dir(rel))
	if fields.Slug != "" {
		if strings.HasPrefix(fields.Slug, "/") {
			return path.Clean(fields.Slug)
		}
		return path.Clean("/" + dir + "/" + fields.Slug)
	}
	name := StripNumberPrefix(baseName(rel))
	switch strings.ToLower(name) {
	case "index", "readme":
		if dir == "" {
			return "/"
		}
		return "/" + dir + "/"
	}
	return path.Clean("/" + dir + "/" + name)
}
