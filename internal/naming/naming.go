// Package naming derives export folder names from a media record's title
// and upload date.
//
// Names follow the Jellyfin movie layout, "Title (YYYY)", and can be turned
// into snake_case or kebab-case. Custom templates are passed through to the
// backend untouched; Preview renders them locally for display only.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Convention selects how a folder name is derived
type Convention string

const (
	Original  Convention = "original"
	SnakeCase Convention = "snake_case"
	KebabCase Convention = "kebab_case"
	Custom    Convention = "custom"
)

// DefaultTitle is used when a record has no title
const DefaultTitle = "Untitled"

// Option is a selectable convention with its display label
type Option struct {
	Value Convention
	Label string
}

// Conventions returns the generated conventions in display order. Custom is
// not listed: it is entered implicitly by typing a name.
func Conventions() []Option {
	return []Option{
		{Value: Original, Label: "Original"},
		{Value: SnakeCase, Label: "Snake Case"},
		{Value: KebabCase, Label: "Kebab Case"},
	}
}

// ParseConvention validates s
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(strings.TrimSpace(s)); c {
	case Original, SnakeCase, KebabCase, Custom:
		return c, nil
	case "":
		return Original, nil
	default:
		return "", fmt.Errorf("unknown naming convention %q", s)
	}
}

// Label returns the display label of c
func (c Convention) Label() string {
	for _, o := range Conventions() {
		if o.Value == c {
			return o.Label
		}
	}
	if c == Custom {
		return "Custom"
	}
	return string(c)
}

// Next returns the convention after c in display order, wrapping around.
func (c Convention) Next() Convention {
	opts := Conventions()
	for i, o := range opts {
		if o.Value == c {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}

// Year extracts a four digit year from an upload date in YYYY-MM-DD or
// YYYYMMDD form. It returns "" when none can be found.
func Year(uploadDate string) string {
	s := strings.ReplaceAll(uploadDate, "-", "")
	if len(s) < 4 {
		return ""
	}
	y := s[:4]
	for i := 0; i < len(y); i++ {
		if y[i] < '0' || y[i] > '9' {
			return ""
		}
	}
	return y
}

// BaseName returns "Title (YYYY)", or just the title when no year is known.
func BaseName(title, uploadDate string) string {
	if title == "" {
		title = DefaultTitle
	}
	if y := Year(uploadDate); y != "" {
		return title + " (" + y + ")"
	}
	return title
}

var nonSlug = regexp.MustCompile(`[^a-z0-9()]+`)

func slug(name, sep string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), sep)
	return strings.Trim(s, sep)
}

// Generate derives the folder name for convention c. Custom and unknown
// conventions yield the base name.
func Generate(title, uploadDate string, c Convention) string {
	base := BaseName(title, uploadDate)
	switch c {
	case SnakeCase:
		return slug(base, "_")
	case KebabCase:
		return slug(base, "-")
	default:
		return base
	}
}

// Match reports which generated convention produces typed. Conventions are
// tried in display order so a name that several conventions agree on maps
// to the first. It returns (Custom, false) when none matches.
func Match(title, uploadDate, typed string) (Convention, bool) {
	for _, o := range Conventions() {
		if Generate(title, uploadDate, o.Value) == typed {
			return o.Value, true
		}
	}
	return Custom, false
}
