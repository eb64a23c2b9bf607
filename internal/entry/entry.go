// Package entry defines the records that flow from the sources to the output.
package entry

import (
	"strings"
	"time"

	"github.com/jh3/codep/internal/remote"
)

// LocalScheme is the URI prefix of local files and folders.
const LocalScheme = "file://"

// Kind is the type of location an entry points at.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Raw is an entry as read from disk. URI is still percent-encoded.
// Path, when set, is the percent-encoded path printed in place of the URI.
// ModifiedAt is zero for sources that carry no timestamp.
type Raw struct {
	Kind       Kind
	URI        string
	Path       string
	ModifiedAt time.Time
}

// Timed reports whether the entry has a modification time.
func (r Raw) Timed() bool {
	return !r.ModifiedAt.IsZero()
}

// SchemeClass is the result of testing a URI against the known prefixes.
type SchemeClass int

const (
	Unrecognized SchemeClass = iota
	Local
	Remote
)

// Filter enables the scheme classes Classify may return.
type Filter struct {
	Local  bool
	Remote bool
}

// Classify tests a decoded URI against the local and remote prefixes and
// returns the text after the prefix. ok is false when no prefix matches or the
// matching class is disabled.
func Classify(decoded string, f Filter) (class SchemeClass, payload string, ok bool) {
	switch {
	case strings.HasPrefix(decoded, LocalScheme):
		if !f.Local {
			return Unrecognized, "", false
		}
		return Local, decoded[len(LocalScheme):], true
	case strings.HasPrefix(decoded, remote.Scheme):
		if !f.Remote {
			return Unrecognized, "", false
		}
		return Remote, decoded[len(remote.Scheme):], true
	}
	return Unrecognized, "", false
}

var sanitizer = strings.NewReplacer("\t", "", "\n", "", "\r", "", "\x00", "")

// Sanitize strips the characters used as field and record separators in the
// output stream.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// Resolved is an entry ready to be rendered. Path is set for Local entries
// and Remote for remote ones.
type Resolved struct {
	Kind   Kind
	Class  SchemeClass
	Raw    string
	Path   string
	Remote remote.DisplayInfo
}

// Display returns the plain display string.
func (r Resolved) Display() string {
	switch r.Class {
	case Local:
		return r.Path
	case Remote:
		return r.Remote.String()
	}
	return r.Raw
}
