// Package remote resolves vscode-remote:// folder URIs into display strings.
//
// The authority of such a URI is "<type>+<hex>", where <hex> is usually a
// hex-encoded JSON descriptor of the remote location, for example
//
//	vscode-remote://dev-container+7b22686f737450617468223a222f7372632f617070227d/workspaces/app
//
// Resolution runs three independent layers: ParseIdentifier splits the URI,
// DecodeHex unpacks the payload and ParsePayload probes the decoded JSON.
package remote

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Scheme is the URI prefix of remote folders.
const Scheme = "vscode-remote://"

var (
	// ErrNoTypeSeparator means the identifier lacks the '+' after the remote type.
	ErrNoTypeSeparator = errors.New("no '+' after remote type")
	// ErrNoPathSeparator means the identifier lacks the '/' after the payload.
	ErrNoPathSeparator = errors.New("no '/' after remote payload")
)

// Qualifier tells where a remote path comes from.
type Qualifier int

const (
	QualifierNone Qualifier = iota
	QualifierRepository
	QualifierVolume
	QualifierUnknown
)

func (q Qualifier) String() string {
	switch q {
	case QualifierNone:
		return ""
	case QualifierRepository:
		return "repository"
	case QualifierVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Identifier is the parsed authority and path of a remote URI.
type Identifier struct {
	Type       string
	HexPayload string
	TailPath   string
}

// Hint is the parenthesized remote type shown after the primary value.
type Hint struct {
	Label     string
	Qualifier Qualifier
}

func (h Hint) String() string {
	if h.Qualifier == QualifierNone {
		return "(" + h.Label + ")"
	}
	return "(" + h.Label + "|" + h.Qualifier.String() + ")"
}

// DisplayInfo is the human readable form of a remote folder.
type DisplayInfo struct {
	Primary string
	Hint    *Hint
}

func (d DisplayInfo) String() string {
	if d.Hint == nil {
		return d.Primary
	}
	return d.Primary + " " + d.Hint.String()
}

var labels = map[string]string{
	"dev-container": "Dev Container",
	"ssh-remote":    "SSH Remote",
}

// Label returns the friendly name for a remote type code. Unknown codes are
// returned unchanged.
func Label(remoteType string) string {
	if l, ok := labels[remoteType]; ok {
		return l
	}
	return remoteType
}

// ParseIdentifier splits everything after the vscode-remote:// prefix.
func ParseIdentifier(tail string) (Identifier, error) {
	remoteType, rest, ok := strings.Cut(tail, "+")
	if !ok {
		return Identifier{}, fmt.Errorf("parse %q: %w", tail, ErrNoTypeSeparator)
	}
	payload, path, ok := strings.Cut(rest, "/")
	if !ok {
		return Identifier{}, fmt.Errorf("parse %q: %w", tail, ErrNoPathSeparator)
	}
	return Identifier{Type: remoteType, HexPayload: payload, TailPath: path}, nil
}

// DecodeHex unpacks a hex payload into UTF-8 text.
func DecodeHex(payload string) (string, error) {
	b, err := hex.DecodeString(payload)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("payload is not valid UTF-8")
	}
	return string(b), nil
}

// payloadKeys are probed in order; the first string value wins.
var payloadKeys = []struct {
	key       string
	qualifier Qualifier
}{
	{"hostPath", QualifierNone},
	{"repositoryPath", QualifierRepository},
	{"volumeName", QualifierVolume},
}

// ParsePayload looks for a location in decoded payload text. ok is false when
// the text is not a JSON object or holds none of the known keys.
func ParsePayload(text string) (value string, q Qualifier, ok bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return "", QualifierNone, false
	}
	for _, k := range payloadKeys {
		raw, found := obj[k.key]
		if !found {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		return s, k.qualifier, true
	}
	return "", QualifierNone, false
}

// Resolve derives the display form of a remote folder. Only a malformed
// identifier is an error; an undecodable payload degrades to showing the
// payload itself.
func Resolve(tail string) (DisplayInfo, error) {
	id, err := ParseIdentifier(tail)
	if err != nil {
		return DisplayInfo{}, err
	}

	text, err := DecodeHex(id.HexPayload)
	if err != nil {
		return DisplayInfo{
			Primary: id.HexPayload,
			Hint:    &Hint{Label: id.Type},
		}, nil
	}

	hint := &Hint{Label: Label(id.Type)}
	value, q, ok := ParsePayload(text)
	if !ok {
		return DisplayInfo{Primary: text, Hint: hint}, nil
	}
	hint.Qualifier = q
	return DisplayInfo{Primary: value, Hint: hint}, nil
}
