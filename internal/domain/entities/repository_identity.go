package entities

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	shorthandScheme = "git"
	unknownScheme   = "unknown"
)

// ErrURLParse is returned when a remote URL carries no recognisable host.
var ErrURLParse = errors.New("unable to parse repository URL")

// URLParseError wraps ErrURLParse with the offending input.
type URLParseError struct {
	URL    string
	Reason string
}

func (it *URLParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrURLParse.Error(), it.URL, it.Reason)
}

func (it *URLParseError) Unwrap() error {
	return ErrURLParse
}

// RepositoryIdentity is the account, host and path a remote URL points to.
type RepositoryIdentity struct {
	Scheme       string
	Username     string
	Domain       string
	Organization string
	Name         string
}

// Key groups identities that authenticate against the same account on the same server.
func (it RepositoryIdentity) Key() string {
	return it.Scheme + "://" + it.Username + "@" + it.Domain
}

func (it RepositoryIdentity) String() string {
	if it.Organization == "" {
		return it.Key() + "/" + it.Name
	}
	return it.Key() + "/" + it.Organization + "/" + it.Name
}

// ParseRepositoryIdentity accepts both the SSH shorthand (user@host:org/repo.git)
// and URLs with a scheme. URLs without a scheme are treated as "unknown://".
func ParseRepositoryIdentity(rawURL string) (RepositoryIdentity, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return RepositoryIdentity{}, &URLParseError{URL: rawURL, Reason: "empty URL"}
	}

	if isShorthand(raw) {
		return parseShorthand(raw)
	}

	if !strings.Contains(raw, "://") {
		raw = unknownScheme + "://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return RepositoryIdentity{}, &URLParseError{URL: rawURL, Reason: err.Error()}
	}
	if parsed.Host == "" {
		return RepositoryIdentity{}, &URLParseError{URL: rawURL, Reason: "no host"}
	}

	identity := RepositoryIdentity{
		Scheme: parsed.Scheme,
		Domain: parsed.Host,
	}
	if parsed.User != nil {
		identity.Username = parsed.User.Username()
	}
	identity.Organization, identity.Name = splitRepositoryPath(parsed.Path)

	return identity, nil
}

// isShorthand reports whether an "@" precedes the first ":" in a URL without a scheme.
func isShorthand(raw string) bool {
	if strings.Contains(raw, "://") {
		return false
	}
	at := strings.Index(raw, "@")
	colon := strings.Index(raw, ":")
	return at >= 0 && colon > at
}

func parseShorthand(raw string) (RepositoryIdentity, error) {
	at := strings.Index(raw, "@")
	rest := raw[at+1:]
	colon := strings.Index(rest, ":")

	username := raw[:at]
	domain := rest[:colon]
	if username == "" || domain == "" {
		return RepositoryIdentity{}, &URLParseError{URL: raw, Reason: "missing user or host"}
	}

	organization, name := splitRepositoryPath(rest[colon+1:])
	return RepositoryIdentity{
		Scheme:       shorthandScheme,
		Username:     username,
		Domain:       domain,
		Organization: organization,
		Name:         name,
	}, nil
}

func splitRepositoryPath(path string) (string, string) {
	var segments []string
	for segment := range strings.SplitSeq(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return "", ""
	}
	last := len(segments) - 1
	return strings.Join(segments[:last], "/"), segments[last]
}
