package gridiron

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is where the association publishes its calculated
// per-classification football pages.
const DefaultBaseURL = "https://nsaa-static.s3.amazonaws.com/calculate/"

// DefaultClasses lists the classification codes processed by default,
// in processing order.
var DefaultClasses = []string{"A", "B", "C1", "C2", "D1", "D2", "D6"}

// Source names one classification document to fetch.
type Source struct {
	Class string `json:"class" validate:"required,alphanum"`
	URL   string `json:"url" validate:"required,url"`
}

// String returns the source in CLASS=URL form.
func (s Source) String() string {
	return s.Class + "=" + s.URL
}

// ClassURL returns the published page URL for a classification code.
func ClassURL(class string) string {
	return fmt.Sprintf("%sshowclassfb%s.html", DefaultBaseURL, class)
}

// DefaultSources returns one source per DefaultClasses entry.
func DefaultSources() []Source {
	sources := make([]Source, 0, len(DefaultClasses))
	for _, class := range DefaultClasses {
		sources = append(sources, Source{Class: class, URL: ClassURL(class)})
	}
	return sources
}

// ParseSource parses "CLASS=LOCATION". A bare "CLASS" resolves to the
// default published page for that class.
func ParseSource(s string) (Source, error) {
	class, location, found := strings.Cut(strings.TrimSpace(s), "=")
	class = strings.TrimSpace(class)
	if class == "" {
		return Source{}, Errorf(EINVALID, "source %q: classification required", s)
	}
	if !found {
		return Source{Class: class, URL: ClassURL(class)}, nil
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return Source{}, Errorf(EINVALID, "source %q: location required", s)
	}
	return Source{Class: class, URL: location}, nil
}
