package dpath

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindRoot Kind = iota
	KindGroup
	KindChannel
	// KindUnknown marks a path that Parse rejects.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindGroup:
		return "group"
	case KindChannel:
		return "channel"
	case KindUnknown:
		return "unknown"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Parse splits an object path such as /'Group'/'Chan''1' into its unquoted
// components ["Group", "Chan'1"]. The root path "/" has no components.
func Parse(path string) ([]string, error) {
	if path == "/" {
		return []string{}, nil
	}
	if path == "" {
		return nil, errors.New("dpath.Parse error: empty path")
	}
	components := make([]string, 0, 2)
	rest := path
	for len(rest) > 0 {
		if !strings.HasPrefix(rest, "/'") {
			return nil, errors.Errorf(`dpath.Parse error: expected "/'" in path %q, got %q`, path, rest)
		}
		rest = rest[2:]
		var builder strings.Builder
		closed := false
		for !closed {
			quote := strings.IndexByte(rest, '\'')
			if quote < 0 {
				return nil, errors.Errorf(`dpath.Parse error: unterminated component in path %q`, path)
			}
			builder.WriteString(rest[:quote])
			rest = rest[quote+1:]
			if strings.HasPrefix(rest, "'") {
				builder.WriteByte('\'')
				rest = rest[1:]
			} else {
				closed = true
			}
		}
		components = append(components, builder.String())
	}
	if len(components) > 2 {
		return nil, errors.Errorf(`dpath.Parse error: path %q is nested deeper than a channel`, path)
	}
	return components, nil
}

// Build is the inverse of Parse.
func Build(components ...string) string {
	if len(components) == 0 {
		return "/"
	}
	var builder strings.Builder
	for _, component := range components {
		builder.WriteString("/'")
		builder.WriteString(strings.ReplaceAll(component, "'", "''"))
		builder.WriteString("'")
	}
	return builder.String()
}

func KindOf(components []string) Kind {
	switch len(components) {
	case 0:
		return KindRoot
	case 1:
		return KindGroup
	}
	return KindChannel
}
