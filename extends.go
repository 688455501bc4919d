package pullsync

import (
	"context"
	"fmt"
	"strings"
)

const (
	extendsKey = "_extends"

	// maxExtendsDepth bounds how many base files one config may pull in.
	maxExtendsDepth = 5
)

// fileRef names a file in a repository.
type fileRef struct {
	Owner string
	Repo  string
	Path  string
}

func (r fileRef) String() string {
	return r.Owner + "/" + r.Repo + ":" + r.Path
}

// parseExtends parses an _extends value of the form
// "repo", "owner/repo", "repo:path" or "owner/repo:path".
// owner and filePath fill in the omitted parts.
func parseExtends(value any, owner, filePath string) (fileRef, error) {
	s, ok := value.(string)
	if !ok {
		return fileRef{}, fmt.Errorf("%w: must be a string, got %T", ErrInvalidExtends, value)
	}
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return fileRef{}, fmt.Errorf("%w: %q", ErrInvalidExtends, s)
	}

	ref := fileRef{Owner: owner, Path: filePath}

	repoPart, p, hasPath := strings.Cut(s, ":")
	if hasPath {
		if p == "" {
			return fileRef{}, fmt.Errorf("%w: %q has an empty path", ErrInvalidExtends, s)
		}
		ref.Path = p
	}

	if idx := strings.LastIndex(repoPart, "/"); idx >= 0 {
		ref.Owner = repoPart[:idx]
		ref.Repo = repoPart[idx+1:]
	} else {
		ref.Repo = repoPart
	}

	if ref.Owner == "" || ref.Repo == "" {
		return fileRef{}, fmt.Errorf("%w: %q", ErrInvalidExtends, s)
	}
	return ref, nil
}

// extend resolves the _extends chain of raw. Keys in raw shallowly override
// keys of the base file; the _extends key itself is dropped.
func (f *LiveFetcher) extend(ctx context.Context, owner, filePath string, raw map[string]any, seen map[string]bool) (map[string]any, error) {
	value, ok := raw[extendsKey]
	if !ok {
		return raw, nil
	}

	target, err := parseExtends(value, owner, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	key := target.String()
	if seen[key] || len(seen) > maxExtendsDepth {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrExtendsDepth, key)
	}
	seen[key] = true

	base, err := f.read(ctx, target.Owner, target.Repo, target.Path)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrExtendsNotFound, key)
	}

	base, err = f.extend(ctx, target.Owner, target.Path, base, seen)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(base)+len(raw))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range raw {
		if k != extendsKey {
			merged[k] = v
		}
	}
	return merged, nil
}
