// Package pathname splits container entry paths into the parts rename
// rules operate on: parent, base, stem and extension.
package pathname

import "strings"

// Decomposed holds the parts of one normalized entry path. Full, Parent and
// Base carry no trailing slash; TrailingSlash remembers whether the raw
// path ended with one so it can be re-appended on output.
type Decomposed struct {
	Full          string // normalized path, trailing slash stripped
	Parent        string // everything before the last separator, "" if none
	Base          string // last path segment
	Stem          string // base without extension; whole base for directories
	Ext           string // extension including the leading dot, "" if none
	TrailingSlash bool
	TopLevel      bool // raw path carries no separator at all
}

// Normalize converts backslash separators to forward slashes.
func Normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// Decompose normalizes path and splits it into its parts. TopLevel is
// decided on the raw normalized path, so a directory listed as "Photos/"
// is an ordinary renameable directory while a bare "Photos" row is a
// top-level container.
func Decompose(path string, isDirectory bool) Decomposed {
	norm := Normalize(path)
	d := Decomposed{
		TrailingSlash: strings.HasSuffix(norm, "/"),
		TopLevel:      !strings.Contains(norm, "/"),
	}
	work := strings.TrimRight(norm, "/")
	d.Full = work
	if idx := strings.LastIndex(work, "/"); idx >= 0 {
		d.Parent = work[:idx]
		d.Base = work[idx+1:]
	} else {
		d.Base = work
	}
	d.Stem, d.Ext = SplitBase(d.Base, isDirectory)
	return d
}

// SplitBase splits a base name into stem and extension at the last dot.
// A dot at position 0 is not a separator, so leading-dot names keep the
// dot as part of the stem. Directories never split.
func SplitBase(base string, isDirectory bool) (stem, ext string) {
	if isDirectory {
		return base, ""
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		return base[:idx], base[idx:]
	}
	return base, ""
}

// Segments splits a path into its slash-separated segments after stripping
// any trailing slash. Empty interior segments are preserved.
func Segments(path string) []string {
	norm := strings.TrimRight(Normalize(path), "/")
	if norm == "" {
		return nil
	}
	return strings.Split(norm, "/")
}

// Depth returns the slash-separated segment count minus one.
func Depth(path string) int {
	segs := Segments(path)
	if len(segs) <= 1 {
		return 0
	}
	return len(segs) - 1
}

// Rebuild joins parent and base into an output path, dropping every segment
// equal to ".", ".." or the empty string so malformed entries cannot climb
// out of the container, and re-appends the directory slash when the
// original entry carried one.
func Rebuild(parent, base string, trailingSlash bool) string {
	var segs []string
	if parent != "" {
		segs = strings.Split(parent, "/")
	}
	segs = append(segs, strings.Split(base, "/")...)

	out := make([]string, 0, len(segs))
	for _, seg := range segs {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		out = append(out, seg)
	}
	joined := strings.Join(out, "/")
	if trailingSlash && joined != "" {
		joined += "/"
	}
	return joined
}

// LastSegment returns the final segment of a path, "" for an empty path.
func LastSegment(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
