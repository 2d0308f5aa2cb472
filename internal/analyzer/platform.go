package analyzer

import (
	"fmt"
	"strings"

	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/pathname"
)

// Platform path limits in UTF-8 bytes. Windows caps the full path at
// MAX_PATH, Linux at PATH_MAX; the macOS family carries the historical
// 1024-byte pathname buffer plus a 255-byte cap per name component.
const (
	windowsPathLimit = 260
	linuxPathLimit   = 4096
	macosPathLimit   = 1024
	macosNameLimit   = 255
)

// pathLimit is one platform's length constraint. NameLimit of zero means
// the family has no per-component cap to check.
type pathLimit struct {
	platform  domain.Platform
	limit     int
	nameLimit int
}

// pathLimits is the fixed check order. Limits are checked independently, so
// one path can be flagged against several of them.
var pathLimits = []pathLimit{
	{platform: domain.PlatformWindows, limit: windowsPathLimit},
	{platform: domain.PlatformLinux, limit: linuxPathLimit},
	{platform: domain.PlatformMacOS, limit: macosPathLimit, nameLimit: macosNameLimit},
}

// detectPathLength flags entries whose byte length exceeds a platform limit,
// or whose longest single segment exceeds a platform's component cap. The
// warning always reports the family limit that the path violates.
func detectPathLength(entries []domain.ArchiveEntry) []domain.PathLengthWarning {
	var warnings []domain.PathLengthWarning
	for i := range entries {
		path := entries[i].Path
		length := len(path)
		for _, pl := range pathLimits {
			if length > pl.limit || (pl.nameLimit > 0 && longestSegment(path) > pl.nameLimit) {
				warnings = append(warnings, domain.PathLengthWarning{
					Path:     path,
					Length:   length,
					Limit:    pl.limit,
					Platform: pl.platform,
				})
			}
		}
	}
	return warnings
}

// longestSegment returns the byte length of the longest path segment.
func longestSegment(path string) int {
	longest := 0
	for _, seg := range pathname.Segments(path) {
		if len(seg) > longest {
			longest = len(seg)
		}
	}
	return longest
}

// charSet is one platform family's forbidden characters: a literal set plus
// an optional control-character range below 0x20.
type charSet struct {
	platform domain.Platform
	chars    string
	controls bool
}

// charSets is the fixed check order. The base name is checked against every
// family, producing one warning per family that rejects it.
var charSets = []charSet{
	{platform: domain.PlatformWindows, chars: `<>:"|?*`, controls: true},
	{platform: domain.PlatformMacOS, chars: ":/\x00"},
	{platform: domain.PlatformLinux, chars: "\x00"},
}

// reservedBaseNames are device names Windows refuses as a file or directory
// name in any location, with or without an extension.
var reservedBaseNames = func() map[string]bool {
	names := []string{"CON", "PRN", "AUX", "NUL"}
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("COM%d", i), fmt.Sprintf("LPT%d", i))
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}()

// detectInvalidChars checks every entry's base name against the platform
// character sets and the reserved device names. A reserved name is reported
// as its own warning carrying the RESERVED_NAME sentinel instead of a
// character list, keyed to the Windows family.
func detectInvalidChars(entries []domain.ArchiveEntry) []domain.InvalidCharWarning {
	var warnings []domain.InvalidCharWarning
	for i := range entries {
		entry := &entries[i]
		d := pathname.Decompose(entry.Path, entry.IsDirectory)
		if d.Base == "" {
			continue
		}
		for _, cs := range charSets {
			if offending := cs.scan(d.Base); len(offending) > 0 {
				warnings = append(warnings, domain.InvalidCharWarning{
					Path:         entry.Path,
					Platform:     cs.platform,
					InvalidChars: offending,
				})
			}
		}
		if isReservedName(d.Base) {
			warnings = append(warnings, domain.InvalidCharWarning{
				Path:         entry.Path,
				Platform:     domain.PlatformWindows,
				InvalidChars: []string{domain.ReservedNameViolation},
			})
		}
	}
	return warnings
}

// scan collects the distinct forbidden bytes of a name in first-seen order.
// Forbidden characters are all single-byte, so a byte walk is exact even in
// multi-byte names.
func (cs charSet) scan(name string) []string {
	var offending []string
	var seen [0x80]bool
	for i := 0; i < len(name); i++ {
		b := name[i]
		if b >= 0x80 {
			continue
		}
		bad := (cs.controls && b < 0x20) || strings.IndexByte(cs.chars, b) >= 0
		if !bad || seen[b] {
			continue
		}
		seen[b] = true
		offending = append(offending, displayChar(b))
	}
	return offending
}

// displayChar renders a forbidden byte for the report, hex-escaping control
// characters that have no printable form.
func displayChar(b byte) string {
	if b < 0x20 {
		return fmt.Sprintf("\\x%02X", b)
	}
	return string(rune(b))
}

// isReservedName reports whether the name part before any extension is a
// reserved Windows device name; CON.txt is exactly as unusable as CON. A
// leading dot keeps the name ordinary.
func isReservedName(base string) bool {
	name := base
	if idx := strings.IndexByte(name, '.'); idx > 0 {
		name = name[:idx]
	}
	return reservedBaseNames[strings.ToUpper(name)]
}
