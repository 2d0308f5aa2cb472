package analyzer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// detectUnicode flags paths whose bytes will not survive cross-platform
// extraction. A path that is not valid UTF-8 cannot round-trip through a
// decode at all; a path stored in a non-NFC form of a composable name (macOS
// archivers emit NFD) lands as a visually identical but distinct file on NFC
// filesystems.
func detectUnicode(entries []domain.ArchiveEntry) []domain.UnicodeWarning {
	var warnings []domain.UnicodeWarning
	for i := range entries {
		path := entries[i].Path
		if !utf8.ValidString(path) {
			warnings = append(warnings, domain.UnicodeWarning{
				Path:  path,
				Issue: domain.UnicodeInvalidSequence,
			})
			continue
		}
		nfc := norm.NFC.String(path)
		if norm.NFD.String(path) != nfc && path != nfc {
			warnings = append(warnings, domain.UnicodeWarning{
				Path:  path,
				Issue: domain.UnicodeNFCMismatch,
			})
		}
	}
	return warnings
}
