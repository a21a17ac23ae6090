package bench

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Provenance keys appended to every export.
const (
	// GeneratedByKey records which tool produced the file.
	GeneratedByKey = "GENERATED_BY"

	// GeneratedSHA256Key records the advisory integrity digest.
	GeneratedSHA256Key = "GENERATED_SHA256"
)

// Checksum computes the hex SHA-256 digest over the sorted key=value pairs
// of cfg, one per line.  The digest key itself must not be present in cfg.
func Checksum(cfg map[string]string) string {
	lines := make([]string, 0, len(cfg))
	for k, v := range cfg {
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// Export renders cfg as sorted key=value lines with two provenance
// entries: the generator identifier and a SHA-256 digest over every other
// pair.  The digest detects post-generation tampering; it is advisory, not
// a security boundary.
func Export(cfg map[string]string, generatedBy string) string {
	full := make(map[string]string, len(cfg)+2)
	for k, v := range cfg {
		full[k] = v
	}
	full[GeneratedByKey] = generatedBy
	full[GeneratedSHA256Key] = Checksum(full)

	lines := make([]string, 0, len(full))
	for k, v := range full {
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

// ParseExport reads key=value lines back into a map, skipping blanks and
// comments.
func ParseExport(content string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return out
}

// VerifyExport re-computes the digest of an exported file and reports
// whether it matches the recorded GENERATED_SHA256.  Content without a
// recorded digest verifies trivially (nothing to check against).
func VerifyExport(content string) error {
	kv := ParseExport(content)
	recorded, ok := kv[GeneratedSHA256Key]
	if !ok {
		return nil
	}
	delete(kv, GeneratedSHA256Key)
	if got := Checksum(kv); got != recorded {
		return fmt.Errorf("bench: integrity digest mismatch: recorded %s, computed %s", recorded, got)
	}
	return nil
}
