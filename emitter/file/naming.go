package file

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"go.emit.dev/emit/core"
)

// fileName renders "{prefix}.{date}.{counter:08}.{id:08x}.{ext}".
// counter is milliseconds since the start of the current rollover
// interval; id is 8 random hex chars.
func fileName(cfg Config, intervalStart, now time.Time, id [4]byte) string {
	counter := now.Sub(intervalStart).Milliseconds()
	if counter < 0 {
		counter = 0
	}
	return fmt.Sprintf("%s.%s.%08d.%s.%s",
		cfg.Prefix, cfg.RollBy.format(intervalStart), counter, hex.EncodeToString(id[:]), cfg.Ext)
}

// newID produces the 4-byte id component of a rolled file name. A
// configured Rng is tried first; if it is absent or fails to fill the
// buffer, a fresh UUIDv4's leading bytes are used instead, so a
// misconfigured Clock/Rng wiring still can't produce an all-zero id
// that collides across rollovers.
func newID(rng core.Rng) [4]byte {
	var id [4]byte
	if rng != nil && rng.Fill(id[:]) {
		return id
	}
	u := uuid.New()
	copy(id[:], u[:4])
	return id
}

// listFiles returns the basenames of every file in dir matching this
// config's prefix/ext, sorted descending (newest-looking name first) —
// safe because the date-counter-id layout sorts chronologically as a
// plain string.
func listFiles(dir string, cfg Config) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, cfg.Prefix+".*."+cfg.Ext))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		base := filepath.Base(m)
		if isOurFile(base, cfg) {
			names = append(names, base)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// isOurFile reports whether name matches this config's prefix/ext,
// guarding against a directory mixing unrelated files.
func isOurFile(name string, cfg Config) bool {
	return strings.HasPrefix(name, cfg.Prefix+".") && strings.HasSuffix(name, "."+cfg.Ext)
}
