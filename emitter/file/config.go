// Package file implements the rolling newline-JSON file emitter
// (§4.7): events are encoded as ndjson lines and handed to a batching
// channel (batch.Sender[[]byte], one pre-encoded line per item) whose
// receiver owns a rolling, retained, fsync-durable set of files.
package file

import (
	"time"

	"go.emit.dev/emit/core"
)

// RollBy selects the granularity at which the filename's date
// component (and therefore the rollover interval) truncates.
type RollBy int

const (
	RollByDay RollBy = iota
	RollByHour
	RollByMinute
)

func (r RollBy) truncate(t time.Time) time.Time {
	switch r {
	case RollByHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case RollByMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

func (r RollBy) format(t time.Time) string {
	switch r {
	case RollByHour:
		return t.Format("2006-01-02-15")
	case RollByMinute:
		return t.Format("2006-01-02-15-04")
	default:
		return t.Format("2006-01-02")
	}
}

// Config configures the file emitter. Dir/Prefix/Ext together with
// RollBy determine file names; MaxFileSizeBytes and MaxFiles bound
// rollover and retention.
type Config struct {
	Dir              string
	Prefix           string
	Ext              string
	RollBy           RollBy
	MaxFileSizeBytes int64
	MaxFiles         int
	ReuseFiles       bool
	Separator        byte
	Clock            core.Clock
	Rng              core.Rng
}

func (c Config) separator() byte {
	if c.Separator == 0 {
		return '\n'
	}
	return c.Separator
}

const defaultMaxCapacity = 1000
