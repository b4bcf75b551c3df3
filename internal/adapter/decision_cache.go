package adapter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	m "crycurate/internal/model"
)

// DecisionCache is a persistent mapping from a comment fingerprint to a
// keep/drop decision. The backing store is an append-only log; decisions are
// never revised once written and the most recently appended entry for a
// fingerprint wins on replay.
type DecisionCache interface {
	// Lookup returns the cached decision for fingerprint, if any.
	Lookup(fingerprint string) (keep bool, ok bool)

	// Record appends a decision and makes it durable before returning, so an
	// oracle call is never repeated for this fingerprint across restarts.
	Record(fingerprint string, keep bool) error

	// Len reports the number of distinct fingerprints in the index.
	Len() int

	// Close releases the backing file handle.
	Close() error
}

// decisionEntry is the persisted JSONL line shape. Extra fields in historical
// logs are ignored on replay.
type decisionEntry struct {
	Fingerprint string `json:"sha1"`
	Keep        *bool  `json:"keep"`
}

type fileDecisionCache struct {
	mu    sync.Mutex
	file  *os.File
	index map[string]bool
	log   *zap.Logger
}

// OpenDecisionCache opens (creating if necessary) the append-only decision log
// at path and rebuilds the in-memory index by replaying it. Malformed lines
// are skipped, not fatal.
func OpenDecisionCache(path m.Path, log *zap.Logger) (DecisionCache, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// #nosec G304 - path comes from the operator's --cache flag
	file, err := os.OpenFile(string(path), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open decision cache: %w", err)
	}

	cache := &fileDecisionCache{
		file:  file,
		index: make(map[string]bool),
		log:   log,
	}

	if err := cache.replay(); err != nil {
		_ = file.Close()

		return nil, err
	}

	return cache, nil
}

// replay scans the log from the start and keeps the last value per
// fingerprint. Duplicate and historical entries are expected.
func (c *fileDecisionCache) replay() error {
	if _, err := c.file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind decision cache: %w", err)
	}

	scanner := bufio.NewScanner(c.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0

	for scanner.Scan() {
		line++

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var entry decisionEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			c.log.Debug("skipping malformed cache line", zap.Int("line", line), zap.Error(err))

			continue
		}

		if entry.Fingerprint == "" || entry.Keep == nil {
			c.log.Debug("skipping incomplete cache line", zap.Int("line", line))

			continue
		}

		c.index[entry.Fingerprint] = *entry.Keep
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to replay decision cache: %w", err)
	}

	return nil
}

func (c *fileDecisionCache) Lookup(fingerprint string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keep, ok := c.index[fingerprint]

	return keep, ok
}

func (c *fileDecisionCache) Record(fingerprint string, keep bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := decisionEntry{Fingerprint: fingerprint, Keep: &keep}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode decision: %w", err)
	}

	if _, err := c.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append decision: %w", err)
	}

	// Durability before return: a decision lost after Record would break the
	// never-ask-twice guarantee.
	if err := c.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync decision cache: %w", err)
	}

	c.index[fingerprint] = keep

	return nil
}

func (c *fileDecisionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.index)
}

func (c *fileDecisionCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.file.Close()
}
