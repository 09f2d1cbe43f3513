package recordlog

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/gofrs/flock"
)

const (
	SegmentPrefix = "segment_"
	SegmentSuffix = ".log"

	opPut    byte = 1
	opDelete byte = 2

	maxKeyLen  = 4 * 1024
	maxDataLen = 1024 * 1024

	lockFileName = "LOCK"
)

var errCorrupt = errors.New("corrupt entry")

// ErrLocked is returned by Open when another process holds the directory.
var ErrLocked = errors.New("index directory is in use by another process")

// segmentFile is the part of *os.File the active segment needs.
type segmentFile interface {
	io.WriteCloser
	Sync() error
	Truncate(size int64) error
}

// Config configures the embedded log.
type Config struct {
	Dir   string
	FSync bool
	// CompactionThreshold is the number of dead entries that triggers a
	// rewrite of the log. Zero disables automatic compaction.
	CompactionThreshold int
}

// LogIndex implements port.RecordIndex as an append-only log of put and
// delete entries with an in-memory view rebuilt on open.
//
// Entry format: Op (1) | Key_Len (4) | Key (N) | Data_Len (4) | Data (M) | Checksum (4)
type LogIndex struct {
	mu           sync.RWMutex
	dirPath      string
	lock         *flock.Flock
	activeFile   segmentFile
	activeFileID uint64
	activeSize   int64
	broken       error
	records      map[string]domain.MediaRecord
	dead         int
	fsync        bool
	threshold    int
}

var _ port.RecordIndex = (*LogIndex)(nil)

// Open locks dir, replays every segment in it and opens the newest one for
// appends. A directory already opened by another LogIndex returns ErrLocked.
func Open(cfg Config) (*LogIndex, error) {
	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dir := filepath.Clean(cfg.Dir)
	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock index directory %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}

	l := &LogIndex{
		dirPath:   dir,
		lock:      lock,
		records:   make(map[string]domain.MediaRecord),
		fsync:     cfg.FSync,
		threshold: cfg.CompactionThreshold,
	}

	if err := l.replay(); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("failed to replay index log: %w", err)
	}
	return l, nil
}

func (l *LogIndex) segmentPath(id uint64) string {
	return filepath.Join(l.dirPath, fmt.Sprintf("%s%05d%s", SegmentPrefix, id, SegmentSuffix))
}

func (l *LogIndex) segmentIDs() ([]uint64, error) {
	matches, err := filepath.Glob(filepath.Join(l.dirPath, SegmentPrefix+"*"+SegmentSuffix))
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for _, m := range matches {
		var id uint64
		if _, err := fmt.Sscanf(filepath.Base(m), SegmentPrefix+"%d"+SegmentSuffix, &id); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (l *LogIndex) replay() error {
	ids, err := l.segmentIDs()
	if err != nil {
		return err
	}

	l.activeFileID = 1
	for _, id := range ids {
		if err := l.replaySegment(id); err != nil {
			return err
		}
		l.activeFileID = id
	}

	// #nosec G304 -- path is built from the index directory and segment id
	f, err := os.OpenFile(l.segmentPath(l.activeFileID), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	l.activeFile = f
	l.activeSize = info.Size()
	return nil
}

func (l *LogIndex) replaySegment(id uint64) error {
	// #nosec G304 -- path is built from the index directory and segment id
	file, err := os.OpenFile(l.segmentPath(id), os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)
	offset := int64(0)
	truncated := false

	for {
		op, key, data, size, err := readEntry(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			truncated = true
			break
		}

		switch op {
		case opPut:
			var rec domain.MediaRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				truncated = true
			} else {
				if _, exists := l.records[key]; exists {
					l.dead++
				}
				l.records[key] = rec
			}
		case opDelete:
			delete(l.records, key)
			l.dead += 2
		}
		if truncated {
			break
		}
		offset += size
	}

	if truncated {
		if err := file.Truncate(offset); err != nil {
			return fmt.Errorf("failed to truncate partial segment %d: %w", id, err)
		}
		logger.Warnw("Truncated partial index segment tail during replay", "segment_id", id, "valid_bytes", offset)
	}
	return nil
}

// readEntry decodes one entry. A short or corrupt tail returns errCorrupt.
func readEntry(r io.Reader) (byte, string, []byte, int64, error) {
	opBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, opBuf); err != nil {
		if err == io.EOF {
			return 0, "", nil, 0, io.EOF
		}
		return 0, "", nil, 0, errCorrupt
	}
	op := opBuf[0]
	if op != opPut && op != opDelete {
		return 0, "", nil, 0, errCorrupt
	}

	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return 0, "", nil, 0, errCorrupt
	}
	keyLen := binary.BigEndian.Uint32(lenBuf)
	if keyLen == 0 || keyLen > maxKeyLen {
		return 0, "", nil, 0, errCorrupt
	}
	keyBuf := make([]byte, keyLen)
	if _, err := io.ReadFull(r, keyBuf); err != nil {
		return 0, "", nil, 0, errCorrupt
	}

	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return 0, "", nil, 0, errCorrupt
	}
	dataLen := binary.BigEndian.Uint32(lenBuf)
	if dataLen > maxDataLen {
		return 0, "", nil, 0, errCorrupt
	}
	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return 0, "", nil, 0, errCorrupt
	}

	sumBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, sumBuf); err != nil {
		return 0, "", nil, 0, errCorrupt
	}
	if binary.BigEndian.Uint32(sumBuf) != entryChecksum(op, keyBuf, data) {
		return 0, "", nil, 0, errCorrupt
	}

	size := int64(1+4+len(keyBuf)+4+len(data)) + 4
	return op, string(keyBuf), data, size, nil
}

func entryChecksum(op byte, key, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write([]byte{op})
	_, _ = h.Write(key)
	_, _ = h.Write(data)
	return h.Sum32()
}

func encodeEntry(op byte, key string, data []byte) []byte {
	keyBytes := []byte(key)
	buf := make([]byte, 0, 1+4+len(keyBytes)+4+len(data)+4)
	buf = append(buf, op)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(keyBytes))) // #nosec G115
	buf = append(buf, keyBytes...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data))) // #nosec G115
	buf = append(buf, data...)
	buf = binary.BigEndian.AppendUint32(buf, entryChecksum(op, keyBytes, data))
	return buf
}

// appendLocked writes one entry with a single write call so a crash leaves at
// most one partial entry at the tail, which replay truncates. A failed write is
// cut back off the segment so later entries never follow a torn one.
func (l *LogIndex) appendLocked(op byte, key string, data []byte) error {
	if l.broken != nil {
		return fmt.Errorf("index unusable after failed rollback: %w", l.broken)
	}
	if l.activeFile == nil {
		return fmt.Errorf("index closed")
	}
	if len(key) > maxKeyLen || len(data) > maxDataLen {
		return fmt.Errorf("entry too large")
	}

	entry := encodeEntry(op, key, data)
	if _, err := l.activeFile.Write(entry); err != nil {
		if terr := l.activeFile.Truncate(l.activeSize); terr != nil {
			l.broken = terr
			logger.Errorw("Failed to truncate torn index entry, index is now read-only",
				"segment_id", l.activeFileID, "valid_bytes", l.activeSize, "error", terr.Error())
		}
		return err
	}
	l.activeSize += int64(len(entry))
	if l.fsync {
		return l.activeFile.Sync()
	}
	return nil
}

func (l *LogIndex) Insert(ctx context.Context, record domain.MediaRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return domain.PersistenceError("marshal record", err)
	}
	key := record.Key()

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[key]; exists {
		return domain.ErrDuplicateRecord
	}
	if err := l.appendLocked(opPut, key, data); err != nil {
		return domain.PersistenceError("append record", err)
	}
	l.records[key] = record
	return nil
}

func (l *LogIndex) List(ctx context.Context) ([]domain.MediaRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.MediaRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	return out, nil
}

func (l *LogIndex) Delete(ctx context.Context, category domain.Category, filename string) error {
	key := domain.RecordKey(category, filename)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[key]; !exists {
		return domain.ErrNotFound
	}
	if err := l.appendLocked(opDelete, key, nil); err != nil {
		return domain.PersistenceError("append tombstone", err)
	}
	delete(l.records, key)
	l.dead += 2

	if l.threshold > 0 && l.dead >= l.threshold {
		if err := l.compactLocked(); err != nil {
			// The tombstone is durable, compaction can run again later.
			logger.Warnw("Index compaction failed", "error", err.Error())
		}
	}
	return nil
}

// Compact rewrites the log so it holds only live records.
func (l *LogIndex) Compact() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.compactLocked()
}

func (l *LogIndex) compactLocked() error {
	nextID := l.activeFileID + 1
	tmpPath := filepath.Join(l.dirPath, "compact.tmp")

	// #nosec G304 -- fixed name inside the index directory
	f, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(l.records))
	for k := range l.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(f)
	for _, k := range keys {
		data, err := json.Marshal(l.records[k])
		if err != nil {
			_ = f.Close()
			return err
		}
		if _, err := w.Write(encodeEntry(opPut, k, data)); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, l.segmentPath(nextID)); err != nil {
		return err
	}

	// #nosec G304 -- path is built from the index directory and segment id
	active, err := os.OpenFile(l.segmentPath(nextID), os.O_RDWR|os.O_APPEND, 0600)
	if err != nil {
		return err
	}

	info, err := active.Stat()
	if err != nil {
		_ = active.Close()
		return err
	}

	oldID := l.activeFileID
	_ = l.activeFile.Close()
	l.activeFile = active
	l.activeFileID = nextID
	l.activeSize = info.Size()
	l.dead = 0

	ids, _ := l.segmentIDs()
	for _, id := range ids {
		if id <= oldID {
			_ = os.Remove(l.segmentPath(id))
		}
	}

	logger.Infow("Index compaction finished", "segment_id", nextID, "live_records", len(keys))
	return nil
}

// Close closes the active segment and releases the directory lock.
func (l *LogIndex) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.activeFile == nil {
		return nil
	}
	err := l.activeFile.Close()
	l.activeFile = nil
	if uerr := l.lock.Unlock(); uerr != nil && err == nil {
		err = uerr
	}
	return err
}
