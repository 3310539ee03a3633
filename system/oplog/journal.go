package oplog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/signadot/tony-format/upd/logbuilder"

	"github.com/google/uuid"
)

const logFile = "oplog.jsonl"

// Journal is safe for concurrent use by one process.
type Journal struct {
	root   string
	umask  int
	mu     sync.Mutex
	logger *slog.Logger
}

type Entry struct {
	Seq  int64           `json:"seq"`
	ID   string          `json:"id"`
	NS   string          `json:"ns"`
	Time time.Time       `json:"ts"`
	O    json.RawMessage `json:"o"`
}

// Open opens or creates a journal in root. umask is applied to created
// files and directories. If logger is nil, slog.Default() is used.
func Open(root string, umask int, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{root: root, umask: umask, logger: logger}
	if err := j.init(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Journal) Root() string {
	return j.root
}

func (j *Journal) init() error {
	if err := os.MkdirAll(filepath.Join(j.root, "meta"), 0755&^os.FileMode(j.umask)); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	seq, err := j.readSeqLocked()
	if err != nil {
		return err
	}
	entries, err := j.readAllLocked()
	if err != nil {
		return err
	}
	if n := len(entries); n > 0 && entries[n-1].Seq > seq {
		// an append wrote its entry but not the sequence file
		j.logger.Warn("oplog sequence behind entries, repairing",
			"root", j.root, "seq", seq, "last", entries[n-1].Seq)
		return j.writeSeqLocked(entries[n-1].Seq)
	}
	if _, err := os.Stat(j.seqPath()); os.IsNotExist(err) {
		return j.writeSeqLocked(0)
	}
	return nil
}

// Append journals lb under namespace ns with the next sequence number.
func (j *Journal) Append(ns string, lb *logbuilder.LogBuilder) (*Entry, error) {
	if lb.Len() == 0 {
		return nil, ErrEmptyLog
	}
	o, err := lb.MarshalJSON()
	if err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	seq, err := j.readSeqLocked()
	if err != nil {
		return nil, err
	}
	e := &Entry{
		Seq:  seq + 1,
		ID:   uuid.New().String(),
		NS:   ns,
		Time: time.Now().UTC(),
		O:    o,
	}
	line, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(j.root, logFile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644&^os.FileMode(j.umask))
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	if err := j.writeSeqLocked(e.Seq); err != nil {
		return nil, err
	}
	j.logger.Debug("oplog append", "seq", e.Seq, "ns", ns, "entries", lb.Len())
	return e, nil
}

// ReadAll returns every entry in sequence order.
func (j *Journal) ReadAll() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readAllLocked()
}

// LastSeq returns the last assigned sequence number.
func (j *Journal) LastSeq() (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readSeqLocked()
}

func (j *Journal) readAllLocked() ([]Entry, error) {
	f, err := os.Open(filepath.Join(j.root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	var res []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 16<<20)
	for line := 1; sc.Scan(); line++ {
		d := bytes.TrimSpace(sc.Bytes())
		if len(d) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(d, &e); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrCorruptEntry, line, err)
		}
		if n := len(res); n > 0 && e.Seq <= res[n-1].Seq {
			return nil, fmt.Errorf("%w: line %d: seq %d after %d", ErrCorruptEntry, line, e.Seq, res[n-1].Seq)
		}
		res = append(res, e)
	}
	return res, sc.Err()
}
