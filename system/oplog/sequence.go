package oplog

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

const (
	seqFile     = "seq"
	seqFileSize = 8
	seqMask     = 0x00FFFFFFFFFFFFFF
)

func (j *Journal) seqPath() string {
	return filepath.Join(j.root, "meta", seqFile)
}

// readSeqLocked returns the last assigned sequence number, 0 when none
// has been assigned. Caller must hold mu.
func (j *Journal) readSeqLocked() (int64, error) {
	data, err := os.ReadFile(j.seqPath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if len(data) < seqFileSize {
		return 0, fmt.Errorf("invalid sequence file size: expected %d bytes, got %d", seqFileSize, len(data))
	}
	return int64(binary.LittleEndian.Uint64(data)) & seqMask, nil
}

// writeSeqLocked replaces the sequence file through a temporary file.
// Caller must hold mu.
func (j *Journal) writeSeqLocked(seq int64) error {
	file := j.seqPath()
	tmpFile := file + ".tmp"

	data := make([]byte, seqFileSize)
	binary.LittleEndian.PutUint64(data, uint64(seq&seqMask))

	if err := os.WriteFile(tmpFile, data, 0644&^os.FileMode(j.umask)); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, file); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return nil
}
