package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

// FileTransactionStore appends transactions as JSON lines to an audit log.
// Writes go through a buffered channel and a background writer so the request
// path never blocks on disk. Reads scan the file; a transaction still sitting
// in the write buffer is not visible yet.
type FileTransactionStore struct {
	path   string
	file   *os.File
	writes chan *types.Transaction
	done   chan struct{}

	closeOnce sync.Once
}

// NewFileTransactionStore opens (or creates) the log file and starts the
// background writer.
func NewFileTransactionStore(path string) (*FileTransactionStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transaction log %s: %w", path, err)
	}

	s := &FileTransactionStore{
		path:   path,
		file:   f,
		writes: make(chan *types.Transaction, 256),
		done:   make(chan struct{}),
	}
	go s.writeLoop()
	return s, nil
}

func (s *FileTransactionStore) writeLoop() {
	defer close(s.done)

	w := bufio.NewWriter(s.file)
	enc := json.NewEncoder(w)
	for txn := range s.writes {
		if err := enc.Encode(txn); err != nil {
			continue
		}
		w.Flush()
	}
	w.Flush()
}

func (s *FileTransactionStore) Save(txn *types.Transaction) error {
	select {
	case s.writes <- txn:
		return nil
	default:
		return fmt.Errorf("transaction log write buffer full")
	}
}

func (s *FileTransactionStore) Get(id uuid.UUID) (*types.Transaction, error) {
	txns, err := s.scan()
	if err != nil {
		return nil, err
	}
	for i := len(txns) - 1; i >= 0; i-- {
		if txns[i].ID == id {
			return txns[i], nil
		}
	}
	return nil, fmt.Errorf("transaction %s not found", id)
}

func (s *FileTransactionStore) GetRecent(limit int) ([]*types.Transaction, error) {
	txns, err := s.scan()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > len(txns) {
		limit = len(txns)
	}

	// File order is oldest first; return newest first
	out := make([]*types.Transaction, 0, limit)
	for i := len(txns) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, txns[i])
	}
	return out, nil
}

// scan reads the whole log back in file order, skipping lines that fail to
// parse rather than aborting the read.
func (s *FileTransactionStore) scan() ([]*types.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open transaction log %s: %w", s.path, err)
	}
	defer f.Close()

	var txns []*types.Transaction
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var txn types.Transaction
		if err := json.Unmarshal(scanner.Bytes(), &txn); err != nil {
			continue
		}
		txns = append(txns, &txn)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}

// Close drains pending writes and closes the underlying file.
func (s *FileTransactionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.writes)
	})
	<-s.done
	return s.file.Close()
}
