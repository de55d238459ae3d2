package bsdl

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrNoIDCode = errors.New("bsdl: no IDCODE_REGISTER")
	ErrNotFound = errors.New("bsdl: no file for IDCODE")
)

// Library indexes BSDL files by the IDCODE they declare. Don't-care bits in a
// declared IDCODE match any value.
type Library struct {
	mu        sync.RWMutex
	exact     map[uint32]libraryEntry
	wildcards []libraryEntry
}

type libraryEntry struct {
	value uint32
	mask  uint32
	path  string
	file  *BSDLFile
}

func (e libraryEntry) matches(id uint32) bool {
	return id&e.mask == e.value&e.mask
}

func NewLibrary() *Library {
	return &Library{exact: make(map[uint32]libraryEntry)}
}

// Add registers file under its IDCODE. path is only kept for reporting.
func (l *Library) Add(path string, file *BSDLFile) error {
	if file == nil || file.Entity == nil {
		return ErrNoEntity
	}
	raw := file.Entity.GetDeviceInfo().IDCode
	if raw == "" {
		return fmt.Errorf("%w: %s", ErrNoIDCode, file.Entity.Name)
	}
	value, mask, _ := ParseBinaryString(raw)
	if n := strings.Count(strings.ToUpper(raw), "X") + strings.Count(raw, "0") + strings.Count(raw, "1"); n != 32 {
		return fmt.Errorf("bsdl: %s: IDCODE has %d bits, want 32", file.Entity.Name, n)
	}

	entry := libraryEntry{value: value, mask: mask, path: path, file: file}
	l.mu.Lock()
	defer l.mu.Unlock()
	if mask == 0xFFFFFFFF {
		l.exact[value] = entry
	} else {
		l.wildcards = append(l.wildcards, entry)
	}
	return nil
}

// Lookup returns the file matching id and the path it was loaded from.
// Exact IDCODEs win over ones with don't-care bits.
func (l *Library) Lookup(id uint32) (*BSDLFile, string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e, ok := l.exact[id]; ok {
		return e.file, e.path, nil
	}
	for _, e := range l.wildcards {
		if e.matches(id) {
			return e.file, e.path, nil
		}
	}
	return nil, "", fmt.Errorf("%w 0x%08X", ErrNotFound, id)
}

// Len is the number of indexed files.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.exact) + len(l.wildcards)
}

// LoadDir parses every .bsd, .bsdl and .bsm file below root.
func (l *Library) LoadDir(root string) error {
	parser, err := NewParser()
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isBSDLFile(path) {
			return nil
		}
		file, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		if err := l.Add(path, file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func isBSDLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bsd", ".bsdl", ".bsm":
		return true
	}
	return false
}
