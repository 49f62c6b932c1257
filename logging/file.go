package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter writes log lines to a file that rotates by size and age.
// Rotated files are gzipped and only the newest maxFiles are kept.
type FileWriter struct {
	mu           sync.Mutex
	dir          string
	filename     string
	maxSize      int64
	maxFiles     int
	maxAge       time.Duration
	currentFile  *os.File
	currentSize  int64
	lastRotation time.Time
	now          func() time.Time
	wg           sync.WaitGroup
}

// NewFileWriter creates dir if needed and opens dir/filename for appending.
func NewFileWriter(dir, filename string, maxSizeMB, maxFiles int) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}

	fw := &FileWriter{
		dir:      dir,
		filename: filename,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
		maxAge:   24 * time.Hour,
		now:      time.Now,
	}
	fw.lastRotation = fw.now()

	if err := fw.openFile(); err != nil {
		return nil, err
	}
	return fw, nil
}

func (fw *FileWriter) openFile() error {
	path := filepath.Join(fw.dir, fw.filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	fw.currentFile = f
	fw.currentSize = info.Size()
	return nil
}

func (fw *FileWriter) Write(p []byte) (n int, err error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.shouldRotate(int64(len(p))) {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = fw.currentFile.Write(p)
	fw.currentSize += int64(n)
	return n, err
}

func (fw *FileWriter) shouldRotate(writeSize int64) bool {
	if fw.currentSize == 0 {
		return false
	}
	if fw.currentSize+writeSize > fw.maxSize {
		return true
	}
	return fw.now().Sub(fw.lastRotation) > fw.maxAge
}

func (fw *FileWriter) rotate() error {
	if fw.currentFile != nil {
		if err := fw.currentFile.Close(); err != nil {
			return fmt.Errorf("close current file: %w", err)
		}
	}

	oldPath := filepath.Join(fw.dir, fw.filename)
	timestamp := fw.now().Format("20060102-150405.000000000")
	newPath := filepath.Join(fw.dir, fmt.Sprintf("%s.%s", fw.filename, timestamp))

	if err := os.Rename(oldPath, newPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		compressFile(newPath)
		fw.cleanup()
	}()

	if err := fw.openFile(); err != nil {
		return err
	}
	fw.lastRotation = fw.now()
	return nil
}

func compressFile(path string) {
	gzPath := path + ".gz"
	in, err := os.Open(path)
	if err != nil {
		return
	}
	defer in.Close()

	out, err := os.Create(gzPath)
	if err != nil {
		return
	}

	gzWriter := gzip.NewWriter(out)
	if _, err := io.Copy(gzWriter, in); err != nil {
		gzWriter.Close()
		out.Close()
		os.Remove(gzPath)
		return
	}
	if err := gzWriter.Close(); err != nil {
		out.Close()
		os.Remove(gzPath)
		return
	}
	out.Close()
	os.Remove(path)
}

func (fw *FileWriter) cleanup() {
	pattern := filepath.Join(fw.dir, fw.filename+".*.gz")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return
	}
	// Timestamps in the names sort chronologically.
	sort.Strings(matches)
	if len(matches) > fw.maxFiles {
		for _, path := range matches[:len(matches)-fw.maxFiles] {
			os.Remove(path)
		}
	}
}

// Close waits for pending compression and closes the current file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.wg.Wait()

	if fw.currentFile != nil {
		err := fw.currentFile.Close()
		fw.currentFile = nil
		return err
	}
	return nil
}
