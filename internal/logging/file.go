package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// NewFile builds a logger that writes to path. Once the file passes 6 MiB it
// is cut back to its newest 5 MiB. The returned func closes the file.
func NewFile(level, format, service, path string) (*zap.Logger, func() error, error) {
	w, err := openLogFile(path, maxLogSizeBytes, keepLogSizeBytes)
	if err != nil {
		return nil, nil, err
	}

	var enc zapcore.Encoder
	if format == "json" {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	logger := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), ParseLevel(level)))
	if service != "" {
		logger = logger.With(zap.String("service_name", service))
	}
	return logger, w.Close, nil
}

type logFile struct {
	mu   sync.Mutex
	file *os.File
	max  int64
	keep int64
}

func openLogFile(path string, max, keep int64) (*logFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &logFile{file: file, max: max, keep: keep}
	if err := w.truncateIfNeeded(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

func (w *logFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.truncateIfNeeded()
}

func (w *logFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// truncateIfNeeded must be called with mu held.
func (w *logFile) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.max {
		return nil
	}

	buf := make([]byte, w.keep)
	n, err := w.file.ReadAt(buf, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes go to the new end of file after the truncate.
	_, err = w.file.Write(buf)
	return err
}
