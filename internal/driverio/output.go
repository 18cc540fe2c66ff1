package driverio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pierrec/lz4/v4"
)

// WriteReplies writes one reply per line to path, creating any missing
// parent directories the way the original driver's console-vs-file branch
// does. If compress is true the output is LZ4-framed instead of plain text —
// an addition over the original, which only ever wrote plain text.
func WriteReplies(path string, replies []uint64, compress bool) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("driverio: create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("driverio: create output file %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var closer io.Closer
	if compress {
		lz := lz4.NewWriter(f)
		w = lz
		closer = lz
	}

	buf := bufio.NewWriterSize(w, 1<<20)
	for _, reply := range replies {
		buf.WriteString(strconv.FormatUint(reply, 10))
		buf.WriteByte('\n')
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("driverio: flush output file %s: %w", path, err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("driverio: close lz4 stream for %s: %w", path, err)
		}
	}
	return f.Sync()
}

// WriteRepliesConsole writes one reply per line to w, matching the
// original driver's #ifdef CONSOLE branch.
func WriteRepliesConsole(w io.Writer, replies []uint64) error {
	buf := bufio.NewWriterSize(w, 1<<16)
	for _, reply := range replies {
		buf.WriteString(strconv.FormatUint(reply, 10))
		buf.WriteByte('\n')
	}
	return buf.Flush()
}
