package driverio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sys/unix"
)

// Input is everything parsed out of an input file: the bit string to build
// the bitvector from, and the commands to run against it. A malformed
// command line is skipped rather than aborting the whole run; ParseErrors
// counts how many were dropped.
type Input struct {
	Bits        string
	Commands    []Command
	ParseErrors uint64
}

// mappedFile is a read-only view of a file's contents via mmap, avoiding a
// full buffered read for the large command files this driver is meant to
// benchmark against.
type mappedFile struct {
	data []byte
}

func mmapFile(f *os.File) (*mappedFile, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return &mappedFile{}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("driverio: mmap %s: %w", f.Name(), err)
	}
	return &mappedFile{data: data}, nil
}

func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	return unix.Munmap(m.data)
}

// ReadInputFile reads the command-file format described by spec.md §6:
// a command count on the first line, the bit string on the second, then
// that many command lines. A ".gz" path is transparently decompressed
// instead of mmap'd, since gzip streams can't be mapped directly.
func ReadInputFile(path string) (Input, error) {
	if strings.HasSuffix(path, ".gz") {
		return readInputGzip(path)
	}
	return readInputMapped(path)
}

func readInputMapped(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmapFile(f)
	if err != nil {
		return Input{}, err
	}
	defer m.Close()

	return parseInput(bufio.NewReaderSize(&byteReader{m.data}, 1<<20))
}

func readInputGzip(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: gzip %s: %w", path, err)
	}
	defer gz.Close()

	return parseInput(bufio.NewReaderSize(gz, 1<<20))
}

// byteReader adapts an in-memory mmap'd byte slice to io.Reader.
type byteReader struct {
	data []byte
}

func (b *byteReader) Read(p []byte) (int, error) {
	if len(b.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func parseInput(r *bufio.Reader) (Input, error) {
	countLine, err := readLine(r)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: reading command count: %w", err)
	}
	count, err := strconv.ParseUint(strings.TrimSpace(countLine), 10, 64)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: invalid command count %q: %w", countLine, err)
	}

	bitsLine, err := readLine(r)
	if err != nil {
		return Input{}, fmt.Errorf("driverio: reading bit string: %w", err)
	}

	commands := make([]Command, 0, count)
	var parseErrors uint64
	for i := uint64(0); i < count; i++ {
		line, err := readLine(r)
		if err != nil {
			return Input{}, fmt.Errorf("driverio: reading command %d of %d: %w", i, count, err)
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			parseErrors++
			continue
		}
		commands = append(commands, cmd)
	}

	return Input{Bits: bitsLine, Commands: commands, ParseErrors: parseErrors}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
