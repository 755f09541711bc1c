package ticketlog

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/skybook/internal/domain"
)

// File format constants.
const (
	logMagic   = "SKTL" // skybook ticket log
	logVersion = 1

	// magic(4) + version(4).
	fileHeaderSize = 8

	// Each frame: length(4) + crc(4) + CBOR payload(length).
	frameHeaderSize = 8

	// A single ticket encodes to a few hundred bytes. Anything larger is a
	// damaged length field.
	maxPayloadSize = 1 << 20
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// ErrDamaged reports a frame length that cannot be trusted while more data
// follows it. Frames after that point cannot be located, so the file is left
// untouched for inspection with ledgerctl.
var ErrDamaged = errors.New("ticket log damaged")

// logFile is the subset of *os.File the log uses.
type logFile interface {
	io.Writer
	io.ReaderAt
	Truncate(size int64) error
	Sync() error
	Close() error
}

// FileLog is an append-only file of ticket records. Appends are serialized
// and fsynced before returning, so write order matches issuance order.
type FileLog struct {
	mu      sync.Mutex
	file    logFile
	path    string
	size    int64
	damaged error
	logger  *slog.Logger
}

// Open creates the log at path, or opens an existing one after checking its
// header. Records are not read until ReplayAll.
func Open(path string, logger *slog.Logger) (*FileLog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening ticket log %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat ticket log %s: %w", path, err)
	}

	l := &FileLog{file: file, path: path, size: info.Size(), logger: logger}

	if l.size < fileHeaderSize {
		// Empty, or a crash before the header was fully written.
		if err := l.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
		return l, nil
	}

	if err := readHeader(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("ticket log %s: %w", path, err)
	}
	return l, nil
}

func (l *FileLog) writeHeader() error {
	if err := l.file.Truncate(0); err != nil {
		return fmt.Errorf("resetting ticket log: %w", err)
	}
	var header [fileHeaderSize]byte
	copy(header[0:4], logMagic)
	binary.LittleEndian.PutUint32(header[4:8], logVersion)
	if _, err := l.file.Write(header[:]); err != nil {
		return fmt.Errorf("writing log header: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("syncing log header: %w", err)
	}
	l.size = fileHeaderSize
	return nil
}

func readHeader(r io.ReaderAt) error {
	var header [fileHeaderSize]byte
	if _, err := r.ReadAt(header[:], 0); err != nil {
		return fmt.Errorf("reading log header: %w", err)
	}
	if magic := string(header[0:4]); magic != logMagic {
		return fmt.Errorf("invalid log magic: got %q, want %q", magic, logMagic)
	}
	if version := binary.LittleEndian.Uint32(header[4:8]); version != logVersion {
		return fmt.Errorf("unsupported log version %d (this code supports %d)", version, logVersion)
	}
	return nil
}

// Append writes one ticket frame and syncs it to disk. On a failed write the
// file is cut back to its previous length so later frames stay reachable.
// The ticket is already committed when Append runs, so a cancelled ctx does
// not stop the write.
func (l *FileLog) Append(_ context.Context, t domain.Ticket) error {
	frame, err := encodeFrame(t)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return errors.New("ticket log is closed")
	}
	if l.damaged != nil {
		return l.damaged
	}
	if _, err := l.file.Write(frame); err != nil {
		if truncErr := l.file.Truncate(l.size); truncErr != nil {
			l.logger.Error("failed to roll back partial ticket frame", "path", l.path, "error", truncErr)
		}
		return fmt.Errorf("appending ticket %s: %w", t.ID, err)
	}
	// The frame is in the file now, even if the sync below fails.
	l.size += int64(len(frame))
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("syncing ticket %s: %w", t.ID, err)
	}
	return nil
}

// ReplayAll returns every readable ticket in write order. Damaged frames are
// skipped with a warning. A truncated final frame is dropped from the file so
// that new appends follow the last whole frame. A frame length that cannot
// be trusted with data after it returns ErrDamaged, leaves the file as it is
// and makes later appends fail.
func (l *FileLog) ReplayAll(ctx context.Context) ([]domain.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil, errors.New("ticket log is closed")
	}

	var tickets []domain.Ticket
	report, err := scan(ctx, l.file, l.size, func(t domain.Ticket) {
		tickets = append(tickets, t)
	}, func(offset int64, reason error) {
		l.logger.Warn("skipping damaged ticket record", "path", l.path, "offset", offset, "error", reason)
	})
	if err != nil {
		return nil, err
	}

	if report.Unreadable > 0 {
		l.damaged = fmt.Errorf("%w: %s: unreadable frame length at offset %d, %d bytes follow",
			ErrDamaged, l.path, report.ValidSize, report.Unreadable)
		l.logger.Error("ticket log damaged, refusing to replay or append",
			"path", l.path, "offset", report.ValidSize, "bytes", report.Unreadable)
		return nil, l.damaged
	}

	if report.TailBytes > 0 {
		l.logger.Warn("dropping truncated ticket record at end of log",
			"path", l.path, "offset", report.ValidSize, "bytes", report.TailBytes)
		if err := l.file.Truncate(report.ValidSize); err != nil {
			return nil, fmt.Errorf("truncating damaged log tail: %w", err)
		}
		l.size = report.ValidSize
	}

	l.logger.Info("replayed ticket log", "path", l.path, "records", len(tickets), "skipped", report.BadFrames)
	return tickets, nil
}

func (l *FileLog) Path() string {
	return l.path
}

func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Report summarizes a scan of a log file.
type Report struct {
	Frames    int   // frames decoded into tickets
	BadFrames int   // whole frames skipped for a bad checksum or payload
	ValidSize int64 // file length up to the end of the last whole frame
	TailBytes int64 // bytes after ValidSize that do not form a whole frame
	// Unreadable counts bytes from a frame whose length field is out of
	// range. They are never truncated.
	Unreadable int64
}

// ReadFile reads a log without modifying it.
func ReadFile(ctx context.Context, path string) ([]domain.Ticket, Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("opening ticket log %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, Report{}, fmt.Errorf("stat ticket log %s: %w", path, err)
	}
	if info.Size() < fileHeaderSize {
		return nil, Report{ValidSize: info.Size()}, nil
	}
	if err := readHeader(file); err != nil {
		return nil, Report{}, fmt.Errorf("ticket log %s: %w", path, err)
	}

	var tickets []domain.Ticket
	report, err := scan(ctx, file, info.Size(), func(t domain.Ticket) {
		tickets = append(tickets, t)
	}, func(int64, error) {})
	if err != nil {
		return nil, Report{}, err
	}
	return tickets, report, nil
}

func scan(ctx context.Context, r io.ReaderAt, size int64, onTicket func(domain.Ticket), onBad func(int64, error)) (Report, error) {
	report := Report{ValidSize: fileHeaderSize}
	reader := bufio.NewReader(io.NewSectionReader(r, fileHeaderSize, size-fileHeaderSize))
	offset := int64(fileHeaderSize)

	var frameHeader [frameHeaderSize]byte
	for {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		n, err := io.ReadFull(reader, frameHeader[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			report.TailBytes = int64(n)
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("reading frame header at %d: %w", offset, err)
		}

		length := binary.LittleEndian.Uint32(frameHeader[0:4])
		checksum := binary.LittleEndian.Uint32(frameHeader[4:8])
		if length > maxPayloadSize {
			// The length cannot be trusted, so nothing after it can be
			// located.
			report.Unreadable = size - offset
			break
		}

		payload := make([]byte, length)
		n, err = io.ReadFull(reader, payload)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			report.TailBytes = frameHeaderSize + int64(n)
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("reading frame at %d: %w", offset, err)
		}

		frameOffset := offset
		offset += frameHeaderSize + int64(length)
		report.ValidSize = offset

		if got := crc32.Checksum(payload, crc32cTable); got != checksum {
			report.BadFrames++
			onBad(frameOffset, fmt.Errorf("checksum mismatch: expected %08x, got %08x", checksum, got))
			continue
		}
		t, err := decodeTicket(payload)
		if err != nil {
			report.BadFrames++
			onBad(frameOffset, err)
			continue
		}
		report.Frames++
		onTicket(t)
	}
	return report, nil
}
