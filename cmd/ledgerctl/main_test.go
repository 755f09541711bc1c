package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/skybook/internal/codec"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/ticketlog"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.log")
	l, err := ticketlog.Open(path, nil)
	require.NoError(t, err)

	issued := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	classes := []domain.CabinClass{domain.CabinEconomy, domain.CabinFirst, domain.CabinBusiness, domain.CabinEconomy}
	for i, class := range classes {
		require.NoError(t, l.Append(context.Background(), domain.Ticket{
			ID:         fmt.Sprintf("t-%d", i),
			Customer:   domain.Customer{Name: "C", Age: 40, Email: fmt.Sprintf("c%d@x.com", i%2)},
			Flight:     domain.Flight{FlightNumber: "IA103", Origin: "Chennai", Destination: "Hyderabad", DepartureTime: "11:00 AM"},
			CabinClass: class,
			Price:      200,
			IssuedAt:   issued.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, l.Close())
	return path
}

func TestRun_Verify(t *testing.T) {
	path := writeLog(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"verify", "--strict", path}, &out))

	assert.Contains(t, out.String(), "frames: 4")
	assert.Contains(t, out.String(), "tail bytes: 0")
}

func TestRun_VerifyStrictFailsOnTail(t *testing.T) {
	path := writeLog(t)
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-5))

	var out bytes.Buffer
	assert.NoError(t, run(context.Background(), []string{"verify", path}, &out))
	assert.Error(t, run(context.Background(), []string{"verify", "--strict", path}, &out))
}

func TestRun_VerifyReportsUnreadableLength(t *testing.T) {
	path := writeLog(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[11] = 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var out bytes.Buffer
	err = run(context.Background(), []string{"verify", path}, &out)

	assert.ErrorIs(t, err, ticketlog.ErrDamaged)
	assert.Contains(t, out.String(), fmt.Sprintf("unreadable bytes: %d", len(data)-8))
	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.Equal(t, int64(len(data)), info.Size())
}

func TestRun_DumpInPriorityOrder(t *testing.T) {
	path := writeLog(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"dump", path}, &out))

	text := out.String()
	order := []int{
		strings.Index(text, "t-1"),
		strings.Index(text, "t-2"),
		strings.Index(text, "t-0"),
		strings.Index(text, "t-3"),
	}
	for i := range order {
		require.NotEqual(t, -1, order[i])
		if i > 0 {
			assert.Less(t, order[i-1], order[i])
		}
	}
	assert.Contains(t, text, "4 tickets")
}

func TestRun_DumpFiltersByEmail(t *testing.T) {
	path := writeLog(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"dump", "--email", "c1@x.com", path}, &out))

	assert.Contains(t, out.String(), "t-1")
	assert.Contains(t, out.String(), "t-3")
	assert.NotContains(t, out.String(), "t-0")
	assert.Contains(t, out.String(), "2 tickets")
}

func TestRun_Export(t *testing.T) {
	path := writeLog(t)
	dest := filepath.Join(t.TempDir(), "tickets.cbor.zst")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"export", "--out", dest, path}, &out))

	file, err := os.Open(dest)
	require.NoError(t, err)
	defer file.Close()
	zr, err := zstd.NewReader(file)
	require.NoError(t, err)
	defer zr.Close()

	dec := codec.NewDecoder(zr)
	var ids []string
	for {
		var tk domain.Ticket
		err := dec.Decode(&tk)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []string{"t-1", "t-2", "t-0", "t-3"}, ids)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(context.Background(), nil, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"compact", "x"}, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"export", "x"}, &out), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"dump"}, &out), errUsage)
}
