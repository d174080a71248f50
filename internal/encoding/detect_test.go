package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/presence/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Employee ID,Name\nE1,José Müller\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Employee ID,Name\nE1,José\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, "Employee ID,Name\nE1,José\n", got)
	assert.Equal(t, encoding.CharsetUTF8BOM, charset)
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "E1,José\n" with é = 0xE9.
	input := []byte{'E', '1', ',', 'J', 'o', 's', 0xE9, '\n'}

	got, _ := readAll(t, input)
	assert.Equal(t, "E1,José\n", got)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.Bytes([]byte("Name\nJosé\n"))
	require.NoError(t, err)

	got, charset := readAll(t, input)
	assert.Equal(t, "Name\nJosé\n", got)
	assert.Equal(t, encoding.CharsetUTF16LE, charset)
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, charset := readAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_MultibyteAtPeekBoundary(t *testing.T) {
	// "é" straddles the end of the inspected prefix.
	input := append(bytes.Repeat([]byte("a"), 4095), []byte("é,ok\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, string(input), got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}
