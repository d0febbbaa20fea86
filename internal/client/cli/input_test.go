package cli

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a\nb\n\n\n"))
	var out bytes.Buffer
	got, err := GetMultiline(in, "Enter text", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAskDefault_KeepsCurrentOnEmpty(t *testing.T) {
	app := newTestApp(nil, "", "new")

	got, err := app.askDefault("Name", "old")
	require.NoError(t, err)
	assert.Equal(t, "old", got)

	got, err = app.askDefault("Name", "old")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestAskInt(t *testing.T) {
	app := newTestApp(nil, "", "42", "abc")

	n, err := app.askInt("Age", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = app.askInt("Age", 7)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = app.askInt("Age", 7)
	require.Error(t, err)
}

func TestAskImage(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR"), 0o600))

	app := newTestApp(nil, "", png)

	att, err := app.askImage("Image")
	require.NoError(t, err)
	assert.Nil(t, att)

	att, err = app.askImage("Image")
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, "a.png", att.FileName)
}

func TestAskPassword_UsesSeam(t *testing.T) {
	stubPassword(t, "s3cret")
	app := newTestApp(nil)
	got, err := app.askPassword()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}
