package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCover(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 9), G: uint8(y * 5), B: 0x80, A: 0xff})
		}
	}
	p := filepath.Join(dir, "cover.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return p
}

// resetFlags puts every flag back to its default, since the commands are package globals.
func resetFlags(cmd *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHideThenDig(t *testing.T) {
	dir := t.TempDir()
	cover := writeCover(t, dir, 30, 20)
	out := filepath.Join(dir, "secret.png")

	stdout, err := run(t, "hide", "-q", "-i", cover, "-o", out, "-m", "from the command line")
	require.NoError(t, err)
	assert.Contains(t, stdout, out)

	stdout, err = run(t, "dig", "-q", "-i", out)
	require.NoError(t, err)
	assert.Equal(t, "from the command line\n", stdout)
}

func TestHide_MessageFile(t *testing.T) {
	dir := t.TempDir()
	cover := writeCover(t, dir, 30, 20)
	msgPath := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(msgPath, []byte("from a file\n"), 0o644))
	out := filepath.Join(dir, "secret.tiff")

	_, err := run(t, "hide", "-q", "-i", cover, "-o", out, "--message-file", msgPath)
	require.NoError(t, err)

	stdout, err := run(t, "dig", "-q", "-i", out)
	require.NoError(t, err)
	assert.Equal(t, "from a file\n", stdout)
}

func TestHide_TooLong(t *testing.T) {
	dir := t.TempDir()
	cover := writeCover(t, dir, 2, 2)

	_, err := run(t, "hide", "-q", "-i", cover, "-o", filepath.Join(dir, "o.png"), "-m", "does not fit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough space")
}

func TestDig_NoMessage(t *testing.T) {
	dir := t.TempDir()
	cover := writeCover(t, dir, 4, 4)

	_, err := run(t, "dig", "-q", "-i", cover)
	assert.ErrorIs(t, err, errNoMessage)
}

func TestCapacity(t *testing.T) {
	dir := t.TempDir()
	cover := writeCover(t, dir, 3, 3)

	stdout, err := run(t, "capacity", "-i", cover, "-m", "abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3x3 px")
	assert.Contains(t, stdout, "27 bits")
	assert.Contains(t, stdout, "2 characters")
	assert.Contains(t, stdout, "does not fit")
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "steg v01.00.00")
}

func TestHasExt(t *testing.T) {
	assert.True(t, hasExt("out.png"))
	assert.True(t, hasExt("/tmp/dir/out.bmp"))
	assert.False(t, hasExt("/tmp/some.dir/out"))
	assert.False(t, hasExt("out"))
}
