package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	*confFile = filepath.Join(dir, "missing.yaml")
	defer func() { *confFile = "" }()
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to read config")
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	*confFile = filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(*confFile, []byte("workers: 3\npolicy: capture\n"), 0644))
	conf, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, conf.Workers)
	assert.Equal(t, "capture", conf.Policy)

	*boardFile = filepath.Join(dir, "missing.txt")
	defer func() { *boardFile = "" }()
	_, err = loadBoard()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to read board")
}

func TestWriteSample(t *testing.T) {
	b, err := wq.Parse(`
		. X O
		X X O
		O O .`, 0)
	require.NoError(t, err)
	own := playout.NewOwnermap(b.Points())
	own.Record(b)

	dir := t.TempDir()
	for _, aug := range []bool{false, true} {
		*augment = aug
		filename := filepath.Join(dir, "sample.npy")
		require.NoError(t, writeSample(filename, b, own, 0.8))
		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x93NUMPY")))
		if aug {
			assert.Contains(t, string(data), "(4, 5, 3, 3)")
		} else {
			assert.Contains(t, string(data), "(5, 3, 3)")
		}
	}
	*augment = false

	err = writeSample(filepath.Join(dir, "no", "such", "dir.npy"), b, own, 0.8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to create numpy file")
}
