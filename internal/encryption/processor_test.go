package encryption_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/config"
	"github.com/idelchi/gosym/internal/encryption"
	"github.com/idelchi/gosym/internal/logging"
	"github.com/idelchi/gosym/internal/mode"
)

func testConfig(files ...string) *config.Config {
	return &config.Config{
		Suite: config.Suite{
			Cipher:    "rijndael",
			Mode:      "cbc",
			Padding:   "pkcs7",
			BlockSize: 24,
			Modulus:   "1b",
		},
		Key:      "000102030405060708090a0b0c0d0e0f1011121314151617",
		Parallel: 2,
		Suffixes: config.Suffixes{Encrypt: ".enc", Decrypt: ".out"},
		Quiet:    true,
		Files:    files,
	}
}

func process(t *testing.T, cfg *config.Config) (int, int) {
	t.Helper()

	processor, err := encryption.NewProcessor(cfg, mode.NewPool(2), logging.Discard())
	require.NoError(t, err)

	processed, errored, _, _, _ := processor.ProcessFiles(context.Background())

	return processed, errored
}

func TestProcessorRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	contents := map[string][]byte{
		"plain.txt": []byte("hello, world\n"),
		"empty":     {},
		"large.bin": bytes.Repeat([]byte{0xAB, 0xCD, 0x00}, 10000),
	}

	var files, encrypted []string

	for name, data := range contents {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))

		files = append(files, path)
		encrypted = append(encrypted, path+".enc")
	}

	processed, errored := process(t, testConfig(files...))
	require.Equal(t, len(files), processed)
	require.Zero(t, errored)

	cfg := testConfig(encrypted...)
	cfg.Decrypt = true

	processed, errored = process(t, cfg)
	require.Equal(t, len(files), processed)
	require.Zero(t, errored)

	for name, data := range contents {
		got, err := os.ReadFile(filepath.Join(dir, name+".out"))
		require.NoError(t, err)
		assert.Equal(t, data, got, name)
	}
}

func TestProcessorFreshIVPerFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	for _, path := range []string{a, b} {
		require.NoError(t, os.WriteFile(path, []byte("identical content"), 0o600))
	}

	processed, _ := process(t, testConfig(a, b))
	require.Equal(t, 2, processed)

	first, err := os.ReadFile(a + ".enc")
	require.NoError(t, err)

	second, err := os.ReadFile(b + ".enc")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestProcessorConfiguredIV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("fixed iv"), 0o600))

	cfg := testConfig(path)
	cfg.Cipher = "des"
	cfg.Mode = "ofb"
	cfg.Key = "133457799bbcdff1"
	cfg.IV = "0001020304050607"

	processed, _ := process(t, cfg)
	require.Equal(t, 1, processed)

	data, err := os.ReadFile(path + ".enc")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\x00\x01\x02\x03\x04\x05\x06\x07")
}

func TestProcessorSuiteMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("mismatch"), 0o600))

	processed, _ := process(t, testConfig(path))
	require.Equal(t, 1, processed)

	cfg := testConfig(path + ".enc")
	cfg.Mode = "ctr"
	cfg.Decrypt = true

	processed, errored := process(t, cfg)
	assert.Zero(t, processed)
	assert.Equal(t, 1, errored)

	_, err := os.Stat(path + ".out")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessorExecutableBit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o700))

	processed, _ := process(t, testConfig(path))
	require.Equal(t, 1, processed)

	cfg := testConfig(path + ".enc")
	cfg.Decrypt = true

	processed, _ = process(t, cfg)
	require.Equal(t, 1, processed)

	info, err := os.Stat(path + ".out")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestProcessorLongRDIV(t *testing.T) {
	t.Parallel()

	cfg := testConfig("unused")
	cfg.Mode = "rd"
	cfg.IV = strings.Repeat("ab", 256)

	_, err := encryption.NewProcessor(cfg, nil, logging.Discard())
	require.ErrorIs(t, err, encryption.ErrIVTooLong)

	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("rd with a long iv"), 0o600))

	cfg = testConfig(path)
	cfg.Mode = "rd"
	cfg.IV = "0X" + strings.Repeat("cd", 255)
	cfg.Suffixes.Decrypt = ".out"

	processed, errored := process(t, cfg)
	require.Equal(t, 1, processed)
	require.Zero(t, errored)

	cfg.Files = []string{path + ".enc"}
	cfg.Decrypt = true

	processed, errored = process(t, cfg)
	require.Equal(t, 1, processed)
	require.Zero(t, errored)

	data, err := os.ReadFile(path + ".out")
	require.NoError(t, err)
	assert.Equal(t, "rd with a long iv", string(data))
}

func TestNewProcessorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "unknown cipher", modify: func(c *config.Config) { c.Cipher = "aes" }},
		{name: "unknown mode", modify: func(c *config.Config) { c.Mode = "gcm" }},
		{name: "bad key", modify: func(c *config.Config) { c.Key = "zz" }},
		{name: "wrong key size", modify: func(c *config.Config) { c.Key = "0011" }},
		{name: "bad iv", modify: func(c *config.Config) { c.IV = "xyz" }},
		{name: "reducible modulus", modify: func(c *config.Config) { c.Modulus = "1a" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig("unused")
			test.modify(cfg)

			_, err := encryption.NewProcessor(cfg, nil, logging.Discard())
			require.Error(t, err)
		})
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Suffixes.Decrypt = ""

	assert.Equal(t, filepath.Join("dir", "a.txt.enc"), encryption.OutputPath(filepath.Join("dir", "a.txt"), cfg))

	cfg.Decrypt = true
	assert.Equal(t, filepath.Join("dir", "a.txt"), encryption.OutputPath(filepath.Join("dir", "a.txt.enc"), cfg))
	assert.Equal(t, filepath.Join("dir", "a.txt"), encryption.OutputPath(filepath.Join("dir", "a.txt"), cfg))
}
