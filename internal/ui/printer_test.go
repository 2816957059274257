package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPrinter(quiet, debug bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	return &Printer{Out: out, Err: errBuf, Quiet: quiet, Debug: debug}, out, errBuf
}

func TestInfoGoesToErrStream(t *testing.T) {
	p, out, errBuf := newTestPrinter(false, false)
	p.Infof("resolving %s", "owner/tool")

	assert.Empty(t, out.String(), "stdout is reserved for results")
	assert.Contains(t, errBuf.String(), "resolving owner/tool")
}

func TestQuietSuppressesInfoButNotWarnings(t *testing.T) {
	p, _, errBuf := newTestPrinter(true, false)

	p.Infof("progress line")
	assert.Empty(t, errBuf.String())

	p.Warnf("directory %s is not on PATH", "/home/u/.local/bin")
	assert.Contains(t, errBuf.String(), "not on PATH")
}

func TestDebugGatedByFlag(t *testing.T) {
	p, _, errBuf := newTestPrinter(false, false)
	p.Debugf("candidate scored %d", 13)
	assert.Empty(t, errBuf.String())

	p.Debug = true
	p.Debugf("candidate scored %d", 13)
	assert.Contains(t, errBuf.String(), "candidate scored 13")
}

func TestResultGoesToOutStream(t *testing.T) {
	p, out, errBuf := newTestPrinter(true, false)
	p.Resultf("%s", "1.2.3")

	assert.Equal(t, "1.2.3\n", out.String())
	assert.Empty(t, errBuf.String())
}

func TestAssetTable(t *testing.T) {
	p, out, errBuf := newTestPrinter(false, false)
	p.AssetTable("available assets:", []string{"tool_linux_amd64.tar.gz", "tool_darwin_amd64.tar.gz"})

	assert.Empty(t, out.String())
	assert.Contains(t, errBuf.String(), "available assets:")
	assert.Contains(t, errBuf.String(), "tool_linux_amd64.tar.gz")
	assert.Contains(t, errBuf.String(), "tool_darwin_amd64.tar.gz")
}

func TestAssetTableEmpty(t *testing.T) {
	p, _, errBuf := newTestPrinter(false, false)
	p.AssetTable("available assets:", nil)
	assert.Empty(t, errBuf.String())
}
