package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/displayctl/ddc-go/pkg/log"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

const testConfig = `
backends: [sim]
retry:
  attempts: 2
  delay: 1ms
sim:
  monitors:
    - id: "1"
      manufacturer: DEL
      product: 0xA0F1
      serial: 1234
      model: U2720Q
      year: 2021
      mccs_version: "2.1"
      features:
        Luminance: {current: 30, maximum: 80}
    - id: "2"
      manufacturer: AOC
      product: 9218
      serial_string: GHLM1234
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ddcctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ddcctl dev\n", out)
}

func TestListJSON(t *testing.T) {
	out, err := run(t, "list", "--json")
	require.NoError(t, err)

	var got []listing
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "sim:1", got[0].ID)
	assert.Equal(t, "DEL", got[0].Manufacturer)
	assert.Equal(t, "1234", got[0].Serial)
	assert.Equal(t, uint16(2021), got[0].Year)
	assert.Equal(t, "GHLM1234", got[1].Serial)
}

func TestListSelection(t *testing.T) {
	out, err := run(t, "--mfg", "AOC", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sim:2")
	assert.NotContains(t, out, "sim:1")
	assert.Contains(t, out, "#GHLM1234")

	out, err = run(t, "--serial", "nope", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No displays found")
}

func TestGet(t *testing.T) {
	out, err := run(t, "--id", "sim:1", "get", "Luminance", "0x12")
	require.NoError(t, err)
	assert.Equal(t, "sim:1 Luminance 30/80\nsim:1 Contrast 75/100\n", out)
}

func TestGetNoMatchingDisplays(t *testing.T) {
	_, err := run(t, "--model", "nope", "get", "Luminance")
	assert.ErrorIs(t, err, errNoDisplays)
}

func TestGetUnknownFeature(t *testing.T) {
	_, err := run(t, "get", "Brightness")
	assert.ErrorContains(t, err, "invalid feature code")
}

func TestSet(t *testing.T) {
	_, err := run(t, "set", "InputSource", "0x11")
	require.NoError(t, err)

	_, err = run(t, "set", "Luminance", "loud")
	assert.ErrorContains(t, err, "expected a level")

	_, err = run(t, "set", "LUTTable", "1")
	assert.ErrorContains(t, err, "use the table command")
}

func TestCaps(t *testing.T) {
	out, err := run(t, "--id", "sim:1", "caps")
	require.NoError(t, err)
	assert.Contains(t, out, "MCCS:    2.1")
	assert.Contains(t, out, "Model:   U2720Q")
	assert.Contains(t, out, "0x60 InputSource")
}

func TestMCCS(t *testing.T) {
	out, err := run(t, "mccs")
	require.NoError(t, err)
	assert.Equal(t, "sim:1 2.1\nsim:2 2.2\n", out)
}

func TestTiming(t *testing.T) {
	out, err := run(t, "--id", "sim:2", "timing")
	require.NoError(t, err)
	assert.Equal(t, "sim:2 88.80kHz 60.00Hz\n", out)
}

func TestTable(t *testing.T) {
	out, err := run(t, "--id", "sim:1", "table", "LUTTable")
	require.NoError(t, err)
	assert.Contains(t, out, "sim:1 LUTTable 8 bytes")

	_, err = run(t, "--id", "sim:1", "table", "LUTTable", "--write", "0102", "--offset", "4")
	require.NoError(t, err)

	_, err = run(t, "table", "LUTTable", "--write", "zz")
	assert.ErrorContains(t, err, "invalid table data")
}

func TestSave(t *testing.T) {
	_, err := run(t, "save")
	require.NoError(t, err)
}

func TestProtocolLog(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "session.dlog")
	_, err := run(t, "--protocol-log", capture, "--id", "sim:2", "get", "Contrast")
	require.NoError(t, err)

	reader, err := log.NewReader(capture)
	require.NoError(t, err)
	defer reader.Close()

	var ops []log.Operation
	for {
		e, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if e.Exchange != nil && e.DisplayID == "sim:2" {
			ops = append(ops, e.Exchange.Operation)
		}
	}
	assert.Contains(t, ops, log.OpGetVCP)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DDCCTL_RANGE_POLICY", "lenient")
	_, err := run(t, "list")
	assert.ErrorContains(t, err, "invalid range_policy")
}

func TestBackendFlagOverridesConfig(t *testing.T) {
	_, err := run(t, "--backend", "winapi", "list")
	assert.ErrorContains(t, err, "not available")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "list")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		code    vcp.FeatureCode
		input   string
		want    vcp.Value
		wantErr bool
	}{
		{vcp.Luminance, "40", vcp.Level(40), false},
		{vcp.Luminance, "0x28", vcp.Level(40), false},
		{vcp.Luminance, "70000", vcp.Value{}, true},
		{vcp.InputSource, "0x11", vcp.NonContinuous(0x11), false},
		{vcp.InputSource, "17", vcp.NonContinuous(0x11), false},
		{vcp.InputSource, "256", vcp.Value{}, true},
		{vcp.LUTTable, "1", vcp.Value{}, true},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.code, tt.input)
		if tt.wantErr {
			assert.Error(t, err, "%s %s", tt.code, tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.code, tt.input)
	}
}

func TestStringListSplitsCommas(t *testing.T) {
	v := viper.New()
	v.Set(keyBackend, []string{"i2c-dev,sim", " winapi "})
	assert.Equal(t, []string{"i2c-dev", "sim", "winapi"}, stringList(v, keyBackend))
}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	v := viper.New()
	v.Set(keyConfig, writeConfig(t))
	v.Set(keyLogLevel, "error")
	a, err := newApp(v, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := &shell{app: a, out: &out}
	require.NoError(t, sh.rescan(t.Context()))
	t.Cleanup(sh.closeAll)
	return sh, &out
}

func TestShellKeepsDisplaysOpen(t *testing.T) {
	sh, out := newTestShell(t)
	assert.Contains(t, out.String(), "Found 2 display(s)")

	out.Reset()
	assert.False(t, sh.exec(t.Context(), "set Luminance 40"))
	assert.False(t, sh.exec(t.Context(), "get Luminance"))
	assert.Equal(t, "sim:1 Luminance 40/80\nsim:2 Luminance 40/100\n", out.String())
}

func TestShellSelection(t *testing.T) {
	sh, out := newTestShell(t)

	out.Reset()
	sh.exec(t.Context(), "use sim:2")
	sh.exec(t.Context(), "get Contrast")
	assert.Equal(t, "sim:2 Contrast 75/100\n", out.String())

	out.Reset()
	sh.exec(t.Context(), "list")
	assert.Contains(t, out.String(), "* sim:2 AOC")
	assert.Contains(t, out.String(), "  sim:1 DEL U2720Q #1234 [OPEN]")

	out.Reset()
	sh.exec(t.Context(), "use sim:9")
	assert.Contains(t, out.String(), `Error: unknown display "sim:9"`)

	out.Reset()
	sh.exec(t.Context(), "use all")
	sh.exec(t.Context(), "mccs")
	assert.Equal(t, "sim:1 2.1\nsim:2 2.2\n", out.String())

	out.Reset()
	sh.exec(t.Context(), "timing")
	assert.Equal(t, "sim:1 88.80kHz 60.00Hz\nsim:2 88.80kHz 60.00Hz\n", out.String())
}

func TestShellCommands(t *testing.T) {
	sh, out := newTestShell(t)

	out.Reset()
	assert.False(t, sh.exec(t.Context(), "frobnicate"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")

	out.Reset()
	assert.False(t, sh.exec(t.Context(), "get"))
	assert.Contains(t, out.String(), "usage: get")

	out.Reset()
	assert.False(t, sh.exec(t.Context(), "caps"))
	assert.Contains(t, out.String(), "sim:1:")

	assert.False(t, sh.exec(t.Context(), "   "))
	assert.True(t, sh.exec(t.Context(), "quit"))
}
