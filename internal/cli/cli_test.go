package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/decoder"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

func resetFlags() {
	rootFlags.config = ""
	rootFlags.logLevel = "error"
	decodeFlags.format = "tree"
	encodeFlags.output = ""
	validateFlags.json = false
	repairFlags.output = ""
	repairFlags.quiet = false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := ExecuteContext(context.Background())
	logger.Set(zap.NewNop())
	return out.String(), err
}

func writeMarkup(t *testing.T, env *model.Environment) string {
	t.Helper()
	doc, err := markup.NewEncoder(common.DefaultConfig().Encoder).Encode(env)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "pump.xml")
	require.NoError(t, os.WriteFile(path, []byte(doc.Text()), 0o600))
	return path
}

func validFile(t *testing.T) string {
	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "",
		model.NewProperty("SerialNumber", valuetype.XsdString, "SN-1"),
	)}
	return writeMarkup(t, env)
}

func incompleteFile(t *testing.T) string {
	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "",
		model.NewProperty("SerialNumber", valuetype.XsdString, ""),
	)}
	return writeMarkup(t, env)
}

func TestDecode(t *testing.T) {
	in := validFile(t)

	out, err := run(t, "decode", in)
	require.NoError(t, err)
	assert.Contains(t, out, `"idShort": "SerialNumber"`)

	out, err = run(t, "decode", in, "--format", "record")
	require.NoError(t, err)
	assert.Contains(t, out, `"submodelElements"`)

	out, err = run(t, "decode", in, "-f", "markup")
	require.NoError(t, err)
	assert.Contains(t, out, "<value>SN-1</value>")

	_, err = run(t, "decode", in, "-f", "yaml")
	assert.Equal(t, ExitUsage, ExitCodeForError(err))
}

func TestArgsValidation(t *testing.T) {
	_, err := run(t, "decode")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCodeForError(err))

	_, err = run(t, "validate", "a.xml", "b.xml")
	assert.Equal(t, ExitUsage, ExitCodeForError(err))

	_, err = run(t, "decode", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", validFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "record: valid (local schema)")
	assert.Contains(t, out, "markup: not checked (validator unavailable)")
	assert.Contains(t, out, "accepted")

	out, err = run(t, "validate", incompleteFile(t))
	require.ErrorIs(t, err, ErrNotAccepted)
	assert.Equal(t, ExitNotAccepted, ExitCodeForError(err))
	assert.Contains(t, out, "[required] Nameplate > SerialNumber")
	assert.Contains(t, out, "not accepted")

	out, err = run(t, "validate", validFile(t), "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"accepted": true`)
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pump.aasx")

	_, err := run(t, "encode", validFile(t), "-o", archive)
	require.NoError(t, err)
	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	res, err := decoder.DecodeArchive(data)
	require.NoError(t, err)
	assert.Equal(t, "Pump", res.Environment.IdShort)

	// archives are recognized by content
	record := filepath.Join(dir, "pump.json")
	_, err = run(t, "encode", archive, "-o", record)
	require.NoError(t, err)
	text, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Contains(t, string(text), `"SN-1"`)

	_, err = run(t, "encode", incompleteFile(t), "-o", filepath.Join(dir, "broken.aasx"))
	require.ErrorIs(t, err, ErrNotAccepted)
	assert.NoFileExists(t, filepath.Join(dir, "broken.aasx"))

	_, err = run(t, "encode", validFile(t), "-o", filepath.Join(dir, "pump.txt"))
	assert.Equal(t, ExitUsage, ExitCodeForError(err))

	_, err = run(t, "encode", validFile(t))
	require.Error(t, err, "--output is required")
}

func TestRepair(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "pump.aasx")

	out, err := run(t, "repair", incompleteFile(t), "-o", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "fill-required-values")
	assert.Contains(t, out, "accepted")

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	res, err := decoder.DecodeArchive(data)
	require.NoError(t, err)
	serial, err := res.Environment.Lookup(model.NewPath("Nameplate", "SerialNumber"))
	require.NoError(t, err)
	assert.True(t, serial.HasValue())

	out, err = run(t, "repair", validFile(t), "-o", archive, "-q")
	require.NoError(t, err)
	assert.NotContains(t, out, "fill-required-values")
}
