package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/aasx"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/decoder"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleEnvironment() *model.Environment {
	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "",
		model.NewProperty("SerialNumber", valuetype.XsdString, "SN-1"),
		model.NewCollection("Address", model.NewProperty("Street", valuetype.XsdString, "Main St")),
	)}
	return env
}

func newSession(t *testing.T, env *model.Environment, opts ...Option) *Session {
	t.Helper()
	s, err := New(common.DefaultConfig(), env, opts...)
	require.NoError(t, err)
	return s
}

func TestNewEncodesBothForms(t *testing.T) {
	s := newSession(t, sampleEnvironment())
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, uint64(1), s.Revision())
	assert.Contains(t, s.Markup().Text(), "<idShort>SerialNumber</idShort>")
	assert.Contains(t, s.Record().Text(), `"idShort": "SerialNumber"`)
	assert.False(t, s.Validated())

	_, err := New(common.DefaultConfig(), nil)
	assert.True(t, common.IsErrBadRequest(err))
}

func TestEditsInvalidateValidation(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, sampleEnvironment())

	report, err := s.Validate(ctx)
	require.NoError(t, err)
	require.True(t, report.Accepted, "%+v", report.Issues)
	assert.True(t, s.Validated())

	data, err := s.Export(ctx, nil)
	require.NoError(t, err)
	res, err := decoder.DecodeArchive(data)
	require.NoError(t, err)
	assert.Equal(t, s.Markup().Text(), res.Markup)

	require.NoError(t, s.UpdateElement(model.NewPath("Nameplate", "SerialNumber"), func(el *model.Element) {
		p, _ := el.AsProperty()
		p.Value = "SN-2"
	}))
	assert.Equal(t, uint64(2), s.Revision())
	assert.False(t, s.Validated())
	_, stale := s.Report()
	assert.False(t, stale)

	_, err = s.Export(ctx, nil)
	require.ErrorIs(t, err, ErrNotValidated)
	assert.Contains(t, s.Markup().Text(), "SN-2")
}

func TestEditOperations(t *testing.T) {
	s := newSession(t, sampleEnvironment())
	root := model.NewPath("Nameplate")

	require.NoError(t, s.AddElement(root, model.NewProperty("Year", valuetype.XsdInt, "2024"), 0))
	require.NoError(t, s.AddSubmodel(model.NewSubmodel("TechnicalData", "")))
	require.NoError(t, s.Reorder(root, 0, 2))
	require.NoError(t, s.MoveElement(model.NewPath("Nameplate", "Year"), model.NewPath("Nameplate", "SerialNumber")))
	note := model.NewProperty("Note", valuetype.XsdString, "")
	note.Cardinality = model.CardinalityZeroToOne
	require.NoError(t, s.AddElement(model.NewPath("Nameplate", "Address"), note, -1))
	require.NoError(t, s.DeleteElement(model.NewPath("Nameplate", "Address", "Note")))
	require.ErrorIs(t, s.DeleteElement(model.NewPath("Nameplate", "Address", "Street")), model.ErrNotDeletable)
	require.NoError(t, s.RemoveSubmodel("TechnicalData"))
	require.NoError(t, s.UpdateHeader(func(env *model.Environment) { env.AssetType = "Pump" }))

	env := s.Environment()
	var names []string
	for _, el := range env.Submodels[0].Elements {
		names = append(names, el.IdShort)
	}
	assert.Equal(t, []string{"Year", "SerialNumber", "Address"}, names)
	assert.Len(t, env.Submodels, 1)
	assert.Equal(t, "Pump", env.AssetType)
	assert.Equal(t, uint64(9), s.Revision())

	err := s.DeleteElement(model.NewPath("Nameplate", "Missing"))
	require.ErrorIs(t, err, model.ErrElementNotFound)
	assert.Equal(t, uint64(9), s.Revision(), "failed edits keep the revision")
}

func TestRemediateRepairsAndValidatesOnce(t *testing.T) {
	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "",
		model.NewProperty("SerialNumber", "", ""),
		model.NewMultiLanguageProperty("Title", nil),
	)}
	s := newSession(t, env)

	report, err := s.Validate(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Accepted)
	assert.Equal(t, 3, report.Counts.Required)

	out, err := s.Remediate(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Repair.Changed())
	assert.True(t, out.Report.Accepted, "%+v", out.Report.Issues)
	assert.True(t, s.Validated())
	assert.Equal(t, uint64(2), s.Revision())

	prop, err := s.Environment().Lookup(model.NewPath("Nameplate", "SerialNumber"))
	require.NoError(t, err)
	p, _ := prop.AsProperty()
	assert.Equal(t, valuetype.XsdString, p.ValueType)
	assert.Equal(t, "N/A", p.Value)
	assert.Contains(t, s.Record().Text(), `"value": "N/A"`)
}

// blockingChecker holds every check until released.
type blockingChecker struct {
	started chan struct{}
	release chan struct{}
}

func (c *blockingChecker) Check(ctx context.Context, _ validator.SchemaRequest) (*validator.SchemaResult, error) {
	c.started <- struct{}{}
	select {
	case <-c.release:
		return &validator.SchemaResult{Valid: true}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestValidationOfSupersededRevisionIsNotRecorded(t *testing.T) {
	checker := &blockingChecker{started: make(chan struct{}, 2), release: make(chan struct{})}
	v := validator.New(common.ValidatorConfig{}, validator.WithRemote(checker))
	s := newSession(t, sampleEnvironment(), WithValidator(v))

	type result struct {
		report *validator.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := s.Validate(context.Background())
		done <- result{r, err}
	}()
	<-checker.started
	<-checker.started

	require.NoError(t, s.AddSubmodel(model.NewSubmodel("TechnicalData", "")))
	_, err := s.Validate(context.Background())
	require.ErrorIs(t, err, validator.ErrValidationInProgress)

	close(checker.release)
	r := <-done
	require.NoError(t, r.err)
	assert.True(t, r.report.Accepted)
	assert.False(t, s.Validated())
}

func TestOpenCarriesAttachments(t *testing.T) {
	doc, err := markup.NewEncoder(common.DefaultConfig().Encoder).Encode(sampleEnvironment())
	require.NoError(t, err)
	data, err := aasx.Write(&aasx.Package{
		Markup:      doc.Text(),
		Attachments: map[string][]byte{"aasx/files/manual.pdf": []byte("%PDF-1.4")},
	})
	require.NoError(t, err)

	s, err := Open(common.DefaultConfig(), data)
	require.NoError(t, err)
	_, err = s.Validate(context.Background())
	require.NoError(t, err)

	var exported *aasx.Package
	_, err = s.Export(context.Background(), PackagerFunc(func(_ context.Context, pkg *aasx.Package) ([]byte, error) {
		exported = pkg
		return []byte("ok"), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), exported.Attachments["aasx/files/manual.pdf"])
	assert.NotEmpty(t, exported.Record)

	_, err = Open(common.DefaultConfig(), []byte("not an archive"))
	require.True(t, errors.Is(err, decoder.ErrMalformedArchive))

	cfg := common.DefaultConfig()
	cfg.Server.MaxArchiveBytes = int64(len(doc.Text()) - 1)
	_, err = Open(cfg, data)
	require.ErrorIs(t, err, decoder.ErrMalformedArchive)
	require.ErrorIs(t, err, aasx.ErrTooLarge)
}

func TestOpenMarkupRejectsForeignRoot(t *testing.T) {
	_, err := OpenMarkup(common.DefaultConfig(), `<catalog/>`)
	require.ErrorIs(t, err, decoder.ErrUnrecognizedRoot)
}
