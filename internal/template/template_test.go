package template

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

func TestBuiltinCatalog(t *testing.T) {
	list, err := Builtin().List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, s := range list {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.SemanticID, s.Name)
	}
	assert.Equal(t, []string{"Nameplate", "TechnicalData", "ContactInformation", "Documentation"}, names)
}

func TestTemplateSubmodel(t *testing.T) {
	tpl, err := Builtin().Get(context.Background(), "Nameplate")
	require.NoError(t, err)

	sm, err := tpl.Submodel("")
	require.NoError(t, err)
	assert.Equal(t, "Nameplate", sm.IdShort)
	assert.Equal(t, "https://admin-shell.io/zvei/nameplate/2/0/Nameplate", sm.SemanticID)

	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{sm}

	serial, err := env.Lookup(model.NewPath("Nameplate", "SerialNumber"))
	require.NoError(t, err)
	p, ok := serial.AsProperty()
	require.True(t, ok)
	assert.Equal(t, valuetype.XsdString, p.ValueType)
	assert.Equal(t, model.CardinalityZeroToOne, serial.Cardinality)
	assert.Equal(t, "Serial number", serial.PreferredName[model.DefaultLanguage])

	date, err := env.Lookup(model.NewPath("Nameplate", "DateOfManufacture"))
	require.NoError(t, err)
	p, _ = date.AsProperty()
	assert.Equal(t, valuetype.XsdDate, p.ValueType)

	renamed, err := tpl.Submodel("Nameplate2")
	require.NoError(t, err)
	assert.Equal(t, "Nameplate2", renamed.IdShort)
	assert.NotSame(t, sm.Elements[0], renamed.Elements[0])

	_, err = tpl.Submodel("2nd")
	require.ErrorIs(t, err, model.ErrInvalidIdShort)
}

func TestNestedTemplate(t *testing.T) {
	tpl, err := Builtin().Get(context.Background(), "Documentation")
	require.NoError(t, err)
	sm, err := tpl.Submodel("")
	require.NoError(t, err)

	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	env.Submodels = []*model.Submodel{sm}
	file, err := env.Lookup(model.NewPath("Documentation", "Document", "DocumentVersion", "DigitalFile"))
	require.NoError(t, err)
	f, ok := file.AsFile()
	require.True(t, ok)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, model.CardinalityOneToMany, file.Cardinality)
}

func TestParseCatalogRejectsBrokenDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "templates:\n  - name: A\n    colour: red\n"},
		{"bad idShort", "templates:\n  - name: A\n    elements:\n      - idShort: 1st\n        modelType: Property\n"},
		{"unknown model type", "templates:\n  - name: A\n    elements:\n      - idShort: X\n        modelType: Operation\n"},
		{"unknown value type", "templates:\n  - name: A\n    elements:\n      - idShort: X\n        modelType: Property\n        valueType: xs:colour\n"},
		{"bad cardinality", "templates:\n  - name: A\n    elements:\n      - idShort: X\n        modelType: Property\n        cardinality: Some\n"},
		{"children on a leaf", "templates:\n  - name: A\n    elements:\n      - idShort: X\n        modelType: Property\n        children:\n          - idShort: Y\n            modelType: Property\n"},
		{"duplicate siblings", "templates:\n  - name: A\n    elements:\n      - idShort: X\n        modelType: Property\n      - idShort: X\n        modelType: File\n"},
		{"duplicate template", "templates:\n  - name: A\n  - name: A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

type failingCatalog struct{ err error }

func (c failingCatalog) List(context.Context) ([]Summary, error) { return nil, c.err }

func (c failingCatalog) Get(context.Context, string) (*Template, error) { return nil, c.err }

func TestFallbackCatalog(t *testing.T) {
	ctx := context.Background()
	remote, err := ParseCatalog([]byte("templates:\n  - name: Custom\n    semanticId: urn:custom\n"))
	require.NoError(t, err)

	t.Run("primary answers", func(t *testing.T) {
		c := NewFallbackCatalog(remote)
		list, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Custom", list[0].Name)

		tpl, err := c.Get(ctx, "Nameplate")
		require.NoError(t, err, "unknown names fall through to the built-ins")
		assert.Equal(t, "Nameplate", tpl.Name)
	})

	t.Run("primary fails", func(t *testing.T) {
		c := NewFallbackCatalog(failingCatalog{err: errors.New("connection refused")})
		list, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 4)

		_, err = c.Get(ctx, "Missing")
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("no primary", func(t *testing.T) {
		tpl, err := NewFallbackCatalog(nil).Get(ctx, "TechnicalData")
		require.NoError(t, err)
		assert.Equal(t, "TechnicalData", tpl.Name)
	})
}
