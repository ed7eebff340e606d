package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

func environmentWith(elements ...*model.Element) *model.Environment {
	env := model.NewEnvironment("Shell", "https://example.com/aas/1")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "", elements...)}
	return env
}

func TestCheckLocalFindsEachKind(t *testing.T) {
	untyped := model.NewProperty("Untyped", "", "x")
	derived := model.NewProperty("Derived", "", "12")
	derived.DataType = "INTEGER_COUNT"
	badInt := model.NewProperty("Count", valuetype.XsdInteger, "12.5")
	blank := model.NewProperty("Serial", valuetype.XsdString, "  ")
	optional := model.NewProperty("Note", valuetype.XsdString, "")
	optional.Cardinality = model.CardinalityZeroToOne

	env := environmentWith(model.NewCollection("Address", untyped, derived, badInt), blank, optional)
	res := CheckLocal(env)

	kinds := map[string]Kind{}
	for _, i := range res.Issues {
		assert.Equal(t, BucketRequired, i.Bucket)
		kinds[i.Path.String()] = i.Kind
	}
	assert.Equal(t, map[string]Kind{
		"Nameplate/Address/Untyped": KindMissingType,
		"Nameplate/Address/Count":   KindTypeMismatch,
		"Nameplate/Serial":          KindRequiredEmpty,
	}, kinds)

	assert.Len(t, res.Flagged, 3)
	assert.True(t, res.IsFlagged(model.NewPath("Nameplate", "Address", "Count")))
	assert.False(t, res.IsFlagged(model.NewPath("Nameplate", "Address", "Derived")))
	assert.Equal(t, []model.Path{
		{Submodel: "Nameplate"},
		model.NewPath("Nameplate", "Address"),
	}, res.Expand)
	assert.Equal(t, "Nameplate > Address > Untyped", res.Issues[0].Where)
}

func TestCheckLocalCollectionCardinality(t *testing.T) {
	tests := []struct {
		name        string
		cardinality model.Cardinality
		flagged     bool
	}{
		{"optional empty collection is accepted", model.CardinalityZeroToOne, false},
		{"optional many empty collection is accepted", model.CardinalityZeroToMany, false},
		{"required empty collection is flagged", model.CardinalityOne, true},
		{"required many empty collection is flagged", model.CardinalityOneToMany, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := model.NewCollection("Markings")
			coll.Cardinality = tt.cardinality
			res := CheckLocal(environmentWith(coll))
			if !tt.flagged {
				assert.True(t, res.OK())
				return
			}
			require.Len(t, res.Issues, 1)
			assert.Equal(t, KindRequiredEmpty, res.Issues[0].Kind)
			assert.Equal(t, "Markings", res.Issues[0].Path.Last())
		})
	}
}

func TestCheckLocalValueTypeOracle(t *testing.T) {
	tests := []struct {
		value string
		typ   valuetype.DataTypeDefXsd
		valid bool
	}{
		{"true", valuetype.XsdBoolean, true},
		{"2", valuetype.XsdBoolean, false},
		{"-12", valuetype.XsdInteger, true},
		{"12.5", valuetype.XsdInteger, false},
		{"3.14", valuetype.XsdDecimal, true},
		{"abc", valuetype.XsdDecimal, false},
	}
	for _, tt := range tests {
		t.Run(tt.value+"/"+string(tt.typ), func(t *testing.T) {
			res := CheckLocal(environmentWith(model.NewProperty("P", tt.typ, tt.value)))
			assert.Equal(t, tt.valid, res.OK())
		})
	}
}

func TestCheckLocalNilEnvironment(t *testing.T) {
	res := CheckLocal(nil)
	assert.True(t, res.OK())
	assert.NotNil(t, res.Flagged)
}
