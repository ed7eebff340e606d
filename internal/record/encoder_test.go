package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

func encodeRecord(t *testing.T, env *model.Environment) (*Document, map[string]any) {
	t.Helper()
	doc, err := NewEncoder(common.DefaultConfig().Encoder).Encode(env)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc.Text()), &out))
	return doc, out
}

func firstSubmodelElements(t *testing.T, out map[string]any) []any {
	t.Helper()
	submodels := out["submodels"].([]any)
	require.NotEmpty(t, submodels)
	return submodels[0].(map[string]any)["submodelElements"].([]any)
}

func TestEncodeSanitizesIdShorts(t *testing.T) {
	env := model.NewEnvironment("My Shell", "urn:shell")
	env.Submodels = []*model.Submodel{
		model.NewSubmodel("1st Section", "", model.NewProperty("My Sensor!!", valuetype.XsdString, "x")),
	}
	_, out := encodeRecord(t, env)

	shell := out["assetAdministrationShells"].([]any)[0].(map[string]any)
	assert.Equal(t, "MyShell", shell["idShort"])
	sm := out["submodels"].([]any)[0].(map[string]any)
	assert.Equal(t, "id1stSection", sm["idShort"])
	el := firstSubmodelElements(t, out)[0].(map[string]any)
	assert.Equal(t, "MySensor", el["idShort"])
}

func TestEncodeVariants(t *testing.T) {
	env := model.NewEnvironment("Pump", "urn:pump")
	blank := model.NewProperty("Blank", "", "")
	title := model.NewMultiLanguageProperty("Title", model.LangStringSet{"en": "Pump", "de": "Pumpe"})
	file := model.NewFile("Manual", "manual.pdf", "application/pdf")
	list := model.NewList("Ports", model.NewProperty("P1", valuetype.XsdInt, "1"))
	ref := model.NewReferenceElement("Link", model.NewExternalReference("https://example.com"))
	env.Submodels = []*model.Submodel{model.NewSubmodel("S", "urn:template", blank, title, file, list, ref)}

	_, out := encodeRecord(t, env)
	els := firstSubmodelElements(t, out)
	require.Len(t, els, 5)

	p := els[0].(map[string]any)
	assert.Equal(t, "Property", p["modelType"])
	assert.NotContains(t, p, "value", "empty scalars are omitted")
	assert.NotContains(t, p, "valueType", "unresolvable type is omitted")

	m := els[1].(map[string]any)
	langs := m["value"].([]any)
	require.Len(t, langs, 2)
	assert.Equal(t, "de", langs[0].(map[string]any)["language"])

	f := els[2].(map[string]any)
	assert.Equal(t, "manual.pdf", f["value"])
	assert.Equal(t, "application/pdf", f["contentType"])

	l := els[3].(map[string]any)
	assert.Equal(t, true, l["orderRelevant"])
	assert.Equal(t, "Property", l["typeValueListElement"])
	assert.Equal(t, "xs:int", l["valueTypeListElement"])
	assert.Len(t, l["value"].([]any), 1)

	r := els[4].(map[string]any)
	assert.NotContains(t, r, "semanticId")
	assert.Equal(t, "ExternalReference", r["value"].(map[string]any)["type"])

	q := p["qualifiers"].([]any)[0].(map[string]any)
	assert.Equal(t, "SMT/Cardinality", q["type"])
	assert.Equal(t, "One", q["value"])
}

func TestEncodeConceptDescriptionsOmittedWhenNone(t *testing.T) {
	env := model.NewEnvironment("Pump", "urn:pump")
	env.Submodels = []*model.Submodel{model.NewSubmodel("S", "", model.NewProperty("p", valuetype.XsdString, "v"))}
	_, out := encodeRecord(t, env)
	assert.NotContains(t, out, "conceptDescriptions")

	prop := model.NewProperty("Weight", valuetype.XsdDouble, "1.5")
	prop.SemanticID = "urn:weight"
	prop.Unit = "kg"
	env.Submodels = []*model.Submodel{model.NewSubmodel("S", "", prop)}
	_, out = encodeRecord(t, env)
	cds := out["conceptDescriptions"].([]any)
	require.Len(t, cds, 1)
	cd := cds[0].(map[string]any)
	assert.Equal(t, "urn:weight", cd["id"])
	content := cd["embeddedDataSpecifications"].([]any)[0].(map[string]any)["dataSpecificationContent"].(map[string]any)
	assert.Equal(t, "kg", content["unit"])
	assert.Equal(t, "Weight", content["preferredName"].([]any)[0].(map[string]any)["text"])
}

func TestResolveField(t *testing.T) {
	env := model.NewEnvironment("Pump", "urn:pump")
	env.Submodels = []*model.Submodel{
		model.NewSubmodel("Nameplate", "",
			model.NewProperty("Serial", valuetype.XsdString, "1"),
			model.NewCollection("Address Block", model.NewProperty("Street", valuetype.XsdString, "")),
		),
	}
	doc, _ := encodeRecord(t, env)

	tests := []struct {
		field    string
		expected string
	}{
		{field: "(root).submodels.0.submodelElements.1.value.0.value", expected: "Nameplate/Address Block/Street"},
		{field: "/submodels/0/submodelElements/0", expected: "Nameplate/Serial"},
		{field: "#/submodels/0/id", expected: "Nameplate"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p, ok := doc.ResolveField(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.expected, p.String())
		})
	}

	_, ok := doc.ResolveField("(root).assetAdministrationShells.0")
	assert.False(t, ok)
}
