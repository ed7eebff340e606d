package repair

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/decoder"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

func environment(shellExtra, elements string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<environment xmlns="https://admin-shell.io/aas/3/0">
  <assetAdministrationShells>
    <assetAdministrationShell>
      <idShort>Pump</idShort>
      <id>https://example.com/aas/pump</id>
      <assetInformation>
        <assetKind>Instance</assetKind>
        <globalAssetId>https://example.com/assets/pump</globalAssetId>` + shellExtra + `
      </assetInformation>
    </assetAdministrationShell>
  </assetAdministrationShells>
  <submodels>
    <submodel>
      <idShort>Nameplate</idShort>
      <id>https://example.com/sm/nameplate</id>
      <submodelElements>` + elements + `
      </submodelElements>
    </submodel>
  </submodels>
</environment>`
}

func engine() *Engine {
	return New(common.DefaultConfig().Repair)
}

func query(t *testing.T, text, expr string) []*xmlquery.Node {
	t.Helper()
	doc, err := markup.Parse(text)
	require.NoError(t, err)
	nodes, err := xmlquery.QueryAll(doc, expr)
	require.NoError(t, err)
	return nodes
}

func localNames(n *xmlquery.Node) []string {
	var out []string
	for _, c := range markup.ChildElements(n) {
		out = append(out, c.Data)
	}
	return out
}

func TestPasses(t *testing.T) {
	tests := []struct {
		name       string
		shellExtra string
		elements   string
		check      func(t *testing.T, out string)
	}{
		{
			name:     "empty description gets an entry named after the element",
			elements: `<property><idShort>Speed</idShort><description/><valueType>xs:int</valueType><value>3</value></property>`,
			check: func(t *testing.T, out string) {
				texts := query(t, out, `//*[local-name()='description']/*[local-name()='langStringTextType']/*[local-name()='text']`)
				require.Len(t, texts, 1)
				assert.Equal(t, "Speed", texts[0].InnerText())
			},
		},
		{
			name:     "empty data specification wrappers and blank semantic ids are removed",
			elements: `<property><idShort>Speed</idShort><semanticId/><embeddedDataSpecifications><embeddedDataSpecification/></embeddedDataSpecifications><valueType>xs:int</valueType><value>3</value></property>`,
			check: func(t *testing.T, out string) {
				assert.Empty(t, query(t, out, `//*[local-name()='embeddedDataSpecifications']`))
				assert.Empty(t, query(t, out, `//*[local-name()='property']/*[local-name()='semanticId']`))
			},
		},
		{
			name: "value list without pairs is removed and definition gets text",
			elements: `<property><idShort>Mode</idShort>
  <embeddedDataSpecifications><embeddedDataSpecification>
    <dataSpecification><type>ExternalReference</type><keys><key><type>GlobalReference</type><value>` + markup.DataSpecificationIec61360 + `</value></key></keys></dataSpecification>
    <dataSpecificationContent><dataSpecificationIec61360>
      <preferredName/>
      <definition/>
      <valueList><valueReferencePairs/></valueList>
    </dataSpecificationIec61360></dataSpecificationContent>
  </embeddedDataSpecification></embeddedDataSpecifications>
  <valueType>xs:string</valueType><value>auto</value></property>`,
			check: func(t *testing.T, out string) {
				assert.Empty(t, query(t, out, `//*[local-name()='valueList']`))
				for _, block := range []string{"preferredName", "definition"} {
					texts := query(t, out, `//*[local-name()='`+block+`']/*/*[local-name()='text']`)
					require.Len(t, texts, 1, block)
					assert.Equal(t, "Mode", texts[0].InnerText())
				}
			},
		},
		{
			name:     "reference without keys gets a global key",
			elements: `<property><idShort>Speed</idShort><semanticId><type>ExternalReference</type><keys/></semanticId><valueType>xs:int</valueType><value>3</value></property>`,
			check: func(t *testing.T, out string) {
				keys := query(t, out, `//*[local-name()='semanticId']/*[local-name()='keys']/*[local-name()='key']`)
				require.Len(t, keys, 1)
				assert.Equal(t, "GlobalReference", markup.ChildText(keys[0], "type"))
				assert.Equal(t, "https://example.com/placeholder", markup.ChildText(keys[0], "value"))
			},
		},
		{
			name:       "empty specific asset ids get an entry from the shell",
			shellExtra: `<specificAssetIds/><assetType> </assetType>`,
			check: func(t *testing.T, out string) {
				ids := query(t, out, `//*[local-name()='specificAssetId']`)
				require.Len(t, ids, 1)
				assert.Equal(t, "Pump", markup.ChildText(ids[0], "name"))
				assert.Equal(t, "https://example.com/assets/pump", markup.ChildText(ids[0], "value"))
				types := query(t, out, `//*[local-name()='assetType']`)
				require.Len(t, types, 1)
				assert.Equal(t, "N/A", types[0].InnerText())
			},
		},
		{
			name:       "incomplete thumbnail is dropped",
			shellExtra: `<defaultThumbnail><path>/thumb.png</path><contentType/></defaultThumbnail>`,
			check: func(t *testing.T, out string) {
				assert.Empty(t, query(t, out, `//*[local-name()='defaultThumbnail']`))
			},
		},
		{
			name:     "idShorts are sanitized",
			elements: `<property><idShort>My Sensor!!</idShort><valueType>xs:string</valueType><value>x</value></property>`,
			check: func(t *testing.T, out string) {
				ids := query(t, out, `//*[local-name()='property']/*[local-name()='idShort']`)
				require.Len(t, ids, 1)
				assert.Equal(t, "MySensor", ids[0].InnerText())
			},
		},
		{
			name: "data specification skeleton is completed",
			elements: `<property><idShort>Speed</idShort>
  <embeddedDataSpecifications><embeddedDataSpecification>
    <dataSpecificationContent><dataSpecificationIec61360><unit>rpm</unit></dataSpecificationIec61360></dataSpecificationContent>
  </embeddedDataSpecification></embeddedDataSpecifications>
  <valueType>xs:int</valueType><value>3</value></property>`,
			check: func(t *testing.T, out string) {
				specs := query(t, out, `//*[local-name()='embeddedDataSpecification']`)
				require.Len(t, specs, 1)
				assert.Equal(t, []string{"dataSpecification", "dataSpecificationContent"}, localNames(specs[0]))
				iec := query(t, out, `//*[local-name()='dataSpecificationIec61360']`)
				require.Len(t, iec, 1)
				assert.Equal(t, []string{"preferredName", "unit"}, localNames(iec[0]))
			},
		},
		{
			name: "empty containers are removed",
			elements: `<submodelElementCollection><idShort>Address</idShort><qualifiers><qualifier><type>SMT/Cardinality</type><valueType>xs:string</valueType><value>ZeroToOne</value></qualifier></qualifiers><value/></submodelElementCollection>
<operation><idShort>Run</idShort><inputVariables/></operation>
<multiLanguageProperty><idShort>Note</idShort><qualifiers><qualifier><type>SMT/Cardinality</type><valueType>xs:string</valueType><value>ZeroToMany</value></qualifier></qualifiers><value/></multiLanguageProperty>`,
			check: func(t *testing.T, out string) {
				assert.Empty(t, query(t, out, `//*[local-name()='submodelElementCollection']/*[local-name()='value']`))
				assert.Empty(t, query(t, out, `//*[local-name()='inputVariables']`))
				assert.Empty(t, query(t, out, `//*[local-name()='multiLanguageProperty']/*[local-name()='value']`))
				assert.Len(t, query(t, out, `//*[local-name()='submodelElements']`), 1)
			},
		},
		{
			name:     "language tags are normalized",
			elements: `<multiLanguageProperty><idShort>Title</idShort><value><langStringTextType><language>EN</language><text>Pump</text></langStringTextType><langStringTextType><language>not a tag!</language><text></text></langStringTextType></value></multiLanguageProperty>`,
			check: func(t *testing.T, out string) {
				langs := query(t, out, `//*[local-name()='language']`)
				require.Len(t, langs, 2)
				assert.Equal(t, "en", langs[0].InnerText())
				assert.Equal(t, "en", langs[1].InnerText())
				texts := query(t, out, `//*[local-name()='langStringTextType']/*[local-name()='text']`)
				assert.Equal(t, "Title", texts[1].InnerText())
			},
		},
		{
			name:     "file content type is inferred from the extension",
			elements: `<file><idShort>Manual</idShort><value>/aasx/files/manual.PDF</value><contentType>pdf</contentType></file><file><idShort>Drawing</idShort><value>drawing.step</value></file>`,
			check: func(t *testing.T, out string) {
				types := query(t, out, `//*[local-name()='file']/*[local-name()='contentType']`)
				require.Len(t, types, 2)
				assert.Equal(t, "application/pdf", types[0].InnerText())
				assert.Equal(t, "application/step", types[1].InnerText())
				files := query(t, out, `//*[local-name()='file']`)
				assert.Equal(t, []string{"idShort", "value", "contentType"}, localNames(files[1]))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine().Repair(environment(tt.shellExtra, tt.elements))
			require.NoError(t, err)
			assert.True(t, res.Changed())
			tt.check(t, res.Text)
		})
	}
}

func TestTypeDeclarationPrecedesValue(t *testing.T) {
	in := environment("", `<property><idShort>Count</idShort><value>4</value><valueType>integer</valueType></property>
<property><idShort>Flag</idShort><embeddedDataSpecifications><embeddedDataSpecification>
  <dataSpecification><type>ExternalReference</type><keys><key><type>GlobalReference</type><value>`+markup.DataSpecificationIec61360+`</value></key></keys></dataSpecification>
  <dataSpecificationContent><dataSpecificationIec61360><preferredName><langStringPreferredNameTypeIec61360><language>en</language><text>Flag</text></langStringPreferredNameTypeIec61360></preferredName><dataType>BOOLEAN</dataType></dataSpecificationIec61360></dataSpecificationContent>
</embeddedDataSpecification></embeddedDataSpecifications><value>true</value></property>`)

	first, err := engine().Repair(in)
	require.NoError(t, err)
	props := query(t, first.Text, `//*[local-name()='property']`)
	require.Len(t, props, 2)
	assert.Equal(t, []string{"idShort", "valueType", "value"}, localNames(props[0]))
	assert.Equal(t, string(valuetype.XsdInteger), markup.ChildText(props[0], "valueType"))
	assert.Equal(t, []string{"idShort", "embeddedDataSpecifications", "valueType", "value"}, localNames(props[1]))
	assert.Equal(t, string(valuetype.XsdBoolean), markup.ChildText(props[1], "valueType"))

	second, err := engine().Repair(first.Text)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.False(t, second.Changed())
}

func TestRepairIsIdempotent(t *testing.T) {
	in := environment(`<specificAssetIds/><defaultThumbnail><path/></defaultThumbnail>`,
		`<property><idShort>1st value</idShort><description/><semanticId><keys/></semanticId><value/></property>
<multiLanguageProperty><idShort>Title</idShort><value/></multiLanguageProperty>
<referenceElement><idShort>Link</idShort><value/></referenceElement>
<file><idShort>Manual</idShort><value/></file>
<submodelElementList><idShort>Empty</idShort><value/></submodelElementList>`)

	first, err := engine().Repair(in)
	require.NoError(t, err)
	second, err := engine().Repair(first.Text)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	for _, p := range second.Passes {
		assert.Zero(t, p.Changes, p.Name)
	}
	assert.Equal(t, PassNames(), passNames(first.Passes))
}

func passNames(reports []PassReport) []string {
	var out []string
	for _, r := range reports {
		out = append(out, r.Name)
	}
	return out
}

func TestRepairFillsEmptyMarkers(t *testing.T) {
	env := model.NewEnvironment("Pump", "https://example.com/aas/pump")
	optional := model.NewMultiLanguageProperty("Remark", nil)
	optional.Cardinality = model.CardinalityZeroToOne
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "",
		model.NewProperty("Serial", "", ""),
		model.NewProperty("Enabled", valuetype.XsdBoolean, ""),
		model.NewMultiLanguageProperty("Title", nil),
		model.NewFile("Manual", "", ""),
		model.NewReferenceElement("Link", model.Reference{}),
		optional,
	)}
	doc, err := markup.NewEncoder(common.DefaultConfig().Encoder).Encode(env)
	require.NoError(t, err)

	res, err := engine().Repair(doc.Text())
	require.NoError(t, err)

	repaired, err := decoder.Decode(res.Text)
	require.NoError(t, err)
	sm := repaired.Submodels[0]
	for _, el := range sm.Elements {
		if el.IsRequired() {
			assert.True(t, el.HasValue(), "%s stays empty", el.IdShort)
		}
	}
	serial, _ := sm.Elements[0].AsProperty()
	assert.Equal(t, "N/A", serial.Value)
	assert.Equal(t, valuetype.XsdString, serial.ValueType)
	enabled, _ := sm.Elements[1].AsProperty()
	assert.Equal(t, "false", enabled.Value)
	file, _ := sm.Elements[3].AsFile()
	assert.Equal(t, "text/plain", file.ContentType)
	assert.Empty(t, query(t, res.Text, `//*[local-name()='multiLanguageProperty'][*[local-name()='idShort']='Remark']/*[local-name()='value']`))

	assert.True(t, validator.CheckLocal(repaired).OK(), "%v", validator.CheckLocal(repaired).Issues)
}

func TestRequiredBlankPropertyPassesLocalValidationAfterRepair(t *testing.T) {
	env := model.NewEnvironment("Pump", "")
	env.Submodels = []*model.Submodel{model.NewSubmodel("Nameplate", "", model.NewProperty("SerialNumber", "", "  "))}
	require.False(t, validator.CheckLocal(env).OK())

	doc, err := markup.NewEncoder(common.DefaultConfig().Encoder).Encode(env)
	require.NoError(t, err)
	res, err := engine().Repair(doc.Text())
	require.NoError(t, err)

	props := query(t, res.Text, `//*[local-name()='property']`)
	require.Len(t, props, 1)
	names := localNames(props[0])
	vt, v := indexOf(names, "valueType"), indexOf(names, "value")
	require.True(t, vt >= 0 && v >= 0)
	assert.Less(t, vt, v)
	assert.NotEmpty(t, strings.TrimSpace(markup.ChildText(props[0], "valueType")))
	assert.NotEmpty(t, strings.TrimSpace(markup.ChildText(props[0], "value")))

	repaired, err := decoder.Decode(res.Text)
	require.NoError(t, err)
	assert.True(t, validator.CheckLocal(repaired).OK())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func TestRepairRejectsMalformedMarkup(t *testing.T) {
	_, err := engine().Repair(`<environment><submodels></environment>`)
	require.Error(t, err)
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct{ in, want string }{
		{"en", "en"},
		{"EN", "en"},
		{"de-de", "de-DE"},
		{"", "en"},
		{"not a tag!", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLanguage(tt.in, "en"), tt.in)
	}
}

func TestInferContentType(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/aasx/files/manual.pdf", "application/pdf"},
		{"https://example.com/doc.PNG?version=2", "image/png"},
		{"drawing.stp", "application/step"},
		{"notes.txt", "text/plain"},
		{"README", "application/octet-stream"},
		{"archive.unknownext", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferContentType(tt.in), tt.in)
	}
}
