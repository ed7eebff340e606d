package aasx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envMarkup = `<?xml version="1.0" encoding="utf-8"?>
<environment xmlns="https://admin-shell.io/aas/3/0"/>
`

func zipOf(t *testing.T, entries ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWriteThenRead(t *testing.T) {
	data, err := Write(&Package{
		Markup:    envMarkup,
		Record:    `{"submodels":[]}`,
		Thumbnail: "aasx/thumbnail.png",
		Attachments: map[string][]byte{
			"aasx/files/manual.pdf": []byte("%PDF"),
			"aasx/thumbnail.png":    {0x89, 'P', 'N', 'G'},
		},
	})
	require.NoError(t, err)

	pkg, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, SpecPart, pkg.Entry)
	assert.Equal(t, envMarkup, pkg.Markup)
	assert.Equal(t, `{"submodels":[]}`, pkg.Record)
	assert.Equal(t, "aasx/thumbnail.png", pkg.Thumbnail)
	assert.Equal(t, []byte("%PDF"), pkg.Attachments["aasx/files/manual.pdf"])
	assert.NotContains(t, pkg.Attachments, RootRelsPart)
	assert.NotContains(t, pkg.Attachments, ContentTypesPart)
}

func TestReadFollowsOriginRelationship(t *testing.T) {
	data := zipOf(t,
		[2]string{"other.xml", "<notes/>"},
		[2]string{"_rels/.rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Type="` + RelTypeOrigin + `" Target="/aasx/aasx-origin" Id="r1"/></Relationships>`},
		[2]string{"aasx/aasx-origin", ""},
		[2]string{"aasx/_rels/aasx-origin.rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Type="` + RelTypeSpec + `" Target="data/model.xml" Id="r2"/></Relationships>`},
		[2]string{"aasx/data/model.xml", envMarkup},
	)
	pkg, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, "aasx/data/model.xml", pkg.Entry)
}

func TestReadSelectsByName(t *testing.T) {
	data := zipOf(t,
		[2]string{"[Content_Types].xml", "<Types/>"},
		[2]string{"notes.xml", "<notes/>"},
		[2]string{"aasx/Pump.aas.xml", envMarkup},
	)
	pkg, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, "aasx/Pump.aas.xml", pkg.Entry)
}

func TestReadFallsBackToFirstMarkup(t *testing.T) {
	data := zipOf(t,
		[2]string{"[Content_Types].xml", "<Types/>"},
		[2]string{"_rels/.rels", "<Relationships/>"},
		[2]string{"content/model.xml", envMarkup},
	)
	pkg, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, "content/model.xml", pkg.Entry)
}

func TestReadFailures(t *testing.T) {
	_, err := Read([]byte("not a zip"))
	require.Error(t, err)

	_, err = Read(zipOf(t, [2]string{"readme.txt", "hello"}))
	require.Error(t, err)
}

func TestReadLimitsDecompressedSize(t *testing.T) {
	zeros := string(make([]byte, 1<<20))
	bomb := zipOf(t,
		[2]string{"aasx/aas/aas.aas.xml", envMarkup},
		[2]string{"aasx/files/zeros.bin", zeros},
	)
	require.Less(t, len(bomb), 64<<10, "deflate shrinks the zeros well below the limit")

	_, err := ReadLimited(bomb, 64<<10)
	require.ErrorIs(t, err, ErrTooLarge)

	half := string(make([]byte, 40<<10))
	split := zipOf(t,
		[2]string{"aasx/aas/aas.aas.xml", envMarkup},
		[2]string{"aasx/files/a.bin", half},
		[2]string{"aasx/files/b.bin", half},
	)
	_, err = ReadLimited(split, 64<<10)
	require.ErrorIs(t, err, ErrTooLarge, "the limit applies to the sum of all parts")

	pkg, err := ReadLimited(split, 1<<20)
	require.NoError(t, err)
	assert.Len(t, pkg.Attachments["aasx/files/b.bin"], 40<<10)
}

func TestResolveTarget(t *testing.T) {
	assert.Equal(t, "aasx/aasx-origin", resolveTarget("/", "/aasx/aasx-origin"))
	assert.Equal(t, "aasx/data/x.xml", resolveTarget("aasx/aasx-origin", "data/x.xml"))
	assert.Equal(t, "aasx/_rels/aasx-origin.rels", relsPartFor("aasx/aasx-origin"))
}
