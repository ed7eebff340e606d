package common

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRewriteSpec(t *testing.T) {
	spec := []byte(`openapi: 3.0.3
info:
  title: AASX Editor
  version: "1.0"
servers:
  - url: http://old
paths: {}
`)
	out, err := rewriteSpec(spec, "http://localhost:5080/api", SwaggerConfig{ContactName: "BaSyx", ContactEmail: "basyx@example.com"})
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title   string            `yaml:"title"`
			Contact map[string]string `yaml:"contact"`
		} `yaml:"info"`
		Servers []struct {
			URL string `yaml:"url"`
		} `yaml:"servers"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Equal(t, "AASX Editor", doc.Info.Title)
	require.Equal(t, map[string]string{"name": "BaSyx", "email": "basyx@example.com"}, doc.Info.Contact)
	require.Len(t, doc.Servers, 1)
	require.Equal(t, "http://localhost:5080/api", doc.Servers[0].URL)
}

func TestNormalizeBasePath(t *testing.T) {
	require.Equal(t, "", NormalizeBasePath("/"))
	require.Equal(t, "/api", NormalizeBasePath("api/"))
	require.Equal(t, "/api/v1", NormalizeBasePath("/api/v1"))
}
