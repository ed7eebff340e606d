/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package common

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// SwaggerUIHTML is the HTML template for Swagger UI
const SwaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin: 0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SpecURL}}",
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

// Paths of the API documentation below the context path.
const (
	SwaggerUIPath   = "/swagger"
	OpenAPISpecPath = "/api-docs/openapi.yaml"
)

// AddSwaggerUI serves spec and a Swagger UI page for it. The spec's servers
// list and info.contact are rewritten from cfg before it is served.
func AddSwaggerUI(r *chi.Mux, spec []byte, title string, cfg *Config) error {
	contextPath := NormalizeBasePath(cfg.Server.ContextPath)
	host := cfg.Server.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	serverURL := fmt.Sprintf("http://%s:%d%s", host, cfg.Server.Port, contextPath)

	content, err := rewriteSpec(spec, serverURL, cfg.Swagger)
	if err != nil {
		return fmt.Errorf("prepare OpenAPI document: %w", err)
	}

	uiPath := contextPath + SwaggerUIPath
	specPath := contextPath + OpenAPISpecPath

	r.Get(specPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(content)
	})

	tmpl := template.Must(template.New("swagger").Parse(SwaggerUIHTML))
	r.Get(uiPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, struct {
			Title   string
			SpecURL string
		}{Title: title, SpecURL: specPath})
	})

	logger.LogInfo("Swagger UI available at " + uiPath)
	return nil
}

// rewriteSpec replaces the servers list and the info.contact block of an
// OpenAPI YAML document. Keys not touched keep their order and comments.
func rewriteSpec(spec []byte, serverURL string, contact SwaggerConfig) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("OpenAPI document is not a mapping")
	}
	root := doc.Content[0]

	servers := &yaml.Node{Kind: yaml.SequenceNode}
	servers.Content = append(servers.Content, mapping("url", serverURL, "description", "Auto-configured server"))
	setKey(root, "servers", servers)

	if contact.ContactName != "" || contact.ContactEmail != "" || contact.ContactURL != "" {
		info := lookupKey(root, "info")
		if info == nil {
			info = &yaml.Node{Kind: yaml.MappingNode}
			setKey(root, "info", info)
		}
		var pairs []string
		for _, kv := range [][2]string{{"name", contact.ContactName}, {"email", contact.ContactEmail}, {"url", contact.ContactURL}} {
			if kv[1] != "" {
				pairs = append(pairs, kv[0], kv[1])
			}
		}
		setKey(info, "contact", mapping(pairs...))
	}
	return yaml.Marshal(&doc)
}

func mapping(kv ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: kv[i]},
			&yaml.Node{Kind: yaml.ScalarNode, Value: kv[i+1]})
	}
	return n
}

func lookupKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}
