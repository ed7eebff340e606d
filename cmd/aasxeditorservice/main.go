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

// Package main implements the AASX editor service: an HTTP API for opening,
// editing, validating, repairing and exporting AAS packages.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/editorapi"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/template"
)

//go:embed openapi.yaml
var openAPISpec []byte

func runServer(ctx context.Context, configPath string) error {
	log.Default().Println("Loading AASX Editor Service...")
	log.Default().Println("Config Path:", configPath)

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Init(config.Logging.Level)
	defer logger.Sync()

	common.PrintConfiguration(config)

	r := chi.NewRouter()
	common.AddCors(r, config)
	r.Use(common.ConfigMiddleware(config))
	common.AddHealthEndpoint(r, config)
	if err := common.AddSwaggerUI(r, openAPISpec, "AASX Editor", config); err != nil {
		return err
	}

	store := editorapi.NewStore()
	svc := editorapi.NewEditorAPIService(config, store, template.NewFallbackCatalog(nil))
	ctrl := editorapi.NewEditorAPIController(svc, config.Server.ContextPath,
		editorapi.WithMaxUploadBytes(config.Server.MaxUploadBytes))
	r.Mount("/", editorapi.NewRouter(ctrl))

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		logger.LogInfo("AASX editor listening", zap.String("addr", addr), zap.String("contextPath", config.Server.ContextPath))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.LogInfo("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := ""
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if err := runServer(ctx, configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
