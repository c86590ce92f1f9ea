/*
Copyright 2026 the Petstore QA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
	servererrors "github.com/petstore-qa/petstore-api/pkg/server/errors"
	"github.com/petstore-qa/petstore-api/pkg/server/handler"
	"github.com/petstore-qa/petstore-api/pkg/server/handler/user"
	openapimiddleware "github.com/petstore-qa/petstore-api/pkg/server/middleware/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Options are server level options.
type Options struct {
	// ListenAddress tells the server what to listen on.
	ListenAddress string

	// ReadTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadTimeout time.Duration

	// ReadHeaderTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadHeaderTimeout time.Duration

	// WriteTimeout defines how long we take to respond before we give up.
	WriteTimeout time.Duration

	// SeedFile is an optional YAML list of users loaded on start.
	SeedFile string
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "read-header-timeout", time.Second, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.StringVar(&o.SeedFile, "seed-file", "", "YAML file of users to create on start.")
}

type Server struct {
	// Options are server specific options e.g. listener address etc.
	Options Options

	// ZapOptions configure logging.
	ZapOptions zap.Options

	// HandlerOptions sets options for the HTTP handler.
	HandlerOptions handler.Options
}

func (s *Server) AddFlags(goflags *flag.FlagSet, flags *pflag.FlagSet) {
	s.ZapOptions.BindFlags(goflags)

	s.Options.AddFlags(flags)
	s.HandlerOptions.AddFlags(flags)
}

func (s *Server) SetupLogging() {
	log.SetLogger(zap.New(zap.UseFlagOptions(&s.ZapOptions)))
}

// NewStore creates the user store, loading any seed data.
func (s *Server) NewStore() (*user.Store, error) {
	store := user.NewStore()

	if s.Options.SeedFile == "" {
		return store, nil
	}

	data, err := os.ReadFile(s.Options.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	if err := store.LoadSeed(data); err != nil {
		return nil, err
	}

	return store, nil
}

// logging attaches a request scoped logger to the context and logs the outcome.
func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger := log.Log.WithName("http").WithValues("method", r.Method, "path", r.URL.Path)

		writer := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(writer, r.WithContext(log.IntoContext(r.Context(), logger)))

		logger.V(1).Info("request complete", "status", writer.Status(), "duration", time.Since(start))
	})
}

// NewRouter returns the complete twin API, useful for embedding in tests.
func NewRouter(store *user.Store, options *handler.Options, opts ...handler.Option) (http.Handler, error) {
	schema, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := openapimiddleware.NewValidator(schema)
	if err != nil {
		return nil, err
	}

	handlerInterface, err := handler.New(store, options, opts...)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(logging)
	router.Use(middleware.StripSlashes)
	router.Use(validator.Middleware)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		servererrors.HandleError(w, r, servererrors.HTTPNotFound("resource not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		servererrors.HandleError(w, r, servererrors.HTTPMethodNotAllowed())
	})

	handlerInterface.Routes(router)

	return router, nil
}

func (s *Server) GetServer(ctx context.Context) (*http.Server, error) {
	store, err := s.NewStore()
	if err != nil {
		return nil, err
	}

	router, err := NewRouter(store, &s.HandlerOptions)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           router,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	return server, nil
}
