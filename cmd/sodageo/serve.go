package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/CityofSantaMonica/SODA.NET-sub000/column"
	"github.com/CityofSantaMonica/SODA.NET-sub000/flatgeobuf"
	"github.com/CityofSantaMonica/SODA.NET-sub000/internal/dataset"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type serveCommand struct {
	Input         string `short:"i" long:"input"          required:"true" description:"Dataset file (.json, .yaml, .yml or .geojson)"`
	Addr          string `short:"a" long:"addr"           default:":8080" description:"Listen address"`
	GeometryField string `short:"g" long:"geometry-field" description:"Row field holding the geometry (default from config)"`

	app *app
}

// layer is a dataset prepared for serving.
type layer struct {
	features []flatgeobuf.Feature
	fgb      []byte
}

func newLayer(features []flatgeobuf.Feature, opts *flatgeobuf.Options) (*layer, error) {
	var buf bytes.Buffer
	if err := flatgeobuf.WriteFeatures(&buf, features, opts); err != nil {
		return nil, err
	}
	return &layer{features: features, fgb: buf.Bytes()}, nil
}

// routes serves the whole layer as FlatGeobuf and single rows as column
// upload cells.
func (l *layer) routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/data.fgb", l.handleFlatGeobuf).Methods(http.MethodGet)
	router.HandleFunc("/features/{index:[0-9]+}", l.handleFeature).Methods(http.MethodGet)
	router.HandleFunc("/features/{index:[0-9]+}/wkt", l.handleFeatureWKT).Methods(http.MethodGet)
	return router
}

func (l *layer) handleFlatGeobuf(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(l.fgb)
}

func (l *layer) feature(w http.ResponseWriter, r *http.Request) (flatgeobuf.Feature, bool) {
	i, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || i >= len(l.features) || l.features[i].Geometry == nil {
		http.NotFound(w, r)
		return flatgeobuf.Feature{}, false
	}
	return l.features[i], true
}

func (l *layer) handleFeature(w http.ResponseWriter, r *http.Request) {
	f, ok := l.feature(w, r)
	if !ok {
		return
	}

	col, err := column.For(f.Geometry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(struct {
		Kind       column.Kind            `json:"kind"`
		Geometry   column.Column          `json:"geometry"`
		Properties map[string]interface{} `json:"properties,omitempty"`
	}{col.Kind(), col, f.Properties})
	if err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to encode feature")
	}
}

func (l *layer) handleFeatureWKT(w http.ResponseWriter, r *http.Request) {
	f, ok := l.feature(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(f.Geometry.WKT() + "\n"))
}

func (c *serveCommand) Execute([]string) error {
	field := c.GeometryField
	if field == "" {
		field = c.app.cfg.Export.GeometryField
	}

	ds, err := dataset.Load(c.Input)
	if err != nil {
		return err
	}
	features, err := ds.Features(field)
	if err != nil {
		return err
	}

	export := exportCommand{app: c.app}
	l, err := newLayer(features, export.options(ds))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         c.Addr,
		Handler:      l.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", c.Addr).Int("features", len(features)).Int("bytes", len(l.fgb)).Msg("Serving layer")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
