package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	scalargo "github.com/bdpiprava/scalar-go"

	"github.com/tlemaire/product-aggregator/api"
	"github.com/tlemaire/product-aggregator/config"
	"github.com/tlemaire/product-aggregator/snapshot"
	"github.com/tlemaire/product-aggregator/store"
)

func main() {
	config.LoadConfig()

	// Prefer MongoDB; when it is unreachable at startup, serve the last
	// aggregation snapshots instead so reads stay available. The log makes
	// clear this is degraded data, not a fresh collection.
	var productStore api.Store
	if st, err := store.Connect(context.Background(), config.MongoURI, config.MongoDB); err != nil {
		log.Printf("mongodb unavailable (%v), serving snapshots from %s", err, config.SnapshotDir)
		productStore = snapshot.NewStore(config.SnapshotDir)
	} else {
		productStore = st
	}

	h := api.NewHandler(productStore)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/products/search", corsMiddleware(h.Search))
	http.HandleFunc("/products/", corsMiddleware(h.Product))
	http.HandleFunc("/brands", corsMiddleware(h.Brands))
	http.HandleFunc("/", docsHandler)

	log.Printf("Server starting on port %s...", config.Port)
	if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// docsHandler serves Scalar API docs rendered from openapi.yaml on the root
// path.
func docsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		api.WriteNotFound(w, "unknown route")
		return
	}

	html, err := scalargo.NewV2(
		scalargo.WithSpecDir("./"),
		scalargo.WithMetaDataOpts(
			scalargo.WithTitle("Product Aggregator API"),
		),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}
