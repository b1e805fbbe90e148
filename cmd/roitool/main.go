package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	geojson "github.com/paulmach/go.geojson"

	"github.com/kevinlc123/qupath/pkg/config"
	"github.com/kevinlc123/qupath/pkg/geometry"
	"github.com/kevinlc123/qupath/pkg/roi"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "GeoJSON FeatureCollection of ROI features")
	outputPath := flag.String("output", "output.geojson", "Output GeoJSON filename")
	configPath := flag.String("config", "roitool.yaml", "YAML configuration file (optional)")
	opName := flag.String("op", "", "Fold all area ROIs with a boolean op: union, difference or intersection")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level := slog.LevelWarn
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	conv := geometry.NewConverter(
		geometry.WithPixelSize(cfg.Converter.PixelWidth, cfg.Converter.PixelHeight),
		geometry.WithFlatness(cfg.Converter.Flatness),
		geometry.WithLogger(logger),
	)

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		log.Fatalf("Failed to parse input: %v", err)
	}

	rois := decodeROIs(fc, logger)
	if len(rois) == 0 {
		log.Fatalf("No usable ROI features in %s", *inputPath)
	}

	var results []roi.ROI
	if *opName == "" {
		results = normalizeAll(conv, rois, logger)
	} else {
		op, err := parseOp(*opName)
		if err != nil {
			log.Fatalf("%v", err)
		}
		combined, err := foldCombine(conv, rois, op)
		if err != nil {
			log.Fatalf("Combination failed: %v", err)
		}
		results = []roi.ROI{combined}
	}

	out := geojson.NewFeatureCollection()
	for _, r := range results {
		f, err := roi.ToFeature(r)
		if err != nil {
			logger.Warn("skipping unencodable result", "error", err)
			continue
		}
		out.AddFeature(f)
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	if err := os.WriteFile(*outputPath, encoded, 0644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Wrote %d feature(s) to %s\n", len(out.Features), *outputPath)
}

// decodeROIs converts features to ROIs, skipping malformed ones so a single
// bad annotation cannot abort the batch.
func decodeROIs(fc *geojson.FeatureCollection, logger *slog.Logger) []roi.ROI {
	var rois []roi.ROI
	for i, f := range fc.Features {
		r, err := roi.FromFeature(f)
		if err != nil {
			logger.Warn("skipping malformed feature", "index", i, "error", err)
			continue
		}
		rois = append(rois, r)
	}
	return rois
}

// normalizeAll passes each ROI through the geometry engine and back,
// repairing invalid topology. A ROI that fails structurally yields the
// explicitly-empty ROI while the rest of the batch proceeds.
func normalizeAll(conv *geometry.Converter, rois []roi.ROI, logger *slog.Logger) []roi.ROI {
	out := make([]roi.ROI, 0, len(rois))
	for i, r := range rois {
		g, err := conv.ROIToGeometry(r)
		if err != nil {
			logger.Warn("cannot convert ROI, emitting empty", "index", i, "error", err)
			out = append(out, roi.EmptyROI(r.Plane()))
			continue
		}
		if g.Degraded() {
			logger.Warn("ROI required approximate topology repair", "index", i)
		}
		out = append(out, conv.GeometryToROI(g, r.Plane()))
	}
	return out
}

// foldCombine reduces the ROI list left to right with the given op.
func foldCombine(conv *geometry.Converter, rois []roi.ROI, op geometry.CombineOp) (roi.ROI, error) {
	acc := rois[0]
	for _, r := range rois[1:] {
		next, err := conv.Combine(acc, r, op)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

func parseOp(name string) (geometry.CombineOp, error) {
	switch name {
	case "union":
		return geometry.Union, nil
	case "difference":
		return geometry.Difference, nil
	case "intersection":
		return geometry.Intersection, nil
	}
	return 0, fmt.Errorf("unknown op %q (want union, difference or intersection)", name)
}
