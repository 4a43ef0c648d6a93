// Command posekit renders skeleton images from keypoint data.
//
// It builds the bone topology and colour scheme for a landmark schema,
// then either writes one frame to an image/plot/HTML file or serves an
// interactive 3D viewer for the whole sequence.
//
// Usage:
//
//	posekit -schema coco17 -keypoints pose.json -out skeleton.png
//	posekit -schema schema.json -keypoints clip.json -serve localhost:8080
//
// Flags:
//
//	-schema     builtin schema name (coco17, h36m17) or JSON file with a name array
//	-keypoints  JSON file: [][2]float64 (one frame) or frames thereof
//	-sections   comma-separated sections to draw (default "main,head")
//	-frame      frame to render for file output (default 0)
//	-out        output file; format follows extension (.png, .svg, .pdf, .html)
//	-width      raster width in pixels (default 512)
//	-height     raster height in pixels (default 512)
//	-serve      listen address; serve the interactive viewer instead of writing a file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/banshee-data/posekit"
	"github.com/banshee-data/posekit/render"
	"github.com/banshee-data/posekit/viewer"
)

// builtinSchemas maps well-known pose system layouts onto the canonical
// joint vocabulary.
var builtinSchemas = map[string][]string{
	"coco17": {
		"nose", "left eye", "right eye", "left ear", "right ear",
		"left shoulder", "right shoulder", "left elbow", "right elbow",
		"left wrist", "right wrist", "left hip", "right hip",
		"left knee", "right knee", "left ankle", "right ankle",
	},
	"h36m17": {
		"pelvis", "right hip", "right knee", "right ankle",
		"left hip", "left knee", "left ankle", "mid torso", "neck",
		"nose", "head", "left shoulder", "left elbow", "left wrist",
		"right shoulder", "right elbow", "right wrist",
	},
}

func main() {
	schemaFlag := flag.String("schema", "coco17", "Builtin schema name or JSON file")
	keypointsFlag := flag.String("keypoints", "", "Keypoints JSON file")
	sectionsFlag := flag.String("sections", "main,head", "Sections to draw")
	frameFlag := flag.Int("frame", 0, "Frame to render for file output")
	outFlag := flag.String("out", "", "Output file (.png, .svg, .pdf, .html)")
	widthFlag := flag.Int("width", 512, "Raster width in pixels")
	heightFlag := flag.Int("height", 512, "Raster height in pixels")
	serveFlag := flag.String("serve", "", "Listen address for the interactive viewer")
	flag.Parse()

	if *keypointsFlag == "" {
		log.Fatal("missing required flag: -keypoints")
	}
	if *outFlag == "" && *serveFlag == "" {
		log.Fatal("nothing to do: pass -out or -serve")
	}

	schema, err := loadSchema(*schemaFlag)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	frames, err := loadKeypoints(*keypointsFlag)
	if err != nil {
		log.Fatalf("Failed to load keypoints: %v", err)
	}
	log.Printf("Loaded %d frames of %d landmarks", len(frames), schema.Len())

	sections, err := posekit.ParseSections(*sectionsFlag)
	if err != nil {
		log.Fatalf("Invalid -sections: %v", err)
	}

	topo := posekit.NewTopology(schema)
	colours := posekit.NewColourMap(schema)

	if *serveFlag != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Printf("Serving skeleton viewer on http://%s", *serveFlag)
		srv := viewer.New(*serveFlag, topo, colours, frames)
		if err := srv.ListenAndServe(ctx); err != nil {
			log.Fatalf("Viewer server failed: %v", err)
		}
		return
	}

	if *frameFlag < 0 || *frameFlag >= len(frames) {
		log.Fatalf("Frame %d out of range (have %d frames)", *frameFlag, len(frames))
	}
	frame := frames[*frameFlag]

	style := render.DefaultStyle()
	style.Sections = sections

	if err := writeOutput(*outFlag, topo, colours, frame, style, *widthFlag, *heightFlag); err != nil {
		log.Fatalf("Failed to write %s: %v", *outFlag, err)
	}
	log.Printf("Wrote %s", *outFlag)
}

func writeOutput(path string, topo *posekit.Topology, colours *posekit.ColourMap, frame [][]float64, style render.Style, width, height int) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err := render.Raster(width, height, topo, colours, frame, style)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return png.Encode(f, img)
	case ".svg", ".pdf":
		return render.SavePlot(path, topo, colours, frame, style)
	case ".html":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return viewer.RenderHTML(f, topo, colours, frame, style.Sections)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func loadSchema(arg string) (*posekit.Schema, error) {
	if names, ok := builtinSchemas[arg]; ok {
		return posekit.NewSchema(names)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("schema file %s: %w", arg, err)
	}
	return posekit.NewSchema(names)
}

// loadKeypoints reads either a frame sequence or a single frame, which is
// wrapped into a one-frame sequence.
func loadKeypoints(path string) ([][][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var frames [][][]float64
	if err := json.Unmarshal(data, &frames); err == nil {
		return frames, nil
	}
	var frame [][]float64
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("keypoints file %s: expected [][]float64 or [][][]float64: %w", path, err)
	}
	return [][][]float64{frame}, nil
}
