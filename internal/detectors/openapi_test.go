package detectors

import (
	"context"
	"testing"

	"github.com/harrison/techdocs/internal/ops"
	"github.com/harrison/techdocs/internal/vfs"
)

type stubBundler struct{}

func (stubBundler) Bundle(ctx context.Context, specPath string, specBytes []byte) (string, error) {
	return string(specBytes), nil
}

func TestOpenAPIDetectorDetectsRootJSONSpec(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/repo/api.json": `{"openapi":"3.0.0","paths":{}}`,
	})
	d := NewOpenAPIDetector(stubBundler{})
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/api.json", DestinationAbs: "/docs/api.json"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if _, ok := result[0].(*ops.OpenAPI); !ok {
		t.Fatalf("expected *ops.OpenAPI, got %T", result[0])
	}
}

func TestOpenAPIDetectorLeavesComponentFragmentAlone(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/repo/components.json": `{"openapi":"3.0.0","components":{}}`,
	})
	d := NewOpenAPIDetector(stubBundler{})
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/components.json", DestinationAbs: "/docs/components.json"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if _, ok := result[0].(*ops.Copy); !ok {
		t.Fatalf("expected unchanged *ops.Copy, got %T", result[0])
	}
}

func TestOpenAPIDetectorSwapsYAMLDestinationToJSON(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/repo/api.yaml": "openapi: 3.0.0\npaths:\n  /ping: {}\n",
	})
	d := NewOpenAPIDetector(stubBundler{})
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/api.yaml", DestinationAbs: "/docs/api.yaml"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	op := result[0].(*ops.OpenAPI)
	if op.DestinationFiles()[0] != "/docs/api.json" {
		t.Fatalf("unexpected destination: %s", op.DestinationFiles()[0])
	}
}

func TestOpenAPIDetectorResolvesTransitiveJSONRefs(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/repo/api.json":               `{"openapi":"3.0.0","paths":{"$ref":"components.json#/paths"}}`,
		"/repo/components.json":        `{"thing":{"$ref":"nested-components.json#/def"}}`,
		"/repo/nested-components.json": `{"def":{"type":"string"}}`,
	})
	d := NewOpenAPIDetector(stubBundler{})
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/api.json", DestinationAbs: "/docs/api.json"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	op := result[0].(*ops.OpenAPI)
	refs := op.RefFiles()
	if len(refs) != 2 {
		t.Fatalf("expected 2 transitive refs, got %v", refs)
	}
}

func TestOpenAPIDetectorExcludesSameFileRefs(t *testing.T) {
	fs := vfs.NewMemFilesystem(map[string]string{
		"/repo/api.yaml": "openapi: 3.0.0\npaths:\n  /ping:\n    $ref: '#/some-component'\n",
	})
	d := NewOpenAPIDetector(stubBundler{})
	previous := []ops.Operation{&ops.Copy{SourceAbs: "/repo/api.yaml", DestinationAbs: "/docs/api.yaml"}}
	result, err := d.Detect(fs, previous)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	op := result[0].(*ops.OpenAPI)
	if len(op.RefFiles()) != 0 {
		t.Fatalf("expected no ref files for same-file ref, got %v", op.RefFiles())
	}
}
