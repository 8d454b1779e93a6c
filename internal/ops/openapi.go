package ops

import (
	"context"
	"encoding/json"

	"github.com/harrison/techdocs/internal/hashutil"
	"github.com/harrison/techdocs/internal/vfs"
)

// OpenAPIBundler resolves $ref references in an OpenAPI document, starting
// from specPath, and returns a single self-contained JSON document.
type OpenAPIBundler interface {
	Bundle(ctx context.Context, specPath string, specBytes []byte) (string, error)
}

// OpenAPI bundles an OpenAPI spec file and injects a content checksum so
// later runs can detect whether the spec, or anything it transitively
// references, changed.
type OpenAPI struct {
	SourceAbs      string
	DestinationAbs string
	Bundler        OpenAPIBundler

	// refs is every file (besides SourceAbs) this spec transitively
	// references via $ref, as discovered by the detector that built this
	// operation.
	refs []string
}

// NewOpenAPI builds an OpenAPI operation with its transitively-referenced
// files.
func NewOpenAPI(sourceAbs, destinationAbs string, bundler OpenAPIBundler, refFiles []string) *OpenAPI {
	return &OpenAPI{SourceAbs: sourceAbs, DestinationAbs: destinationAbs, Bundler: bundler, refs: refFiles}
}

// RefFiles returns every file this spec transitively references via $ref,
// excluding the spec file itself and same-file (#/...) references.
func (o *OpenAPI) RefFiles() []string { return append([]string(nil), o.refs...) }

func (o *OpenAPI) Name() string { return "openapi" }

func (o *OpenAPI) Execute(fs vfs.Filesystem) error {
	raw, err := fs.ReadBytes(o.SourceAbs)
	if err != nil {
		return err
	}
	bundled, err := o.Bundler.Bundle(context.Background(), o.SourceAbs, raw)
	if err != nil {
		return err
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(bundled), &decoded); err != nil {
		return err
	}
	decoded["x-api-checksum"] = hashutil.Bytes(raw)
	out, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return err
	}
	return fs.WriteString(o.DestinationAbs, string(out))
}

func (o *OpenAPI) HasChanges(fs vfs.Filesystem) (bool, error) {
	if !fs.IsFile(o.DestinationAbs) {
		return true, nil
	}
	raw, err := fs.ReadBytes(o.SourceAbs)
	if err != nil {
		return false, err
	}
	dest, err := fs.ReadString(o.DestinationAbs)
	if err != nil {
		return false, err
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(dest), &decoded); err != nil {
		return true, nil
	}
	stored, _ := decoded["x-api-checksum"].(string)
	if stored != hashutil.Bytes(raw) {
		return true, nil
	}
	return false, nil
}

func (o *OpenAPI) SourceFiles() []string      { return []string{o.SourceAbs} }
func (o *OpenAPI) DestinationFiles() []string { return []string{o.DestinationAbs} }

func (o *OpenAPI) Format(formatter PathFormatter) string {
	return "Bundle " + formatter.Format(o.SourceAbs) + " to " + formatter.Format(o.DestinationAbs)
}
