package render

import (
	"context"
	"fmt"
	"time"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/bundler"
)

// BundleError wraps a failed OpenAPI bundling invocation.
type BundleError struct {
	SpecPath string
	Err      error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("openapi bundle failed for %s: %v", e.SpecPath, e.Err)
}

func (e *BundleError) Unwrap() error { return e.Err }

// OpenAPIBundler resolves $ref references in an OpenAPI document and
// produces a single self-contained JSON document, backed by
// github.com/pb33f/libopenapi's bundler.
type OpenAPIBundler struct {
	TimeoutSeconds int
}

// NewOpenAPIBundler returns a ready-to-use bundler, bounding each bundle
// invocation to timeoutSeconds (no bound if zero or negative).
func NewOpenAPIBundler(timeoutSeconds int) *OpenAPIBundler {
	return &OpenAPIBundler{TimeoutSeconds: timeoutSeconds}
}

// Bundle reads the spec at specPath (via specBytes, since the bundler
// operates on in-memory documents) and returns its bundled JSON form.
func (b *OpenAPIBundler) Bundle(ctx context.Context, specPath string, specBytes []byte) (string, error) {
	if b.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(b.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	type result struct {
		bundled string
		err     error
	}
	done := make(chan result, 1)
	go func() {
		bundled, err := b.bundle(specPath, specBytes)
		done <- result{bundled, err}
	}()

	select {
	case <-ctx.Done():
		return "", &BundleError{SpecPath: specPath, Err: ctx.Err()}
	case r := <-done:
		return r.bundled, r.err
	}
}

func (b *OpenAPIBundler) bundle(specPath string, specBytes []byte) (string, error) {
	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return "", &BundleError{SpecPath: specPath, Err: err}
	}

	v3Model, errs := document.BuildV3Model()
	if len(errs) > 0 {
		return "", &BundleError{SpecPath: specPath, Err: errs[0]}
	}

	bundled, err := bundler.BundleDocument(&v3Model.Model)
	if err != nil {
		return "", &BundleError{SpecPath: specPath, Err: err}
	}
	return string(bundled), nil
}
