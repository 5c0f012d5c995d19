package shader

import (
	"errors"
	"fmt"
)

// BuildPhase names the step of shader construction that failed.
type BuildPhase string

const (
	// BuildPhaseRead covers reading the source file from disk.
	BuildPhaseRead BuildPhase = "read"

	// BuildPhasePreprocess covers @oxy annotation expansion.
	BuildPhasePreprocess BuildPhase = "preprocess"

	// BuildPhaseReflect covers entry point and layout extraction from the expanded source.
	BuildPhaseReflect BuildPhase = "reflect"

	// BuildPhaseCompile covers GPU shader module creation.
	BuildPhaseCompile BuildPhase = "compile"

	// BuildPhaseLink covers pipeline layout and pipeline creation from a vertex/fragment pair.
	BuildPhaseLink BuildPhase = "link"
)

// BuildError reports a shader that could not be turned into a usable pipeline stage. It is fatal at setup: the
// renderer never draws with a partially built pipeline.
type BuildError struct {
	// Key is the shader (or pipeline, for link failures) key.
	Key string
	// Stage is the shader stage that failed.
	Stage ShaderType
	// Path is the source file path, empty for in-memory sources.
	Path string
	// Phase is the construction step that failed.
	Phase BuildPhase
	// Diagnostic is the offending source line or the driver's compiler output, when available.
	Diagnostic string
	// Err is the underlying error.
	Err error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("shader %q (%s", e.Key, e.Stage)
	if e.Path != "" {
		msg += ", " + e.Path
	}
	msg += fmt.Sprintf("): %s failed", e.Phase)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostic != "" {
		msg += "\n" + e.Diagnostic
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrNoEntryPoint is returned when the expanded source has no entry point for the shader's stage.
var ErrNoEntryPoint = errors.New("no entry point for shader stage")

// ErrUnsupportedResource is returned when a binding declares a resource kind the frame backend cannot provide.
var ErrUnsupportedResource = errors.New("unsupported resource binding")

// resourceError carries the declaration that failed layout reflection.
type resourceError struct {
	decl string
	err  error
}

func (e *resourceError) Error() string { return e.err.Error() }
func (e *resourceError) Unwrap() error { return e.err }

// AsBuildError reports whether err wraps a *BuildError and returns it.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - *BuildError: the wrapped build error, or nil
//   - bool: true if err wraps a build error
func AsBuildError(err error) (*BuildError, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
