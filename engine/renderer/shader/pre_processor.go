// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations, replaces them with generated WGSL declarations,
// constants or injected struct source, and collects a declarations list that the frame
// backend uses to wire GPU resources to bind groups.
//
// The pre-processor maintains two registries:
//   - structRegistry: maps AnnotationArg keys to embedded WGSL sources and their
//     resolved type names. Snippets have an empty type name and can only be included.
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-forward/engine/bezier"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// registryEntry pairs a WGSL source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	// Source is the raw WGSL text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations. Empty for snippets.
	Type string
}

// annotationError ties a pre-processing failure to the source line that caused it.
type annotationError struct {
	line int
	text string
	err  error
}

func (e *annotationError) Error() string {
	return e.err.Error()
}

func (e *annotationError) Unwrap() error {
	return e.err
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	defines              map[string]string

	// declarations accumulates group and provider annotations during a Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with generated declarations or injected struct sources while collecting
// a declarations list for downstream resource wiring.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and pre-processes it by replacing
	// @oxy: annotations with their corresponding WGSL output. Including the same struct or
	// snippet twice emits it once. @oxy:define lines become `const NAME = value;`.
	// @oxy:provider annotations produce no WGSL output but are recorded in the declarations list.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed, references an unknown type or an undefined define
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations collected during the most
	// recent call to Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with all registered struct types, snippets and
// address space mappings pre-populated.
//
// Parameters:
//   - defines: values for @oxy:define constants and $NAME annotation arguments; may be nil
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(defines map[string]string) PreProcessor {
	if defines == nil {
		defines = map[string]string{}
	}
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:                  {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:                  {Source: model.GPUVertexSource, Type: "VertexInput"},
			annotationArgPositionVertex:          {Source: model.GPUPositionVertexSource, Type: "PositionInput"},
			annotationArgMarkerVertex:            {Source: model.GPUMarkerVertexSource, Type: "MarkerInput"},
			AnnotationArgObjectUniform:           {Source: model.GPUObjectUniformSource, Type: "ObjectUniform"},
			AnnotationArgPointLight:              {Source: light.GPUPointLightSource, Type: "PointLight"},
			AnnotationArgSpotLight:               {Source: light.GPUSpotLightSource, Type: "SpotLight"},
			AnnotationArgDirectionalLight:        {Source: light.GPUDirectionalLightSource, Type: "DirectionalLight"},
			AnnotationArgPointLightBatch:         {Source: light.GPUPointLightBatchSource, Type: "PointLightBatch"},
			AnnotationArgSpotLightBatch:          {Source: light.GPUSpotLightBatchSource, Type: "SpotLightBatch"},
			AnnotationArgDirectionalLightBatch:   {Source: light.GPUDirectionalLightBatchSource, Type: "DirectionalLightBatch"},
			AnnotationArgMarkerParams:            {Source: light.GPUMarkerParamsSource, Type: "MarkerParams"},
			AnnotationArgPathUniform:             {Source: bezier.GPUPathUniformSource, Type: "PathUniform"},
			annotationArgShadingCommon:           {Source: light.ShadingCommonSource},
			annotationArgPointLightShading:       {Source: light.PointLightShadingSource},
			annotationArgSpotLightShading:        {Source: light.SpotLightShadingSource},
			annotationArgDirectionalLightShading: {Source: light.DirectionalLightShadingSource},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
		defines: defines,
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1, p.defines)
		if err != nil {
			return "", &annotationError{line: i + 1, text: strings.TrimSpace(line), err: err}
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", &annotationError{line: i + 1, text: strings.TrimSpace(line), err: fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])}
			}
			included[a.Args[0]] = true
			out = append(out, entry.Source)
		case annotationTypeDefine:
			name := string(a.Args[0])
			value, ok := p.defines[name]
			if !ok || strings.TrimSpace(value) == "" {
				return "", &annotationError{line: i + 1, text: strings.TrimSpace(line), err: fmt.Errorf("line %d: undefined define %q", i+1, name)}
			}
			out = append(out, fmt.Sprintf("const %s = %s;", name, value))
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		default:
			return "", &annotationError{line: i + 1, text: strings.TrimSpace(line), err: fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)}
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
