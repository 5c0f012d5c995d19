// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that drive struct and snippet injection, compile-time constant emission,
// bind group declaration, and resource provider registration. The parsed results are
// stored as Annotation values and consumed by the PreProcessor and the frame backend to
// wire GPU resources without manual low-level plumbing.
package shader

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition or
	// shading snippet into the shader at the annotation site. This annotation does not
	// produce a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@oxy:include <struct_type|snippet>
	//
	// Example: //@oxy:include $LIGHT
	annotationTypeInclude AnnotationType = "include"

	// annotationTypeDefine emits a WGSL module-scope constant whose value comes from the
	// defines the shader was built with. A define that was not supplied is an error.
	//
	// Syntax: //@oxy:define <NAME>
	//
	// Example: //@oxy:define MAX_LIGHTS  ->  const MAX_LIGHTS = 4;
	annotationTypeDefine AnnotationType = "define"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform object object_uniform
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The WGSL binding declaration remains hand-written
	// in the shader source directly below the annotation. This is used for textures and
	// samplers, which have no registered struct.
	//
	// Syntax:
	//   //@oxy:provider <group> <binding> <provider_identity>
	//   //@oxy:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Example: //@oxy:provider 1 0 material diffuse_texture
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments after define substitution. The contents depend on Type:
	//   - include:  [0] = struct type or snippet key
	//   - define:   [0] = constant name
	//   - group:    [0] = address space, [1] = var name, [2] = struct type key
	//   - provider: [0] = provider identity, [1] = binding role (optional)
	Args []AnnotationArg

	// Line is the 1-based line number in the WGSL source before pre-processing where this annotation was found.
	Line int

	// Group is the @group index for group and provider annotations. Nil otherwise.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil otherwise.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @oxy:include and as the
// type field of @oxy:group. Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies the lit mesh VertexInput struct.
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// annotationArgPositionVertex identifies the position-only PositionInput struct.
	// Source: engine/model/assets/position_vertex.wgsl
	annotationArgPositionVertex AnnotationArg = "position_vertex"

	// annotationArgMarkerVertex identifies the MarkerInput struct for screen-space light markers.
	// Source: engine/model/assets/marker_vertex.wgsl
	annotationArgMarkerVertex AnnotationArg = "marker_vertex"

	// AnnotationArgObjectUniform identifies the per-draw ObjectUniform struct.
	// Source: engine/model/assets/object_uniform.wgsl
	AnnotationArgObjectUniform AnnotationArg = "object_uniform"

	// AnnotationArgPointLight identifies the PointLight struct.
	// Source: engine/light/assets/point_light.wgsl
	AnnotationArgPointLight AnnotationArg = "point_light"

	// AnnotationArgSpotLight identifies the SpotLight struct.
	// Source: engine/light/assets/spot_light.wgsl
	AnnotationArgSpotLight AnnotationArg = "spot_light"

	// AnnotationArgDirectionalLight identifies the DirectionalLight struct.
	// Source: engine/light/assets/directional_light.wgsl
	AnnotationArgDirectionalLight AnnotationArg = "directional_light"

	// AnnotationArgPointLightBatch identifies the PointLightBatch uniform. Requires MAX_LIGHTS.
	// Source: engine/light/assets/point_light_batch.wgsl
	AnnotationArgPointLightBatch AnnotationArg = "point_light_batch"

	// AnnotationArgSpotLightBatch identifies the SpotLightBatch uniform. Requires MAX_LIGHTS.
	// Source: engine/light/assets/spot_light_batch.wgsl
	AnnotationArgSpotLightBatch AnnotationArg = "spot_light_batch"

	// AnnotationArgDirectionalLightBatch identifies the DirectionalLightBatch uniform. Requires MAX_LIGHTS.
	// Source: engine/light/assets/directional_light_batch.wgsl
	AnnotationArgDirectionalLightBatch AnnotationArg = "directional_light_batch"

	// AnnotationArgMarkerParams identifies the MarkerParams uniform.
	// Source: engine/light/assets/marker_params.wgsl
	AnnotationArgMarkerParams AnnotationArg = "marker_params"

	// AnnotationArgPathUniform identifies the PathUniform struct for the debug path line strip.
	// Source: engine/bezier/assets/path_uniform.wgsl
	AnnotationArgPathUniform AnnotationArg = "path_uniform"
)

// ── Snippet arguments ──────────────────────────────────────────────────────────
// These identify WGSL function snippets. They may only be used with @oxy:include.

const (
	// annotationArgShadingCommon identifies the Surface struct and shared shading helpers.
	// Source: engine/light/assets/shading_common.wgsl
	annotationArgShadingCommon AnnotationArg = "shading_common"

	// annotationArgPointLightShading defines lightContribution for PointLight.
	// Source: engine/light/assets/point_light_shading.wgsl
	annotationArgPointLightShading AnnotationArg = "point_light_shading"

	// annotationArgSpotLightShading defines lightContribution for SpotLight.
	// Source: engine/light/assets/spot_light_shading.wgsl
	annotationArgSpotLightShading AnnotationArg = "spot_light_shading"

	// annotationArgDirectionalLightShading defines lightContribution for DirectionalLight.
	// Source: engine/light/assets/directional_light_shading.wgsl
	annotationArgDirectionalLightShading AnnotationArg = "directional_light_shading"
)

// ── Address space arguments ────────────────────────────────────────────────────

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Provider identity arguments ────────────────────────────────────────────────
// These identify which frame backend resource provider owns a bind group.

const (
	// AnnotationArgObject identifies the per-draw object uniform provider.
	AnnotationArgObject AnnotationArg = "object"

	// AnnotationArgLights identifies the per-draw light batch provider.
	AnnotationArgLights AnnotationArg = "lights"

	// AnnotationArgMaterial identifies the material provider (diffuse and normal maps plus sampler).
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgEnvironment identifies the environment provider (skybox cube map plus sampler).
	AnnotationArgEnvironment AnnotationArg = "environment"

	// AnnotationArgPath identifies the path line strip provider.
	AnnotationArgPath AnnotationArg = "path"

	// AnnotationArgMarkers identifies the light marker provider.
	AnnotationArgMarkers AnnotationArg = "markers"
)

// ── Binding role arguments ─────────────────────────────────────────────────────

const (
	// AnnotationArgDiffuseTexture identifies a diffuse texture binding.
	AnnotationArgDiffuseTexture AnnotationArg = "diffuse_texture"

	// AnnotationArgNormalTexture identifies a tangent-space normal map binding.
	AnnotationArgNormalTexture AnnotationArg = "normal_texture"

	// AnnotationArgMaterialSampler identifies the sampler shared by the material maps.
	AnnotationArgMaterialSampler AnnotationArg = "material_sampler"

	// AnnotationArgCubeTexture identifies a cube map texture binding.
	AnnotationArgCubeTexture AnnotationArg = "cube_texture"

	// AnnotationArgCubeSampler identifies the sampler paired with a cube map.
	AnnotationArgCubeSampler AnnotationArg = "cube_sampler"
)

// validStructTypes lists all AnnotationArg values accepted as struct types in @oxy:include
// and @oxy:group annotations. Each entry must have a registryEntry with a non-empty Type.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	annotationArgPositionVertex,
	annotationArgMarkerVertex,
	AnnotationArgObjectUniform,
	AnnotationArgPointLight,
	AnnotationArgSpotLight,
	AnnotationArgDirectionalLight,
	AnnotationArgPointLightBatch,
	AnnotationArgSpotLightBatch,
	AnnotationArgDirectionalLightBatch,
	AnnotationArgMarkerParams,
	AnnotationArgPathUniform,
}

// validSnippets lists the include-only snippet arguments.
var validSnippets = []AnnotationArg{
	annotationArgShadingCommon,
	annotationArgPointLightShading,
	annotationArgSpotLightShading,
	annotationArgDirectionalLightShading,
}

// validAddressSpaces lists all AnnotationArg values accepted as address spaces in @oxy:group annotations.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// validProviderIdentities lists all AnnotationArg values accepted as provider identities.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgObject,
	AnnotationArgLights,
	AnnotationArgMaterial,
	AnnotationArgEnvironment,
	AnnotationArgPath,
	AnnotationArgMarkers,
}

// validBindingRoles lists all AnnotationArg values accepted as binding roles in @oxy:provider annotations.
var validBindingRoles = []AnnotationArg{
	AnnotationArgDiffuseTexture,
	AnnotationArgNormalTexture,
	AnnotationArgMaterialSampler,
	AnnotationArgCubeTexture,
	AnnotationArgCubeSampler,
}

// defineNameRegex matches a valid WGSL identifier usable as a define name.
var defineNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// substituteDefines replaces every $NAME argument with the value of the define NAME.
//
// Parameters:
//   - args: the raw annotation arguments
//   - defines: the define values the shader is built with
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - []string: the substituted arguments
//   - error: an error if an argument references a define that was not supplied
func substituteDefines(args []string, defines map[string]string, lineNum int) ([]string, error) {
	out := make([]string, len(args))
	for i, arg := range args {
		name, ok := strings.CutPrefix(arg, "$")
		if !ok {
			out[i] = arg
			continue
		}
		v, found := defines[name]
		if !found {
			return nil, fmt.Errorf("line %d: undefined define %q", lineNum, name)
		}
		out[i] = v
	}
	return out, nil
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//   - defines: the define values used to resolve $NAME arguments
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int, defines map[string]string) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}
	rest, err := substituteDefines(args[1:], defines, lineNum)
	if err != nil {
		return nil, err
	}
	args = append(args[:1], rest...)

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		arg := AnnotationArg(args[1])
		if !slices.Contains(validStructTypes, arg) && !slices.Contains(validSnippets, arg) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{arg},
			Line: lineNum,
		}, nil
	case string(annotationTypeDefine):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy define annotation requires exactly one argument", lineNum)
		}
		if !defineNameRegex.MatchString(args[1]) {
			return nil, fmt.Errorf("line %d: invalid define name %q", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeDefine,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires exactly five arguments (group, binding, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @oxy provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @oxy provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
