package pipeline

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// MergeBindGroupLayouts merges the bind group layout descriptors of the vertex and fragment shaders into a single
// set of descriptors suitable for creating a pipeline layout or a bind group that the pipeline can consume.
//
// For each group index present in either shader:
//   - Entries with the same binding number have their Visibility flags ORed together
//   - Entries unique to one shader are included with their original visibility
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func MergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)

	groupIndices := make(map[int]bool)
	for g := range vertexLayouts {
		groupIndices[g] = true
	}
	for g := range fragmentLayouts {
		groupIndices[g] = true
	}

	for g := range groupIndices {
		vDesc, hasV := vertexLayouts[g]
		fDesc, hasF := fragmentLayouts[g]

		switch {
		case hasV && !hasF:
			merged[g] = vDesc
		case hasF && !hasV:
			merged[g] = fDesc
		default:
			entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
			for _, e := range vDesc.Entries {
				entryMap[e.Binding] = e
			}
			for _, e := range fDesc.Entries {
				if existing, ok := entryMap[e.Binding]; ok {
					existing.Visibility |= e.Visibility
					entryMap[e.Binding] = existing
				} else {
					entryMap[e.Binding] = e
				}
			}

			entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
			for _, e := range entryMap {
				entries = append(entries, e)
			}
			// sorted by binding so equal layouts produce equal descriptors
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Binding < entries[j].Binding
			})

			merged[g] = wgpu.BindGroupLayoutDescriptor{
				Label:   vDesc.Label,
				Entries: entries,
			}
		}
	}

	return merged
}

func (p *pipeline) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	var vertex, fragment map[int]wgpu.BindGroupLayoutDescriptor
	if p.vertexShader != nil {
		vertex = p.vertexShader.BindGroupLayoutDescriptors()
	}
	if p.fragmentShader != nil {
		fragment = p.fragmentShader.BindGroupLayoutDescriptors()
	}
	return MergeBindGroupLayouts(vertex, fragment)
}
