package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureView attaches an already uploaded texture view at a binding index. Material and
// environment groups are built this way before the Renderer creates their bind group.
//
// Parameters:
//   - binding: the binding index the shader samples the texture from
//   - tv: the texture view to bind
//
// Returns:
//   - BindGroupProviderOption: a function that stores the texture view on the provider
func WithTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textureViews[binding] = tv
	}
}

// WithTextureViews attaches several texture views keyed by binding index. Entries are merged
// into any views already set, so it composes with WithTextureView.
//
// Parameters:
//   - views: a map of binding indices to texture views
//
// Returns:
//   - BindGroupProviderOption: a function that stores every texture view on the provider
func WithTextureViews(views map[int]*wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		for binding, tv := range views {
			p.textureViews[binding] = tv
		}
	}
}
