package ply

// ShaderUniformValue is a typed uniform value for a shader effect.
type ShaderUniformValue interface{ isShaderUniformValue() }

// UniformFloat is a single float uniform.
type UniformFloat float32

// UniformVec2 is a 2-component float vector uniform.
type UniformVec2 [2]float32

// UniformVec3 is a 3-component float vector uniform.
type UniformVec3 [3]float32

// UniformVec4 is a 4-component float vector uniform.
type UniformVec4 [4]float32

// UniformInt is a single integer uniform.
type UniformInt int32

func (UniformFloat) isShaderUniformValue() {}
func (UniformVec2) isShaderUniformValue()  {}
func (UniformVec3) isShaderUniformValue()  {}
func (UniformVec4) isShaderUniformValue()  {}
func (UniformInt) isShaderUniformValue()   {}

// ShaderUniform names a uniform and carries its value.
type ShaderUniform struct {
	Name  string
	Value ShaderUniformValue
}

// ShaderConfig describes one shader effect. The engine treats the source as
// opaque; the renderer compiles and applies it. Per-element effects ride on
// render commands; group effects bracket a subtree with ShaderBegin and
// ShaderEnd commands.
type ShaderConfig struct {
	// CacheKey identifies the compiled shader in the renderer's cache.
	CacheKey string
	// Fragment is the fragment shader source.
	Fragment string
	Uniforms []ShaderUniform
}
