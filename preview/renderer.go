package preview

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// blit vertex shader: a single oversized triangle covering the
// viewport, no vertex buffer needed (gl_VertexID-indexed NDC corners).
const blitVertSrc = `
#version 410 core
out vec2 vTexCoord;

void main() {
    vec2 positions[3] = vec2[](
        vec2(-1.0, -1.0),
        vec2(3.0, -1.0),
        vec2(-1.0, 3.0)
    );
    gl_Position = vec4(positions[gl_VertexID], 0.0, 1.0);
    vTexCoord = vec2((positions[gl_VertexID].x + 1.0) * 0.5, 1.0 - (positions[gl_VertexID].y + 1.0) * 0.5);
}
` + "\x00"

const blitFragSrc = `
#version 410 core
in vec2 vTexCoord;
out vec4 outColor;

uniform sampler2D uImage;

void main() {
    outColor = texture(uImage, vTexCoord);
}
` + "\x00"

// Renderer uploads a render target's pixels into a texture each frame
// and blits it fullscreen; no mesh or MVP machinery is needed since
// there is nothing here to rasterize.
type Renderer struct {
	program uint32
	vao     uint32
	tex     uint32
	texW    int
	texH    int
}

// NewRenderer compiles the blit shader and allocates an empty texture.
// Must be called with an OpenGL context current on this thread.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("preview: gl init: %w", err)
	}

	prog, err := newProgram(blitVertSrc, blitFragSrc)
	if err != nil {
		return nil, fmt.Errorf("preview: shader compile: %w", err)
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Renderer{program: prog, vao: vao, tex: tex}, nil
}

// Upload replaces the texture contents with an RGBA8 image of the given
// dimensions, row-major top-to-bottom.
func (r *Renderer) Upload(width, height int, rgba []byte) {
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	if width == r.texW && height == r.texH {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
		r.texW, r.texH = width, height
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SetViewport resizes the OpenGL viewport to match the framebuffer.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw clears the framebuffer and blits the uploaded texture fullscreen.
func (r *Renderer) Draw() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU resources the renderer owns.
func (r *Renderer) Destroy() {
	gl.DeleteTextures(1, &r.tex)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
