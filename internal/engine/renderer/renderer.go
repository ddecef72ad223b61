// Package renderer draws the reference geometry of the scene: a ground
// grid in the world XY plane and an axis triad for tracked frames.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/robolens/robolens/internal/logger"
	"github.com/robolens/robolens/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// GridExtent is the half-size of the ground grid in world units.
	GridExtent int
}

// Renderer owns the GL state for line rendering.
type Renderer struct {
	config Config

	program    uint32
	mvpUniform int32

	gridVAO   uint32
	gridVBO   uint32
	gridCount int32

	axesVAO   uint32
	axesVBO   uint32
	axesCount int32
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	if cfg.GridExtent <= 0 {
		cfg.GridExtent = 10
	}
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.12, 0.12, 0.15, 1.0)

	var err error
	r.program, err = createLineProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.mvpUniform = gl.GetUniformLocation(r.program, gl.Str("uMVP\x00"))

	r.gridVAO, r.gridVBO, r.gridCount = uploadLines(gridVertices(cfg.GridExtent))
	r.axesVAO, r.axesVBO, r.axesCount = uploadLines(axesVertices())

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []uint32{r.gridVAO, r.axesVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	for _, vbo := range []uint32{r.gridVBO, r.axesVBO} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawGrid draws the ground grid with the given view-projection transform.
func (r *Renderer) DrawGrid(viewProj math.Mat4) {
	r.drawLines(r.gridVAO, r.gridCount, viewProj)
}

// DrawAxes draws an axis triad at the given model transform.
func (r *Renderer) DrawAxes(viewProj, model math.Mat4) {
	mvp := viewProj.Mul(model)
	r.drawLines(r.axesVAO, r.axesCount, mvp)
}

func (r *Renderer) drawLines(vao uint32, count int32, mvp math.Mat4) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpUniform, 1, false, mvp.Ptr())
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.LINES, 0, count)
	gl.BindVertexArray(0)
}

// gridVertices builds line segments for a 1m-spaced grid on the XY plane.
func gridVertices(extent int) []float32 {
	e := float32(extent)
	var verts []float32

	appendLine := func(x0, y0, x1, y1 float32, c [3]float32) {
		verts = append(verts,
			x0, y0, 0, c[0], c[1], c[2],
			x1, y1, 0, c[0], c[1], c[2],
		)
	}

	gray := [3]float32{0.35, 0.35, 0.35}
	for i := -extent; i <= extent; i++ {
		f := float32(i)
		appendLine(f, -e, f, e, gray)
		appendLine(-e, f, e, f, gray)
	}
	return verts
}

// axesVertices builds a unit triad: X red, Y green, Z blue.
func axesVertices() []float32 {
	return []float32{
		0, 0, 0, 1, 0.2, 0.2,
		1, 0, 0, 1, 0.2, 0.2,
		0, 0, 0, 0.2, 1, 0.2,
		0, 1, 0, 0.2, 1, 0.2,
		0, 0, 0, 0.3, 0.4, 1,
		0, 0, 1, 0.3, 0.4, 1,
	}
}

// uploadLines creates a VAO/VBO pair for interleaved position+color lines.
func uploadLines(vertices []float32) (vao, vbo uint32, count int32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*4))

	gl.BindVertexArray(0)
	return vao, vbo, int32(len(vertices) / 6)
}

// createLineProgram compiles the position+color line shader.
func createLineProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aColor;

		uniform mat4 uMVP;

		out vec3 vertexColor;

		void main() {
			gl_Position = uMVP * vec4(aPos, 1.0);
			vertexColor = aColor;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vertexColor;
		out vec4 FragColor;

		void main() {
			FragColor = vec4(vertexColor, 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
