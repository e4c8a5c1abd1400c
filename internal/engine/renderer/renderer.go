// Package renderer draws the blended mesh with OpenGL.
package renderer

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/blendview/internal/engine/shader"
	"github.com/Faultbox/blendview/internal/logger"
	"github.com/Faultbox/blendview/pkg/math"
)

//go:embed shaders/blend.vert
var vertexShader string

//go:embed shaders/blend.frag
var fragmentShader string

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	LightDir   [3]float32 // unit length
	Wireframe  bool
	MVP        math.Mat4
}

// Renderer draws one non-indexed triangle list.
type Renderer struct {
	config  Config
	program *shader.Program

	vao       uint32
	positions uint32
	normals   uint32
	vertices  int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	if cfg.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	return r, nil
}

// Upload copies the per-corner buffers to the GPU. It is called once; the
// buffers are not read again afterwards.
func (r *Renderer) Upload(positions, normals []float32) error {
	if len(positions) != len(normals) {
		return fmt.Errorf("position buffer has %d floats, normal buffer %d", len(positions), len(normals))
	}
	if len(positions) == 0 || len(positions)%9 != 0 {
		return fmt.Errorf("position buffer length %d is not a whole number of triangles", len(positions))
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	r.positions = uploadAttribute(0, positions)
	r.normals = uploadAttribute(1, normals)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertices = int32(len(positions) / 3)
	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int32("vertices", r.vertices),
	)
	return nil
}

// uploadAttribute creates a static VBO bound to a vec3 attribute location.
func uploadAttribute(location uint32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(location, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(location)
	return vbo
}

// Resize handles window resize. The projection stays fixed.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Draw clears the frame and draws the mesh.
func (r *Renderer) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.vertices == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uMVP", (*[16]float32)(&r.config.MVP))
	r.program.SetVec3("uLightDir", r.config.LightDir)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertices)
	gl.BindVertexArray(0)
}

// ReadPixels reads the displayed (front) buffer as tightly packed RGB,
// bottom row first. It implements capture.PixelSource.
func (r *Renderer) ReadPixels(width, height int, dst []byte) error {
	if len(dst) < width*height*3 {
		return fmt.Errorf("destination holds %d bytes, need %d", len(dst), width*height*3)
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.FRONT)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	gl.ReadBuffer(gl.BACK)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glReadPixels failed: 0x%x", code)
	}
	return nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.positions != 0 {
		gl.DeleteBuffers(1, &r.positions)
	}
	if r.normals != 0 {
		gl.DeleteBuffers(1, &r.normals)
	}
	if r.program != nil {
		r.program.Delete()
	}
}
