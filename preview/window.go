// Package preview implements an optional live preview window: an
// OpenGL window that blits the render target's pixels to screen as the
// render progresses.
package preview

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window is a single GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	handle *glfw.Window
	width  int
	height int
}

// NewWindow opens a resizable window sized to the render target and
// makes its OpenGL 4.1 core context current on the calling (locked)
// thread.
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("preview: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("preview: create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{handle: handle, width: width, height: height}, nil
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// Destroy tears down the window and terminates GLFW. Must be called
// from the same locked thread NewWindow ran on.
func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}
