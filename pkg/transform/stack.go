// Package transform provides the hierarchical matrix stack used to place
// meshes in a scene. Each operation right-multiplies the current matrix,
// so operations written first apply last to the geometry.
package transform

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl32/matstack"
)

// ErrStackUnderflow is returned by Pop when only the base matrix remains.
var ErrStackUnderflow = errors.New("transform stack underflow")

// Stack is a LIFO of 4x4 matrices. The base entry starts as the identity
// and can be replaced but never popped.
type Stack struct {
	ms *matstack.MatStack
}

// NewStack returns a stack holding only the identity.
func NewStack() *Stack {
	return &Stack{ms: matstack.NewMatStack()}
}

// Push duplicates the current matrix.
func (s *Stack) Push() {
	s.ms.Push()
}

// Pop discards the current matrix and restores the one beneath it.
func (s *Stack) Pop() error {
	if len(*s.ms) <= 1 {
		return ErrStackUnderflow
	}
	return s.ms.Pop()
}

// Depth returns the number of entries, base included.
func (s *Stack) Depth() int {
	return len(*s.ms)
}

// LoadIdentity replaces the current matrix with the identity.
func (s *Stack) LoadIdentity() {
	s.ms.LoadIdent()
}

// LoadMatrix replaces the current matrix with m.
func (s *Stack) LoadMatrix(m mgl32.Mat4) {
	s.ms.Load(m)
}

// MultMatrix right-multiplies the current matrix by m.
func (s *Stack) MultMatrix(m mgl32.Mat4) {
	s.ms.RightMul(m)
}

// MultTranslation right-multiplies by a translation.
func (s *Stack) MultTranslation(v mgl32.Vec3) {
	s.ms.RightMul(mgl32.Translate3D(v[0], v[1], v[2]))
}

// MultScale right-multiplies by a per-axis scale.
func (s *Stack) MultScale(v mgl32.Vec3) {
	s.ms.RightMul(mgl32.Scale3D(v[0], v[1], v[2]))
}

// MultRotation right-multiplies by a rotation of degrees around axis.
// The axis need not be normalized; a zero axis leaves the matrix alone.
func (s *Stack) MultRotation(degrees float32, axis mgl32.Vec3) {
	if axis.LenSqr() == 0 {
		return
	}
	s.ms.RightMul(mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize()))
}

// Current returns a copy of the current matrix.
func (s *Stack) Current() mgl32.Mat4 {
	return s.ms.Peek()
}
