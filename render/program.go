// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/sketchpad"
)

// ProgramKind identifies one of the fixed shader programs.
type ProgramKind uint8

const (
	// ProgramSolidFill paints the uniform color.
	ProgramSolidFill ProgramKind = iota
	// ProgramCircle paints an antialiased disc with a border ring.
	ProgramCircle
	// ProgramGrid paints the background grid in framebuffer pixels.
	ProgramGrid

	programKindCount
)

// Entry point names shared by all shader sources.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

var (
	//go:embed shaders/solid.wgsl
	solidSource string

	//go:embed shaders/circle.wgsl
	circleSource string

	//go:embed shaders/grid.wgsl
	gridSource string
)

// ProgramKinds lists every kind in declaration order.
func ProgramKinds() []ProgramKind {
	return []ProgramKind{ProgramSolidFill, ProgramCircle, ProgramGrid}
}

// String returns the kind name, used as the GPU object label.
func (k ProgramKind) String() string {
	switch k {
	case ProgramSolidFill:
		return "solid"
	case ProgramCircle:
		return "circle"
	case ProgramGrid:
		return "grid"
	default:
		return fmt.Sprintf("ProgramKind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the fixed kinds.
func (k ProgramKind) Valid() bool {
	return k < programKindCount
}

// Source returns the WGSL source of the program, or "" for an invalid kind.
func (k ProgramKind) Source() string {
	switch k {
	case ProgramSolidFill:
		return solidSource
	case ProgramCircle:
		return circleSource
	case ProgramGrid:
		return gridSource
	default:
		return ""
	}
}

// Descriptor returns the compile descriptor for k.
func (k ProgramKind) Descriptor() ProgramDescriptor {
	return ProgramDescriptor{
		Kind:          k,
		Label:         k.String(),
		Source:        k.Source(),
		VertexEntry:   VertexEntry,
		FragmentEntry: FragmentEntry,
	}
}

type programEntry struct {
	program Program
	refs    int
	err     error
}

// ProgramCache compiles each program kind at most once per backend and
// hands out shared references to it.
//
// A compile failure is remembered: later Get calls for the same kind
// return the same error without compiling again.
type ProgramCache struct {
	backend Backend
	entries [programKindCount]programEntry
	closed  bool
}

// NewProgramCache creates an empty cache for backend.
func NewProgramCache(backend Backend) (*ProgramCache, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	return &ProgramCache{backend: backend}, nil
}

// Backend returns the backend programs are compiled with.
func (c *ProgramCache) Backend() Backend {
	return c.backend
}

// Get returns a new reference to the program of the given kind, compiling
// it on first use. The caller must Release the reference.
func (c *ProgramCache) Get(kind ProgramKind) (*ProgramRef, error) {
	if c.closed {
		return nil, ErrCacheClosed
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProgram, uint8(kind))
	}

	e := &c.entries[kind]
	if e.err != nil {
		return nil, e.err
	}
	if e.program == nil {
		prog, err := c.backend.CompileProgram(kind.Descriptor())
		if err != nil {
			e.err = compileError(kind, err)
			sketchpad.Logger().Error("render: program compile failed",
				"program", kind.String(), "diagnostic", sketchpad.DiagnosticOf(e.err))
			return nil, e.err
		}
		e.program = prog
		sketchpad.Logger().Info("render: program compiled", "program", kind.String())
	}

	e.refs++
	return &ProgramRef{cache: c, kind: kind}, nil
}

// Precompile compiles every program kind, so that compile failures surface
// at start-up rather than on the first draw.
func (c *ProgramCache) Precompile() error {
	for _, kind := range ProgramKinds() {
		ref, err := c.Get(kind)
		if err != nil {
			return err
		}
		ref.Release()
	}
	return nil
}

// Refs returns the number of live references to kind.
func (c *ProgramCache) Refs(kind ProgramKind) int {
	if !kind.Valid() {
		return 0
	}
	return c.entries[kind].refs
}

// Compiled reports whether kind has been compiled successfully.
func (c *ProgramCache) Compiled(kind ProgramKind) bool {
	return kind.Valid() && c.entries[kind].program != nil
}

// Close destroys every compiled program. Outstanding references become
// invalid; Get fails with ErrCacheClosed afterwards.
func (c *ProgramCache) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for i := range c.entries {
		e := &c.entries[i]
		if e.program != nil {
			if e.refs > 0 {
				sketchpad.Logger().Warn("render: closing program with live references",
					"program", ProgramKind(i).String(), "refs", e.refs)
			}
			e.program.Release()
			e.program = nil
		}
	}
}

func (c *ProgramCache) release(kind ProgramKind) {
	if e := &c.entries[kind]; e.refs > 0 {
		e.refs--
	}
}

// compileError wraps a backend failure as a fatal init error, keeping a
// FatalInitError produced by the backend itself.
func compileError(kind ProgramKind, err error) error {
	var fe *sketchpad.FatalInitError
	if errors.As(err, &fe) {
		return err
	}
	return &sketchpad.FatalInitError{
		Op:         "compile program",
		Label:      kind.String(),
		Diagnostic: err.Error(),
		Err:        err,
	}
}

// ProgramRef is one counted reference to a cached program.
type ProgramRef struct {
	cache    *ProgramCache
	kind     ProgramKind
	released bool
}

// Kind returns the program kind.
func (r *ProgramRef) Kind() ProgramKind {
	return r.kind
}

// Program returns the compiled program, or nil once the reference or the
// cache is released.
func (r *ProgramRef) Program() Program {
	if r == nil || r.released || r.cache.closed {
		return nil
	}
	return r.cache.entries[r.kind].program
}

// Release drops the reference. Releasing twice is a no-op.
func (r *ProgramRef) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.cache.release(r.kind)
}
