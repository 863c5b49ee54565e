// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/arvo/gfx"
	"github.com/devblok/arvo/gfx/vkr"
	"github.com/devblok/arvo/model"
)

var (
	// ErrNoDevice is returned by GPU object factories
	// before a device is attached
	ErrNoDevice = errors.New("no device attached")

	// ErrNoAssets is returned by asset loaders before
	// an asset source is set
	ErrNoAssets = errors.New("no asset source set")
)

// NewContext assembles the engine object registries
func NewContext(cfg Configuration) *Context {
	ctx := &Context{
		cfg:      cfg,
		meshes:   NewRegistry[*model.Mesh]("meshes"),
		textures: NewRegistry[*Texture]("textures"),
		buffers:  NewRegistry[*vkr.Buffer]("buffers"),
		images:   NewRegistry[*vkr.Image]("images"),
		shaders:  NewRegistry[*vkr.Shader]("shaders"),
	}
	if cfg.Pools.Reserve > 0 {
		for _, reg := range ctx.registries() {
			reg.Reserve(cfg.Pools.Reserve)
		}
	}
	return ctx
}

// Context owns the engine object registries and the device
// objects are created on
type Context struct {
	cfg Configuration

	device    vk.Device
	allocator *vkr.MemoryAllocator

	assets gfx.Loader

	meshes   *Registry[*model.Mesh]
	textures *Registry[*Texture]
	buffers  *Registry[*vkr.Buffer]
	images   *Registry[*vkr.Image]
	shaders  *Registry[*vkr.Shader]
}

// registry is the kind-erased view Shutdown sweeps over
type registry interface {
	Kind() string
	Len() int
	Reserve(int)
	DestroyAll() int
}

func (c *Context) registries() []registry {
	return []registry{c.buffers, c.images, c.shaders, c.textures, c.meshes}
}

// AttachDevice gives the context a device to create GPU objects with
func (c *Context) AttachDevice(device vk.Device, gpu vk.PhysicalDevice) error {
	allocator, err := vkr.NewMemoryAllocator(device, gpu)
	if err != nil {
		return err
	}
	c.device = device
	c.allocator = allocator
	return nil
}

// SetAssets points the context at a source of assets
func (c *Context) SetAssets(assets gfx.Loader) {
	c.assets = assets
}

// Meshes returns the mesh registry
func (c *Context) Meshes() *Registry[*model.Mesh] {
	return c.meshes
}

// Textures returns the texture registry
func (c *Context) Textures() *Registry[*Texture] {
	return c.textures
}

// Buffers returns the GPU buffer registry
func (c *Context) Buffers() *Registry[*vkr.Buffer] {
	return c.buffers
}

// Images returns the GPU image registry
func (c *Context) Images() *Registry[*vkr.Image] {
	return c.images
}

// Shaders returns the shader module registry
func (c *Context) Shaders() *Registry[*vkr.Shader] {
	return c.shaders
}

// CreateBuffer creates a GPU buffer of the given size and tracks it,
// the returned holder destroys the buffer when closed
func (c *Context) CreateBuffer(size uint, usage vk.BufferUsageFlagBits) (gfx.Holder, error) {
	if c.device == nil {
		return gfx.Holder{}, ErrNoDevice
	}
	buffer, err := vkr.NewBuffer(c.device, size, usage, vk.SharingModeExclusive, c.allocator)
	if err != nil {
		return gfx.Holder{}, err
	}
	return c.buffers.Hold(&buffer), nil
}

// CreateImage creates a GPU image of the given extent and tracks it,
// the returned holder destroys the image when closed
func (c *Context) CreateImage(extent gfx.Extent3D, usage vk.ImageUsageFlagBits) (gfx.Holder, error) {
	if c.device == nil {
		return gfx.Holder{}, ErrNoDevice
	}
	image, err := vkr.NewImage(c.device, extent, usage, vk.SharingModeExclusive, c.allocator)
	if err != nil {
		return gfx.Holder{}, err
	}
	return c.images.Hold(&image), nil
}

// CreateShader builds a shader module from compiled code and tracks it,
// the returned holder destroys the module when closed
func (c *Context) CreateShader(name string, code []byte) (gfx.Holder, error) {
	if c.device == nil {
		return gfx.Holder{}, ErrNoDevice
	}
	shader, err := vkr.NewShader(c.device, name, code)
	if err != nil {
		return gfx.Holder{}, err
	}
	return c.shaders.Hold(&shader), nil
}

// LoadShaderDirectory creates shader modules from every compiled
// shader found in the given directory
func (c *Context) LoadShaderDirectory(dir string) ([]gfx.Holder, error) {
	if c.device == nil {
		return nil, ErrNoDevice
	}

	files, _, err := loadShaderFilesFromDirectory(dir)
	if err != nil {
		return nil, err
	}

	var holders []gfx.Holder
	for _, file := range files {
		code, err := os.ReadFile(file)
		if err != nil {
			return holders, fmt.Errorf("os.ReadFile(): %s", err.Error())
		}
		name := strings.TrimSuffix(filepath.Base(file), shaderSuffix)
		holder, err := c.CreateShader(name, code)
		if err != nil {
			return holders, err
		}
		holders = append(holders, holder)
	}
	return holders, nil
}

// LoadMesh reads a mesh asset and tracks the decoded mesh,
// the returned holder destroys it when closed
func (c *Context) LoadMesh(id string) (gfx.Holder, error) {
	if c.assets == nil {
		return gfx.Holder{}, ErrNoAssets
	}
	contents, err := c.assets.Load(id)
	if err != nil {
		return gfx.Holder{}, fmt.Errorf("assets.Load(%s): %w", id, err)
	}
	mesh, err := model.DecodeMesh(bytes.NewReader(contents))
	if err != nil {
		return gfx.Holder{}, err
	}
	return c.meshes.Hold(mesh), nil
}

// LoadTexture reads an image asset and shares the decoded texture,
// every user acquires and closes its own reference
func (c *Context) LoadTexture(id string) (*gfx.Resource, error) {
	if c.assets == nil {
		return nil, ErrNoAssets
	}
	contents, err := c.assets.Load(id)
	if err != nil {
		return nil, fmt.Errorf("assets.Load(%s): %w", id, err)
	}
	texture, err := NewTexture(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}
	return c.textures.Share(texture), nil
}

// Shutdown destroys every object still tracked by the context.
// Anything it finds is a leak and gets reported. Returns the
// number of objects swept up.
func (c *Context) Shutdown() int {
	destroyed := 0
	for _, reg := range c.registries() {
		if leaked := reg.Len(); leaked > 0 {
			log.Warnf("%d %s not destroyed before shutdown", leaked, reg.Kind())
		}
		destroyed += reg.DestroyAll()
	}
	return destroyed
}
