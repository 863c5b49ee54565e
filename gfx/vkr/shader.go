// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/devblok/vulkan"
)

// NewShader assembles compiled SPIR-V code into a shader module on
// the given device. The code length must be a whole number of words.
func NewShader(dev vk.Device, name string, code []byte) (Shader, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return Shader{}, errors.New("shader code is not a whole number of 32bit words")
	}

	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    SliceUint32(code),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(dev, &smci, nil, &module)); err != nil {
		return Shader{}, fmt.Errorf("vk.CreateShaderModule(%s): %s", name, err.Error())
	}

	return Shader{
		name:   name,
		device: dev,
		module: module,
	}, nil
}

// Shader wraps a compiled shader module.
type Shader struct {
	name   string
	device vk.Device
	module vk.ShaderModule
}

// Name returns the name the shader was created under.
func (s *Shader) Name() string {
	return s.name
}

// Get returns the vulkan ShaderModule handle.
func (s *Shader) Get() vk.ShaderModule {
	return s.module
}

// Release destroys the shader module.
func (s *Shader) Release() {
	vk.DestroyShaderModule(s.device, s.module, nil)
}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

// SliceUint32 reslices bytes into a uint32, that is used
// to sumbit vulkan shaders for processing
func SliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}
