package light

import (
	"encoding/binary"
	"math"
)

// Hand-written encoders for the GPU records, used to check the bytes WriteStorage and
// WriteShadowUniforms produce.

func putF32(buf []byte, off int, vs ...float32) int {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return off
}

func (g *GPULight) marshal() []byte {
	buf := make([]byte, g.Size())
	off := putF32(buf, 0, g.Position[:]...)
	binary.LittleEndian.PutUint32(buf[off:], g.LightType)
	off = putF32(buf, off+4, g.Color[0], g.Color[1], g.Color[2], g.Intensity)
	off = putF32(buf, off, g.Direction[0], g.Direction[1], g.Direction[2], g.LightRange, g.InnerCone, g.OuterCone)
	binary.LittleEndian.PutUint32(buf[off:], g.CastsShadows)
	return buf
}

func (h *GPULightHeader) marshal() []byte {
	buf := make([]byte, h.Size())
	off := putF32(buf, 0, h.AmbientColor[:]...)
	binary.LittleEndian.PutUint32(buf[off:], h.LightCount)
	return buf
}

func (s *GPUShadowData) marshal() []byte {
	buf := make([]byte, s.Size())
	off := putF32(buf, 0, s.LightVP[:]...)
	putF32(buf, off, s.TexelSize[0], s.TexelSize[1], s.Bias, s.NormalBias)
	return buf
}

// marshalLightBuffer lays out the header followed by one record per active light.
func marshalLightBuffer(lights []Light, ambient [3]float32) []byte {
	enabled := activeLights(lights)
	header := GPULightHeader{AmbientColor: ambient, LightCount: uint32(len(enabled))}
	buf := header.marshal()
	for _, l := range enabled {
		g := l.GPU()
		buf = append(buf, g.marshal()...)
	}
	return buf
}
