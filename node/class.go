// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Class tags for every node variant the engine knows about.
package node

// Class identifies a node's concrete variant. The enumeration is
// closed: there is no runtime plugin registration.
type Class int

// Classes.
const (
	ClassGeometry Class = iota
	ClassCircle
	ClassTriangle
	ClassQuad
	ClassTransform
	ClassRotate
	ClassScale
	ClassTranslate
	ClassSkew
	ClassPath
	ClassSmoothPath
	ClassPathKeyMove
	ClassPathKeyLine
	ClassPathKeyBezier2
	ClassPathKeyBezier3
	ClassPathKeyClose
	ClassAnimatedFloat
	ClassAnimatedVec2
	ClassAnimatedVec3
	ClassAnimatedVec4
	ClassAnimatedQuat
	ClassAnimatedColor
	ClassAnimatedPath
	ClassAnimatedTime
	ClassAnimKeyFrameFloat
	ClassAnimKeyFrameVec2
	ClassAnimKeyFrameVec3
	ClassAnimKeyFrameVec4
	ClassAnimKeyFrameQuat
	ClassAnimKeyFrameColor
	ClassAnimKeyFramePath
	ClassBufferFloat
	ClassBufferVec2
	ClassBufferVec3
	ClassBufferVec4
	ClassBufferUInt
	ClassBlock
	ClassUniformFloat
	ClassUniformVec2
	ClassUniformVec3
	ClassUniformVec4
	ClassUniformMat4
	ClassNoiseFloat
	ClassNoiseVec2
	ClassNoiseVec3
	ClassNoiseVec4
	ClassVelocityFloat
	ClassVelocityVec2
	ClassVelocityVec3
	ClassVelocityVec4
	ClassStreamedBufferFloat
	ClassStreamedBufferVec2
	ClassStreamedBufferVec3
	ClassStreamedBufferVec4
	ClassTexture2D
	ClassTexture3D
	ClassTextureCube
	ClassMedia
	ClassDrawColor
	ClassDrawGradient
	ClassDrawGradient4
	ClassDrawHistogram
	ClassDrawMask
	ClassDrawNoise
	ClassDrawTexture
	ClassDrawWaveform
	ClassDrawDisplace
	ClassDrawPath
	ClassFilterAlpha
	ClassFilterColorMap
	ClassFilterContrast
	ClassFilterExposure
	ClassFilterInverseAlpha
	ClassFilterLinear2sRGB
	ClassFilterOpacity
	ClassFilterPremult
	ClassFilterSaturation
	ClassFilterSelector
	ClassFilterSRGB2Linear
	ClassGraphicConfig
	ClassCamera
	ClassRenderToTexture
	ClassGroup
	ClassTimeRangeFilter
	ClassColorStats
	ClassColorKey
	ClassSceneRoot

	classCount
)

var classNames = [classCount]string{
	ClassGeometry:            "Geometry",
	ClassCircle:              "Circle",
	ClassTriangle:            "Triangle",
	ClassQuad:                "Quad",
	ClassTransform:           "Transform",
	ClassRotate:              "Rotate",
	ClassScale:               "Scale",
	ClassTranslate:           "Translate",
	ClassSkew:                "Skew",
	ClassPath:                "Path",
	ClassSmoothPath:          "SmoothPath",
	ClassPathKeyMove:         "PathKeyMove",
	ClassPathKeyLine:         "PathKeyLine",
	ClassPathKeyBezier2:      "PathKeyBezier2",
	ClassPathKeyBezier3:      "PathKeyBezier3",
	ClassPathKeyClose:        "PathKeyClose",
	ClassAnimatedFloat:       "AnimatedFloat",
	ClassAnimatedVec2:        "AnimatedVec2",
	ClassAnimatedVec3:        "AnimatedVec3",
	ClassAnimatedVec4:        "AnimatedVec4",
	ClassAnimatedQuat:        "AnimatedQuat",
	ClassAnimatedColor:       "AnimatedColor",
	ClassAnimatedPath:        "AnimatedPath",
	ClassAnimatedTime:        "AnimatedTime",
	ClassAnimKeyFrameFloat:   "AnimKeyFrameFloat",
	ClassAnimKeyFrameVec2:    "AnimKeyFrameVec2",
	ClassAnimKeyFrameVec3:    "AnimKeyFrameVec3",
	ClassAnimKeyFrameVec4:    "AnimKeyFrameVec4",
	ClassAnimKeyFrameQuat:    "AnimKeyFrameQuat",
	ClassAnimKeyFrameColor:   "AnimKeyFrameColor",
	ClassAnimKeyFramePath:    "AnimKeyFramePath",
	ClassBufferFloat:         "BufferFloat",
	ClassBufferVec2:          "BufferVec2",
	ClassBufferVec3:          "BufferVec3",
	ClassBufferVec4:          "BufferVec4",
	ClassBufferUInt:          "BufferUInt",
	ClassBlock:               "Block",
	ClassUniformFloat:        "UniformFloat",
	ClassUniformVec2:         "UniformVec2",
	ClassUniformVec3:         "UniformVec3",
	ClassUniformVec4:         "UniformVec4",
	ClassUniformMat4:         "UniformMat4",
	ClassNoiseFloat:          "NoiseFloat",
	ClassNoiseVec2:           "NoiseVec2",
	ClassNoiseVec3:           "NoiseVec3",
	ClassNoiseVec4:           "NoiseVec4",
	ClassVelocityFloat:       "VelocityFloat",
	ClassVelocityVec2:        "VelocityVec2",
	ClassVelocityVec3:        "VelocityVec3",
	ClassVelocityVec4:        "VelocityVec4",
	ClassStreamedBufferFloat: "StreamedBufferFloat",
	ClassStreamedBufferVec2:  "StreamedBufferVec2",
	ClassStreamedBufferVec3:  "StreamedBufferVec3",
	ClassStreamedBufferVec4:  "StreamedBufferVec4",
	ClassTexture2D:           "Texture2D",
	ClassTexture3D:           "Texture3D",
	ClassTextureCube:         "TextureCube",
	ClassMedia:               "Media",
	ClassDrawColor:           "DrawColor",
	ClassDrawGradient:        "DrawGradient",
	ClassDrawGradient4:       "DrawGradient4",
	ClassDrawHistogram:       "DrawHistogram",
	ClassDrawMask:            "DrawMask",
	ClassDrawNoise:           "DrawNoise",
	ClassDrawTexture:         "DrawTexture",
	ClassDrawWaveform:        "DrawWaveform",
	ClassDrawDisplace:        "DrawDisplace",
	ClassDrawPath:            "DrawPath",
	ClassFilterAlpha:         "FilterAlpha",
	ClassFilterColorMap:      "FilterColorMap",
	ClassFilterContrast:      "FilterContrast",
	ClassFilterExposure:      "FilterExposure",
	ClassFilterInverseAlpha:  "FilterInverseAlpha",
	ClassFilterLinear2sRGB:   "FilterLinear2sRGB",
	ClassFilterOpacity:       "FilterOpacity",
	ClassFilterPremult:       "FilterPremult",
	ClassFilterSaturation:    "FilterSaturation",
	ClassFilterSelector:      "FilterSelector",
	ClassFilterSRGB2Linear:   "FilterSRGB2Linear",
	ClassGraphicConfig:       "GraphicConfig",
	ClassCamera:              "Camera",
	ClassRenderToTexture:     "RenderToTexture",
	ClassGroup:               "Group",
	ClassTimeRangeFilter:     "TimeRangeFilter",
	ClassColorStats:          "ColorStats",
	ClassColorKey:            "ColorKey",
	ClassSceneRoot:           "SceneRoot",
}

// String returns the class's declared name.
func (c Class) String() string {
	if c < 0 || c >= classCount {
		return "unknown"
	}
	return classNames[c]
}
