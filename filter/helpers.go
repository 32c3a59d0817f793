// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package filter

// Helper snippet blocks. Each block is self-contained GLSL prepended at
// most once per composed shader, in the declaration order below.

const helperMiscSrc = `/* misc helpers */
float ngli_luma(vec3 rgb)
{
    return dot(rgb, vec3(0.2126, 0.7152, 0.0722));
}

float ngli_linear_norm(float x, float lo, float hi)
{
    return clamp((x - lo) / (hi - lo), 0.0, 1.0);
}
`

const helperSRGBSrc = `/* sRGB helpers */
vec3 ngli_srgb2linear(vec3 c)
{
    return mix(c / 12.92, pow((c + 0.055) / 1.055, vec3(2.4)), step(0.04045, c));
}

vec3 ngli_linear2srgb(vec3 c)
{
    return mix(c * 12.92, 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055, step(0.0031308, c));
}
`

const helperOkLabSrc = `/* OkLab helpers */
vec3 ngli_linear2oklab(vec3 c)
{
    float l = 0.4122214708 * c.r + 0.5363325363 * c.g + 0.0514459929 * c.b;
    float m = 0.2119034982 * c.r + 0.6806995451 * c.g + 0.1073969566 * c.b;
    float s = 0.0883024619 * c.r + 0.2817188376 * c.g + 0.6299787005 * c.b;
    l = pow(l, 1.0 / 3.0);
    m = pow(m, 1.0 / 3.0);
    s = pow(s, 1.0 / 3.0);
    return vec3(
        0.2104542553 * l + 0.7936177850 * m - 0.0040720468 * s,
        1.9779984951 * l - 2.4285922050 * m + 0.4505937099 * s,
        0.0259040371 * l + 0.7827717662 * m - 0.8086757660 * s);
}

vec3 ngli_oklab2linear(vec3 c)
{
    float l = c.x + 0.3963377774 * c.y + 0.2158037573 * c.z;
    float m = c.x - 0.1055613458 * c.y - 0.0638541728 * c.z;
    float s = c.x - 0.0894841775 * c.y - 1.2914855480 * c.z;
    l = l * l * l;
    m = m * m * m;
    s = s * s * s;
    return vec3(
        +4.0767416621 * l - 3.3077115913 * m + 0.2309699292 * s,
        -1.2684380046 * l + 2.6097574011 * m - 0.3413193965 * s,
        -0.0041960863 * l - 0.7034186147 * m + 1.7076147010 * s);
}
`

const helperNoiseSrc = `/* noise helpers */
uint ngli_hash(uint x)
{
    x ^= x >> 16; x *= 0x7feb352du;
    x ^= x >> 15; x *= 0x846ca68bu;
    x ^= x >> 16;
    return x;
}

float ngli_rand(vec2 p, uint seed)
{
    uint h = ngli_hash(floatBitsToUint(p.x) ^ ngli_hash(floatBitsToUint(p.y) ^ seed));
    return float(h) * (1.0 / float(0xffffffffu));
}

vec2 ngli_grad(vec2 p, uint seed)
{
    float a = ngli_rand(p, seed) * 6.283185307179586;
    return vec2(cos(a), sin(a));
}

float ngli_perlin(vec2 p, uint seed)
{
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * f * (f * (f * 6.0 - 15.0) + 10.0);
    float g00 = dot(ngli_grad(i, seed), f);
    float g10 = dot(ngli_grad(i + vec2(1.0, 0.0), seed), f - vec2(1.0, 0.0));
    float g01 = dot(ngli_grad(i + vec2(0.0, 1.0), seed), f - vec2(0.0, 1.0));
    float g11 = dot(ngli_grad(i + vec2(1.0, 1.0), seed), f - vec2(1.0, 1.0));
    return mix(mix(g00, g10, u.x), mix(g01, g11, u.x), u.y);
}
`

// helperBlocks pairs each Helpers bit with its source, in emission
// order.
var helperBlocks = []struct {
	bit Helpers
	src string
}{
	{HelperMisc, helperMiscSrc},
	{HelperSRGB, helperSRGBSrc},
	{HelperOkLab, helperOkLabSrc},
	{HelperNoise, helperNoiseSrc},
}
