package gltfskema

// Extension is the placeholder payload of one entry in an "extensions"
// object. Its content is not decoded.
type Extension struct{}

// Extras is the placeholder for an "extras" value. Its content is not decoded.
type Extras struct{}

// Extensible carries the open extension points shared by every entity.
type Extensible struct {
	Extensions map[string]Extension
	Extras     *Extras // nil when absent
}

// Version is a "<major>.<minor>" asset version.
type Version struct {
	Major uint32
	Minor uint32
}

// Component types.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// Accessor types.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// Buffer view targets.
const (
	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963
)

// Primitive modes.
const (
	ModePoints        = 0
	ModeLines         = 1
	ModeLineLoop      = 2
	ModeLineStrip     = 3
	ModeTriangles     = 4
	ModeTriangleStrip = 5
	ModeTriangleFan   = 6
)

// Sampler filters and wrap modes.
const (
	FilterNearest              = 9728
	FilterLinear               = 9729
	FilterNearestMipmapNearest = 9984
	FilterLinearMipmapNearest  = 9985
	FilterNearestMipmapLinear  = 9986
	FilterLinearMipmapLinear   = 9987

	WrapClampToEdge    = 33071
	WrapMirroredRepeat = 33648
	WrapRepeat         = 10497
)

// Material alpha modes.
const (
	AlphaOpaque = "OPAQUE"
	AlphaMask   = "MASK"
	AlphaBlend  = "BLEND"
)

// Animation sampler interpolations and channel target paths.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"

	PathTranslation = "translation"
	PathRotation    = "rotation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// Camera types.
const (
	CameraPerspectiveType  = "perspective"
	CameraOrthographicType = "orthographic"
)

// Document is the root of a glTF asset. Child entities reference each other
// by index into the top-level sequences; indices are not range-checked.
type Document struct {
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Accessors          []Accessor
	Animations         []Animation
	Asset              Asset
	Buffers            []Buffer
	BufferViews        []BufferView
	Cameras            []Camera
	Images             []Image
	Materials          []Material
	Meshes             []Mesh
	Nodes              []Node
	Samplers           []Sampler
	Scene              *uint32
	Scenes             []Scene
	Skins              []Skin
	Textures           []Texture
	Extensible
}

type Asset struct {
	Copyright  *string
	Generator  *string
	Version    Version
	MinVersion *Version
	Extensible
}

type AccessorSparseIndices struct {
	BufferView    uint32
	ByteOffset    uint32
	ComponentType uint32
	Extensible
}

type AccessorSparseValues struct {
	BufferView uint32
	ByteOffset uint32
	Extensible
}

type AccessorSparse struct {
	Count   uint32
	Indices AccessorSparseIndices
	Values  AccessorSparseValues
	Extensible
}

type Accessor struct {
	BufferView    *uint32
	ByteOffset    uint32
	ComponentType uint32
	Normalized    bool
	Count         uint32
	Type          string
	Max           []float64
	Min           []float64
	Sparse        *AccessorSparse
	Name          *string
	Extensible
}

type AnimationChannelTarget struct {
	Node *uint32
	Path string
	Extensible
}

type AnimationChannel struct {
	Sampler uint32
	Target  AnimationChannelTarget
	Extensible
}

type AnimationSampler struct {
	Input         uint32
	Interpolation string // default LINEAR
	Output        uint32
	Extensible
}

type Animation struct {
	Channels []AnimationChannel
	Samplers []AnimationSampler
	Name     *string
	Extensible
}

type Buffer struct {
	URI        *string
	ByteLength uint32
	Name       *string
	Extensible
}

type BufferView struct {
	Buffer     uint32
	ByteOffset uint32
	ByteLength uint32
	ByteStride *uint32
	Target     *uint32
	Name       *string
	Extensible
}

type CameraOrthographic struct {
	XMag  float64
	YMag  float64
	ZFar  float64
	ZNear float64
	Extensible
}

type CameraPerspective struct {
	AspectRatio *float64
	YFov        float64
	ZFar        *float64 // nil means infinite projection
	ZNear       float64
	Extensible
}

type Camera struct {
	Orthographic *CameraOrthographic
	Perspective  *CameraPerspective
	Type         string
	Name         *string
	Extensible
}

type Image struct {
	URI        *string
	MimeType   *string
	BufferView *uint32
	Name       *string
	Extensible
}

// TextureInfo references a texture and the texcoord set it samples.
type TextureInfo struct {
	Index    uint32
	TexCoord uint32
	Extensible
}

type NormalTextureInfo struct {
	Index    uint32
	TexCoord uint32
	Scale    float64 // default 1
	Extensible
}

type OcclusionTextureInfo struct {
	Index    uint32
	TexCoord uint32
	Strength float64 // default 1
	Extensible
}

type PbrMetallicRoughness struct {
	BaseColorFactor          [4]float64
	BaseColorTexture         *TextureInfo
	MetallicFactor           float64
	RoughnessFactor          float64
	MetallicRoughnessTexture *TextureInfo
	Extensible
}

type Material struct {
	Name                 *string
	PbrMetallicRoughness *PbrMetallicRoughness
	NormalTexture        *NormalTextureInfo
	OcclusionTexture     *OcclusionTextureInfo
	EmissiveTexture      *TextureInfo
	EmissiveFactor       [3]float64
	AlphaMode            string
	AlphaCutoff          float64
	DoubleSided          bool
	Extensible
}

type MeshPrimitive struct {
	Attributes map[string]uint32
	Indices    *uint32
	Material   *uint32
	Mode       uint32
	Targets    []uint32
	Extensible
}

type Mesh struct {
	Primitives []MeshPrimitive
	Weights    []float64
	Name       *string
	Extensible
}

// Node is a scene graph node. Matrix is column-major.
type Node struct {
	Camera      *uint32
	Children    []uint32
	Skin        *uint32
	Matrix      [16]float64
	Mesh        *uint32
	Rotation    [4]float64 // x, y, z, w
	Scale       [3]float64
	Translation [3]float64
	Weights     []float64
	Name        *string
	Extensible
}

type Sampler struct {
	MagFilter *uint32
	MinFilter *uint32
	WrapS     uint32
	WrapT     uint32
	Name      *string
	Extensible
}

type Scene struct {
	Nodes []uint32
	Name  *string
	Extensible
}

type Skin struct {
	InverseBindMatrices *uint32
	Skeleton            *uint32
	Joints              []uint32
	Name                *string
	Extensible
}

type Texture struct {
	Sampler *uint32
	Source  *uint32
	Name    *string
	Extensible
}
