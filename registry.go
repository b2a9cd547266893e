package gltfskema

import (
	"sync"

	"github.com/reoring/gltfskema/schema"
)

// RootFieldMap returns the immutable bindings of the document root. Nested
// entities are reached through it; the maps are built once per process.
func RootFieldMap() *schema.FieldMap[Document] { return registry() }

var registry = sync.OnceValue(buildRegistry)

var (
	extensionsDecoder = schema.Map(schema.Skip[Extension]())
	extrasDecoder     = schema.Skip[Extras]()
	versionDecoder    = schema.Transform(schema.String(), parseVersion)
)

func parseVersion(s string) (Version, error) {
	major, minor, err := schema.ParseVersion(s)
	if err != nil {
		return Version{}, err
	}
	return Version{Major: major, Minor: minor}, nil
}

// entity appends the extensions/extras bindings every entity carries.
func entity[T any](name string, defaults func() T, ext func(*T) *Extensible, fields ...schema.Field[T]) *schema.FieldMap[T] {
	fields = append(fields,
		schema.Bind("extensions", extensionsDecoder, func(v *T) *map[string]Extension { return &ext(v).Extensions }),
		schema.Opt("extras", extrasDecoder, func(v *T) **Extras { return &ext(v).Extras }),
	)
	return schema.MustFieldMap(name, defaults, fields...)
}

func u32[T any](key string, sel func(*T) *uint32) schema.Field[T] {
	return schema.Bind(key, schema.Uint32(), sel)
}

func optU32[T any](key string, sel func(*T) **uint32) schema.Field[T] {
	return schema.Opt(key, schema.Uint32(), sel)
}

func u32s[T any](key string, sel func(*T) *[]uint32) schema.Field[T] {
	return schema.Bind(key, schema.Seq(schema.Uint32()), sel)
}

func f64[T any](key string, sel func(*T) *float64) schema.Field[T] {
	return schema.Bind(key, schema.Float64(), sel)
}

func optF64[T any](key string, sel func(*T) **float64) schema.Field[T] {
	return schema.Opt(key, schema.Float64(), sel)
}

func f64s[T any](key string, sel func(*T) *[]float64) schema.Field[T] {
	return schema.Bind(key, schema.Seq(schema.Float64()), sel)
}

func str[T any](key string, sel func(*T) *string) schema.Field[T] {
	return schema.Bind(key, schema.String(), sel)
}

func optStr[T any](key string, sel func(*T) **string) schema.Field[T] {
	return schema.Opt(key, schema.String(), sel)
}

func named[T any](sel func(*T) **string) schema.Field[T] { return optStr("name", sel) }

func seq[T, V any](key string, elem schema.Decoder[V], sel func(*T) *[]V) schema.Field[T] {
	return schema.Bind(key, schema.Seq(elem), sel)
}

func defaultAnimationSampler() AnimationSampler {
	return AnimationSampler{Interpolation: InterpolationLinear}
}

func defaultNormalTexture() NormalTextureInfo { return NormalTextureInfo{Scale: 1} }

func defaultOcclusionTexture() OcclusionTextureInfo { return OcclusionTextureInfo{Strength: 1} }

func defaultPbr() PbrMetallicRoughness {
	return PbrMetallicRoughness{
		BaseColorFactor: [4]float64{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
	}
}

func defaultMaterial() Material {
	return Material{AlphaMode: AlphaOpaque, AlphaCutoff: 0.5}
}

func defaultMeshPrimitive() MeshPrimitive { return MeshPrimitive{Mode: ModeTriangles} }

func defaultNode() Node {
	return Node{
		Matrix: [16]float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

func defaultSampler() Sampler { return Sampler{WrapS: WrapRepeat, WrapT: WrapRepeat} }

func buildRegistry() *schema.FieldMap[Document] {
	sparseIndices := entity("accessor sparse indices", nil,
		func(v *AccessorSparseIndices) *Extensible { return &v.Extensible },
		u32("bufferView", func(v *AccessorSparseIndices) *uint32 { return &v.BufferView }),
		u32("byteOffset", func(v *AccessorSparseIndices) *uint32 { return &v.ByteOffset }),
		u32("componentType", func(v *AccessorSparseIndices) *uint32 { return &v.ComponentType }),
	)
	sparseValues := entity("accessor sparse values", nil,
		func(v *AccessorSparseValues) *Extensible { return &v.Extensible },
		u32("bufferView", func(v *AccessorSparseValues) *uint32 { return &v.BufferView }),
		u32("byteOffset", func(v *AccessorSparseValues) *uint32 { return &v.ByteOffset }),
	)
	sparse := entity("accessor sparse", nil,
		func(v *AccessorSparse) *Extensible { return &v.Extensible },
		u32("count", func(v *AccessorSparse) *uint32 { return &v.Count }),
		schema.Bind[AccessorSparse, AccessorSparseIndices]("indices", sparseIndices,
			func(v *AccessorSparse) *AccessorSparseIndices { return &v.Indices }),
		schema.Bind[AccessorSparse, AccessorSparseValues]("values", sparseValues,
			func(v *AccessorSparse) *AccessorSparseValues { return &v.Values }),
	)
	accessor := entity("accessor", nil,
		func(v *Accessor) *Extensible { return &v.Extensible },
		optU32("bufferView", func(v *Accessor) **uint32 { return &v.BufferView }),
		u32("byteOffset", func(v *Accessor) *uint32 { return &v.ByteOffset }),
		u32("componentType", func(v *Accessor) *uint32 { return &v.ComponentType }),
		schema.Bind("normalized", schema.Bool(), func(v *Accessor) *bool { return &v.Normalized }),
		u32("count", func(v *Accessor) *uint32 { return &v.Count }),
		str("type", func(v *Accessor) *string { return &v.Type }),
		f64s("max", func(v *Accessor) *[]float64 { return &v.Max }),
		f64s("min", func(v *Accessor) *[]float64 { return &v.Min }),
		schema.Opt[Accessor, AccessorSparse]("sparse", sparse, func(v *Accessor) **AccessorSparse { return &v.Sparse }),
		named(func(v *Accessor) **string { return &v.Name }),
	)

	channelTarget := entity("animation channel target", nil,
		func(v *AnimationChannelTarget) *Extensible { return &v.Extensible },
		optU32("node", func(v *AnimationChannelTarget) **uint32 { return &v.Node }),
		str("path", func(v *AnimationChannelTarget) *string { return &v.Path }),
	)
	channel := entity("animation channel", nil,
		func(v *AnimationChannel) *Extensible { return &v.Extensible },
		u32("sampler", func(v *AnimationChannel) *uint32 { return &v.Sampler }),
		schema.Bind[AnimationChannel, AnimationChannelTarget]("target", channelTarget,
			func(v *AnimationChannel) *AnimationChannelTarget { return &v.Target }),
	)
	animationSampler := entity("animation sampler", defaultAnimationSampler,
		func(v *AnimationSampler) *Extensible { return &v.Extensible },
		u32("input", func(v *AnimationSampler) *uint32 { return &v.Input }),
		str("interpolation", func(v *AnimationSampler) *string { return &v.Interpolation }),
		u32("output", func(v *AnimationSampler) *uint32 { return &v.Output }),
	)
	animation := entity("animation", nil,
		func(v *Animation) *Extensible { return &v.Extensible },
		seq[Animation, AnimationChannel]("channels", channel, func(v *Animation) *[]AnimationChannel { return &v.Channels }),
		seq[Animation, AnimationSampler]("samplers", animationSampler, func(v *Animation) *[]AnimationSampler { return &v.Samplers }),
		named(func(v *Animation) **string { return &v.Name }),
	)

	asset := entity("asset", nil,
		func(v *Asset) *Extensible { return &v.Extensible },
		optStr("copyright", func(v *Asset) **string { return &v.Copyright }),
		optStr("generator", func(v *Asset) **string { return &v.Generator }),
		schema.Bind("version", versionDecoder, func(v *Asset) *Version { return &v.Version }),
		schema.Opt("minVersion", versionDecoder, func(v *Asset) **Version { return &v.MinVersion }),
	)

	buffer := entity("buffer", nil,
		func(v *Buffer) *Extensible { return &v.Extensible },
		optStr("uri", func(v *Buffer) **string { return &v.URI }),
		u32("byteLength", func(v *Buffer) *uint32 { return &v.ByteLength }),
		named(func(v *Buffer) **string { return &v.Name }),
	)
	bufferView := entity("buffer view", nil,
		func(v *BufferView) *Extensible { return &v.Extensible },
		u32("buffer", func(v *BufferView) *uint32 { return &v.Buffer }),
		u32("byteOffset", func(v *BufferView) *uint32 { return &v.ByteOffset }),
		u32("byteLength", func(v *BufferView) *uint32 { return &v.ByteLength }),
		optU32("byteStride", func(v *BufferView) **uint32 { return &v.ByteStride }),
		optU32("target", func(v *BufferView) **uint32 { return &v.Target }),
		named(func(v *BufferView) **string { return &v.Name }),
	)

	orthographic := entity("camera orthographic", nil,
		func(v *CameraOrthographic) *Extensible { return &v.Extensible },
		f64("xmag", func(v *CameraOrthographic) *float64 { return &v.XMag }),
		f64("ymag", func(v *CameraOrthographic) *float64 { return &v.YMag }),
		f64("zfar", func(v *CameraOrthographic) *float64 { return &v.ZFar }),
		f64("znear", func(v *CameraOrthographic) *float64 { return &v.ZNear }),
	)
	perspective := entity("camera perspective", nil,
		func(v *CameraPerspective) *Extensible { return &v.Extensible },
		optF64("aspectRatio", func(v *CameraPerspective) **float64 { return &v.AspectRatio }),
		f64("yfov", func(v *CameraPerspective) *float64 { return &v.YFov }),
		optF64("zfar", func(v *CameraPerspective) **float64 { return &v.ZFar }),
		f64("znear", func(v *CameraPerspective) *float64 { return &v.ZNear }),
	)
	camera := entity("camera", nil,
		func(v *Camera) *Extensible { return &v.Extensible },
		schema.Opt[Camera, CameraOrthographic]("orthographic", orthographic,
			func(v *Camera) **CameraOrthographic { return &v.Orthographic }),
		schema.Opt[Camera, CameraPerspective]("perspective", perspective,
			func(v *Camera) **CameraPerspective { return &v.Perspective }),
		str("type", func(v *Camera) *string { return &v.Type }),
		named(func(v *Camera) **string { return &v.Name }),
	)

	image := entity("image", nil,
		func(v *Image) *Extensible { return &v.Extensible },
		optStr("uri", func(v *Image) **string { return &v.URI }),
		optStr("mimeType", func(v *Image) **string { return &v.MimeType }),
		optU32("bufferView", func(v *Image) **uint32 { return &v.BufferView }),
		named(func(v *Image) **string { return &v.Name }),
	)

	textureInfo := entity("texture info", nil,
		func(v *TextureInfo) *Extensible { return &v.Extensible },
		u32("index", func(v *TextureInfo) *uint32 { return &v.Index }),
		u32("texCoord", func(v *TextureInfo) *uint32 { return &v.TexCoord }),
	)
	normalTexture := entity("material normal texture", defaultNormalTexture,
		func(v *NormalTextureInfo) *Extensible { return &v.Extensible },
		u32("index", func(v *NormalTextureInfo) *uint32 { return &v.Index }),
		u32("texCoord", func(v *NormalTextureInfo) *uint32 { return &v.TexCoord }),
		f64("scale", func(v *NormalTextureInfo) *float64 { return &v.Scale }),
	)
	occlusionTexture := entity("material occlusion texture", defaultOcclusionTexture,
		func(v *OcclusionTextureInfo) *Extensible { return &v.Extensible },
		u32("index", func(v *OcclusionTextureInfo) *uint32 { return &v.Index }),
		u32("texCoord", func(v *OcclusionTextureInfo) *uint32 { return &v.TexCoord }),
		f64("strength", func(v *OcclusionTextureInfo) *float64 { return &v.Strength }),
	)
	pbr := entity("material PBR metallic roughness", defaultPbr,
		func(v *PbrMetallicRoughness) *Extensible { return &v.Extensible },
		schema.Fixed("baseColorFactor", schema.Float64(), func(v *PbrMetallicRoughness) []float64 { return v.BaseColorFactor[:] }),
		schema.Opt[PbrMetallicRoughness, TextureInfo]("baseColorTexture", textureInfo,
			func(v *PbrMetallicRoughness) **TextureInfo { return &v.BaseColorTexture }),
		f64("metallicFactor", func(v *PbrMetallicRoughness) *float64 { return &v.MetallicFactor }),
		f64("roughnessFactor", func(v *PbrMetallicRoughness) *float64 { return &v.RoughnessFactor }),
		schema.Opt[PbrMetallicRoughness, TextureInfo]("metallicRoughnessTexture", textureInfo,
			func(v *PbrMetallicRoughness) **TextureInfo { return &v.MetallicRoughnessTexture }),
	)
	material := entity("material", defaultMaterial,
		func(v *Material) *Extensible { return &v.Extensible },
		named(func(v *Material) **string { return &v.Name }),
		schema.Opt[Material, PbrMetallicRoughness]("pbrMetallicRoughness", pbr,
			func(v *Material) **PbrMetallicRoughness { return &v.PbrMetallicRoughness }),
		schema.Opt[Material, NormalTextureInfo]("normalTexture", normalTexture,
			func(v *Material) **NormalTextureInfo { return &v.NormalTexture }),
		schema.Opt[Material, OcclusionTextureInfo]("occlusionTexture", occlusionTexture,
			func(v *Material) **OcclusionTextureInfo { return &v.OcclusionTexture }),
		schema.Opt[Material, TextureInfo]("emissiveTexture", textureInfo,
			func(v *Material) **TextureInfo { return &v.EmissiveTexture }),
		schema.Fixed("emissiveFactor", schema.Float64(), func(v *Material) []float64 { return v.EmissiveFactor[:] }),
		str("alphaMode", func(v *Material) *string { return &v.AlphaMode }),
		f64("alphaCutoff", func(v *Material) *float64 { return &v.AlphaCutoff }),
		schema.Bind("doubleSided", schema.Bool(), func(v *Material) *bool { return &v.DoubleSided }),
	)

	primitive := entity("mesh primitive", defaultMeshPrimitive,
		func(v *MeshPrimitive) *Extensible { return &v.Extensible },
		schema.Bind("attributes", schema.Map(schema.Uint32()), func(v *MeshPrimitive) *map[string]uint32 { return &v.Attributes }),
		optU32("indices", func(v *MeshPrimitive) **uint32 { return &v.Indices }),
		optU32("material", func(v *MeshPrimitive) **uint32 { return &v.Material }),
		u32("mode", func(v *MeshPrimitive) *uint32 { return &v.Mode }),
		u32s("targets", func(v *MeshPrimitive) *[]uint32 { return &v.Targets }),
	)
	mesh := entity("mesh", nil,
		func(v *Mesh) *Extensible { return &v.Extensible },
		seq[Mesh, MeshPrimitive]("primitives", primitive, func(v *Mesh) *[]MeshPrimitive { return &v.Primitives }),
		f64s("weights", func(v *Mesh) *[]float64 { return &v.Weights }),
		named(func(v *Mesh) **string { return &v.Name }),
	)

	node := entity("node", defaultNode,
		func(v *Node) *Extensible { return &v.Extensible },
		optU32("camera", func(v *Node) **uint32 { return &v.Camera }),
		u32s("children", func(v *Node) *[]uint32 { return &v.Children }),
		optU32("skin", func(v *Node) **uint32 { return &v.Skin }),
		schema.Fixed("matrix", schema.Float64(), func(v *Node) []float64 { return v.Matrix[:] }),
		optU32("mesh", func(v *Node) **uint32 { return &v.Mesh }),
		schema.Fixed("rotation", schema.Float64(), func(v *Node) []float64 { return v.Rotation[:] }),
		schema.Fixed("scale", schema.Float64(), func(v *Node) []float64 { return v.Scale[:] }),
		schema.Fixed("translation", schema.Float64(), func(v *Node) []float64 { return v.Translation[:] }),
		f64s("weights", func(v *Node) *[]float64 { return &v.Weights }),
		named(func(v *Node) **string { return &v.Name }),
	)

	sampler := entity("sampler", defaultSampler,
		func(v *Sampler) *Extensible { return &v.Extensible },
		optU32("magFilter", func(v *Sampler) **uint32 { return &v.MagFilter }),
		optU32("minFilter", func(v *Sampler) **uint32 { return &v.MinFilter }),
		u32("wrapS", func(v *Sampler) *uint32 { return &v.WrapS }),
		u32("wrapT", func(v *Sampler) *uint32 { return &v.WrapT }),
		named(func(v *Sampler) **string { return &v.Name }),
	)
	scene := entity("scene", nil,
		func(v *Scene) *Extensible { return &v.Extensible },
		u32s("nodes", func(v *Scene) *[]uint32 { return &v.Nodes }),
		named(func(v *Scene) **string { return &v.Name }),
	)
	skin := entity("skin", nil,
		func(v *Skin) *Extensible { return &v.Extensible },
		optU32("inverseBindMatrices", func(v *Skin) **uint32 { return &v.InverseBindMatrices }),
		optU32("skeleton", func(v *Skin) **uint32 { return &v.Skeleton }),
		u32s("joints", func(v *Skin) *[]uint32 { return &v.Joints }),
		named(func(v *Skin) **string { return &v.Name }),
	)
	texture := entity("texture", nil,
		func(v *Texture) *Extensible { return &v.Extensible },
		optU32("sampler", func(v *Texture) **uint32 { return &v.Sampler }),
		optU32("source", func(v *Texture) **uint32 { return &v.Source }),
		named(func(v *Texture) **string { return &v.Name }),
	)

	return entity("document", nil,
		func(v *Document) *Extensible { return &v.Extensible },
		seq("extensionsUsed", schema.String(), func(v *Document) *[]string { return &v.ExtensionsUsed }),
		seq("extensionsRequired", schema.String(), func(v *Document) *[]string { return &v.ExtensionsRequired }),
		seq[Document, Accessor]("accessors", accessor, func(v *Document) *[]Accessor { return &v.Accessors }),
		seq[Document, Animation]("animations", animation, func(v *Document) *[]Animation { return &v.Animations }),
		schema.Bind[Document, Asset]("asset", asset, func(v *Document) *Asset { return &v.Asset }),
		seq[Document, Buffer]("buffers", buffer, func(v *Document) *[]Buffer { return &v.Buffers }),
		seq[Document, BufferView]("bufferViews", bufferView, func(v *Document) *[]BufferView { return &v.BufferViews }),
		seq[Document, Camera]("cameras", camera, func(v *Document) *[]Camera { return &v.Cameras }),
		seq[Document, Image]("images", image, func(v *Document) *[]Image { return &v.Images }),
		seq[Document, Material]("materials", material, func(v *Document) *[]Material { return &v.Materials }),
		seq[Document, Mesh]("meshes", mesh, func(v *Document) *[]Mesh { return &v.Meshes }),
		seq[Document, Node]("nodes", node, func(v *Document) *[]Node { return &v.Nodes }),
		seq[Document, Sampler]("samplers", sampler, func(v *Document) *[]Sampler { return &v.Samplers }),
		optU32("scene", func(v *Document) **uint32 { return &v.Scene }),
		seq[Document, Scene]("scenes", scene, func(v *Document) *[]Scene { return &v.Scenes }),
		seq[Document, Skin]("skins", skin, func(v *Document) *[]Skin { return &v.Skins }),
		seq[Document, Texture]("textures", texture, func(v *Document) *[]Texture { return &v.Textures }),
	)
}
