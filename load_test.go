package gltfskema_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-test/deep"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	gltf "github.com/reoring/gltfskema"
)

const minimal = `{"asset":{"version":"2.0"}}`

func mustLoad(t *testing.T, in string, opts ...gltf.Options) *gltf.Document {
	t.Helper()
	doc, err := gltf.LoadString(in, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func mustFail(t *testing.T, in string, code string, opts ...gltf.Options) *gltf.Error {
	t.Helper()
	_, err := gltf.LoadString(in, opts...)
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	e, ok := gltf.AsError(err)
	if !ok {
		t.Fatalf("expected *gltf.Error, got %T: %v", err, err)
	}
	if e.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, e.Code, e)
	}
	return e
}

func TestLoad_MinimalDocument(t *testing.T) {
	doc := mustLoad(t, minimal)
	if doc.Asset.Version != (gltf.Version{Major: 2, Minor: 0}) {
		t.Fatalf("version: got %+v", doc.Asset.Version)
	}
	if doc.Scene != nil {
		t.Fatalf("default scene must be absent")
	}
	if n := len(doc.Accessors) + len(doc.Animations) + len(doc.Buffers) + len(doc.BufferViews) +
		len(doc.Cameras) + len(doc.Images) + len(doc.Materials) + len(doc.Meshes) + len(doc.Nodes) +
		len(doc.Samplers) + len(doc.Scenes) + len(doc.Skins) + len(doc.Textures) +
		len(doc.ExtensionsUsed) + len(doc.ExtensionsRequired); n != 0 {
		t.Fatalf("expected every sequence empty, found %d entries", n)
	}
}

func TestLoad_VersionWithoutMinor(t *testing.T) {
	e := mustFail(t, `{"asset":{"version":"2"}}`, gltf.CodeInvalidVersionFormat)
	if e.Entity != "asset" || e.Field != "version" || e.Path != "/asset/version" {
		t.Fatalf("unexpected context: %+v", e)
	}
	if !errors.Is(e, gltf.ErrInvalidVersionFormat) {
		t.Fatalf("expected errors.Is ErrInvalidVersionFormat")
	}
}

func TestLoad_MinVersion(t *testing.T) {
	doc := mustLoad(t, `{"asset":{"version":"2.0","minVersion":"2.1"}}`)
	if doc.Asset.MinVersion == nil || *doc.Asset.MinVersion != (gltf.Version{Major: 2, Minor: 1}) {
		t.Fatalf("minVersion: got %+v", doc.Asset.MinVersion)
	}
	mustFail(t, `{"asset":{"version":"2.0","minVersion":"2.1.0"}}`, gltf.CodeInvalidVersionFormat)
	mustFail(t, `{"asset":{"version":2.0}}`, gltf.CodeTypeMismatch)
}

func TestLoad_RotationArity(t *testing.T) {
	e := mustFail(t, `{"asset":{"version":"2.0"},"nodes":[{"rotation":[0,0,0]}]}`, gltf.CodeCardinalityMismatch)
	if e.Entity != "node" || e.Field != "rotation" || e.Path != "/nodes/0/rotation" {
		t.Fatalf("unexpected context: %+v", e)
	}
	if !strings.Contains(e.Error(), "cardinality_mismatch at /nodes/0/rotation (node.rotation)") {
		t.Fatalf("unexpected rendering: %s", e.Error())
	}
	mustFail(t, `{"asset":{"version":"2.0"},"nodes":[{"matrix":[1,0,0,0]}]}`, gltf.CodeCardinalityMismatch)
	mustFail(t, `{"asset":{"version":"2.0"},"materials":[{"emissiveFactor":[0,0,0,0]}]}`, gltf.CodeCardinalityMismatch)
}

func TestLoad_AttributeNotAnInteger(t *testing.T) {
	in := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":1.5}}]}]}`
	e := mustFail(t, in, gltf.CodeNotAnInteger)
	if e.Path != "/meshes/0/primitives/0/attributes/POSITION" {
		t.Fatalf("unexpected path: %q", e.Path)
	}
	if e.Entity != "mesh primitive" || e.Field != "attributes" || e.Value != "1.5" {
		t.Fatalf("unexpected context: %+v", e)
	}
}

func TestLoad_IndicesMustBeExactIntegers(t *testing.T) {
	for _, in := range []string{
		`{"asset":{"version":"2.0"},"scene":-1}`,
		`{"asset":{"version":"2.0"},"scene":0.5}`,
		`{"asset":{"version":"2.0"},"nodes":[{"children":[1,4294967296]}]}`,
		`{"asset":{"version":"2.0"},"accessors":[{"count":1e10}]}`,
	} {
		mustFail(t, in, gltf.CodeNotAnInteger)
	}
	doc := mustLoad(t, `{"asset":{"version":"2.0"},"scene":4294967295}`)
	if doc.Scene == nil || *doc.Scene != 4294967295 {
		t.Fatalf("expected max uint32 scene, got %v", doc.Scene)
	}
}

func TestLoad_UnknownTopLevelKey(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	doc := mustLoad(t, `{"asset":{"version":"2.0"},"unknownTopLevelKey":42}`, gltf.Options{Logger: zap.New(core)})
	if diff := deep.Equal(doc, mustLoad(t, minimal)); diff != nil {
		t.Fatalf("unknown key changed the result: %v", diff)
	}
	entries := logs.FilterMessage("unknown property").All()
	if len(entries) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["entity"] != "document" || ctx["key"] != "unknownTopLevelKey" {
		t.Fatalf("unexpected diagnostic: %v", ctx)
	}
}

func TestLoad_UnknownNestedKeysAreSkipped(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	in := `{"asset":{"version":"2.0","future":{"a":[1,2]}},"nodes":[{"mesh":1,"lod":[{"x":1}],"name":"n"}]}`
	doc := mustLoad(t, in, gltf.Options{Logger: zap.New(core)})
	if len(doc.Nodes) != 1 || doc.Nodes[0].Mesh == nil || *doc.Nodes[0].Mesh != 1 || *doc.Nodes[0].Name != "n" {
		t.Fatalf("unexpected nodes: %+v", doc.Nodes)
	}
	if logs.FilterMessage("unknown property").Len() != 2 {
		t.Fatalf("expected two diagnostics, got %d", logs.Len())
	}
	if logs.FilterField(zap.String("path", "/nodes/0/lod")).Len() != 1 {
		t.Fatalf("expected diagnostic for /nodes/0/lod")
	}
}

func TestLoad_Idempotent(t *testing.T) {
	a := mustLoad(t, sampleAsset)
	b := mustLoad(t, sampleAsset)
	if diff := deep.Equal(a, b); diff != nil {
		t.Fatalf("loads differ: %v", diff)
	}
	a.Nodes[0].Children[0] = 99
	a.Meshes[0].Primitives[0].Attributes["POSITION"] = 99
	if b.Nodes[0].Children[0] == 99 || b.Meshes[0].Primitives[0].Attributes["POSITION"] == 99 {
		t.Fatalf("documents share state")
	}
}

func TestLoad_Parallel(t *testing.T) {
	want := mustLoad(t, sampleAsset)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := gltf.LoadString(sampleAsset)
			if err != nil {
				errs <- err
				return
			}
			if diff := deep.Equal(doc, want); diff != nil {
				errs <- errors.New(strings.Join(diff, "; "))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("parallel load: %v", err)
	}
}

func TestLoad_SampleAssetFields(t *testing.T) {
	doc := mustLoad(t, sampleAsset)
	if doc.Asset.Generator == nil || *doc.Asset.Generator != "hand" {
		t.Fatalf("generator: %v", doc.Asset.Generator)
	}
	if len(doc.ExtensionsUsed) != 1 || doc.ExtensionsUsed[0] != "KHR_materials_unlit" {
		t.Fatalf("extensionsUsed: %v", doc.ExtensionsUsed)
	}
	acc := doc.Accessors[0]
	if acc.BufferView == nil || *acc.BufferView != 0 || acc.ComponentType != gltf.ComponentFloat ||
		acc.Count != 3 || acc.Type != gltf.TypeVec3 || len(acc.Max) != 3 || acc.Min[2] != -1 {
		t.Fatalf("accessor: %+v", acc)
	}
	if acc.Sparse == nil || acc.Sparse.Count != 1 || acc.Sparse.Indices.ComponentType != gltf.ComponentUnsignedShort ||
		acc.Sparse.Values.ByteOffset != 8 {
		t.Fatalf("sparse: %+v", acc.Sparse)
	}
	bv := doc.BufferViews[0]
	if bv.ByteLength != 36 || bv.Target == nil || *bv.Target != gltf.TargetArrayBuffer || bv.ByteStride != nil {
		t.Fatalf("buffer view: %+v", bv)
	}
	if *doc.Buffers[0].URI != "data:application/octet-stream;base64,AAAA" || doc.Buffers[0].ByteLength != 36 {
		t.Fatalf("buffer: %+v", doc.Buffers[0])
	}
	n := doc.Nodes[0]
	if n.Translation != [3]float64{1, 2, 3} || n.Rotation != [4]float64{0, 0.7071, 0, 0.7071} || n.Scale != [3]float64{1, 1, 1} {
		t.Fatalf("node transform: %+v", n)
	}
	m := doc.Materials[0]
	if m.AlphaMode != gltf.AlphaMask || m.AlphaCutoff != 0.25 || !m.DoubleSided {
		t.Fatalf("material: %+v", m)
	}
	if m.PbrMetallicRoughness == nil || m.PbrMetallicRoughness.BaseColorFactor != [4]float64{0.5, 0.5, 0.5, 1} ||
		m.PbrMetallicRoughness.MetallicFactor != 0 || m.PbrMetallicRoughness.RoughnessFactor != 1 {
		t.Fatalf("pbr: %+v", m.PbrMetallicRoughness)
	}
	if m.Extensions == nil {
		t.Fatalf("expected material extensions")
	}
	if _, ok := m.Extensions["KHR_materials_unlit"]; !ok {
		t.Fatalf("expected KHR_materials_unlit entry, got %v", m.Extensions)
	}
	p := doc.Meshes[0].Primitives[0]
	if p.Mode != gltf.ModeTriangles || p.Attributes["NORMAL"] != 1 || p.Indices == nil || len(p.Targets) != 2 {
		t.Fatalf("primitive: %+v", p)
	}
	if p.Extras == nil {
		t.Fatalf("expected primitive extras placeholder")
	}
	a := doc.Animations[0]
	if a.Channels[0].Target.Path != gltf.PathRotation || *a.Channels[0].Target.Node != 0 ||
		a.Samplers[0].Interpolation != gltf.InterpolationStep || a.Samplers[0].Output != 2 {
		t.Fatalf("animation: %+v", a)
	}
	cam := doc.Cameras[0]
	if cam.Type != gltf.CameraPerspectiveType || cam.Perspective == nil || cam.Perspective.ZFar != nil ||
		cam.Perspective.YFov != 0.8 || *cam.Perspective.AspectRatio != 1.5 {
		t.Fatalf("camera: %+v", cam)
	}
	if s := doc.Samplers[0]; *s.MagFilter != gltf.FilterLinear || s.WrapS != gltf.WrapClampToEdge || s.WrapT != gltf.WrapRepeat {
		t.Fatalf("sampler: %+v", s)
	}
	if *doc.Scene != 0 || len(doc.Scenes[0].Nodes) != 1 || *doc.Textures[0].Source != 0 || *doc.Images[0].MimeType != "image/png" {
		t.Fatalf("scene/texture/image: %+v %+v %+v", doc.Scenes, doc.Textures, doc.Images)
	}
	if sk := doc.Skins[0]; *sk.Skeleton != 0 || len(sk.Joints) != 2 || sk.InverseBindMatrices != nil {
		t.Fatalf("skin: %+v", sk)
	}
}

func TestLoad_ExtensionPlaceholders(t *testing.T) {
	doc := mustLoad(t, `{"asset":{"version":"2.0","extras":[1,{"a":null}]},"extensions":{"EXT_a":{"deep":{"x":[1]}},"EXT_b":{}}}`)
	if doc.Asset.Extras == nil {
		t.Fatalf("expected extras placeholder")
	}
	if len(doc.Extensions) != 2 {
		t.Fatalf("expected two extension entries, got %v", doc.Extensions)
	}
	if doc.Extras != nil {
		t.Fatalf("document extras must stay absent")
	}
	mustFail(t, `{"asset":{"version":"2.0"},"extensions":[]}`, gltf.CodeTypeMismatch)
}

func TestLoad_NullIsTypeMismatch(t *testing.T) {
	mustFail(t, `{"asset":{"version":"2.0"},"nodes":[{"mesh":null}]}`, gltf.CodeTypeMismatch)
	mustFail(t, `{"asset":null}`, gltf.CodeTypeMismatch)
}

func TestLoad_SyntaxAndRootErrors(t *testing.T) {
	for _, in := range []string{``, `{"asset":`, `{"asset":{"version":"2.0"}`, minimal + ` {}`, minimal + ` 1`} {
		e := mustFail(t, in, gltf.CodeSyntax)
		if !errors.Is(e, gltf.ErrSyntax) {
			t.Fatalf("expected errors.Is ErrSyntax for %q", in)
		}
	}
	for _, in := range []string{`[]`, `"glTF"`, `null`, `2`} {
		mustFail(t, in, gltf.CodeTypeMismatch)
	}
}

func TestLoadPrePadded_Contract(t *testing.T) {
	raw := make([]byte, len(minimal))
	copy(raw, minimal)
	_, err := gltf.LoadPrePadded(raw[:len(raw):len(raw)])
	if !errors.Is(err, gltf.ErrInsufficientPadding) {
		t.Fatalf("expected ErrInsufficientPadding, got %v", err)
	}
	e, _ := gltf.AsError(err)
	if e == nil || e.Code != gltf.CodeInsufficientPadding {
		t.Fatalf("expected insufficient_padding, got %v", err)
	}

	short := make([]byte, len(minimal), len(minimal)+gltf.PaddingSize-1)
	copy(short, minimal)
	if _, err := gltf.LoadPrePadded(short); !errors.Is(err, gltf.ErrInsufficientPadding) {
		t.Fatalf("expected ErrInsufficientPadding for one byte short, got %v", err)
	}

	buf := gltf.NewPadded(len(minimal))
	copy(buf, minimal)
	for i := len(buf); i < cap(buf); i++ {
		buf[:cap(buf)][i] = '}'
	}
	doc, err := gltf.LoadPrePadded(buf)
	if err != nil {
		t.Fatalf("padding bytes must not be interpreted: %v", err)
	}
	if diff := deep.Equal(doc, mustLoad(t, minimal)); diff != nil {
		t.Fatalf("pre-padded result differs: %v", diff)
	}

	padded := gltf.Pad([]byte(minimal))
	if len(padded) != len(minimal) || cap(padded)-len(padded) < gltf.PaddingSize {
		t.Fatalf("Pad: len=%d cap=%d", len(padded), cap(padded))
	}
	if _, err := gltf.Load([]byte(minimal)); err != nil {
		t.Fatalf("Load copies into padded storage: %v", err)
	}
}

func TestLoadReader(t *testing.T) {
	doc, err := gltf.LoadReader(strings.NewReader(sampleAsset))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if diff := deep.Equal(doc, mustLoad(t, sampleAsset)); diff != nil {
		t.Fatalf("reader result differs: %v", diff)
	}
	_, err = gltf.LoadReader(strings.NewReader(sampleAsset), gltf.Options{MaxBytes: 32})
	if !errors.Is(err, gltf.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestRootFieldMap(t *testing.T) {
	root := gltf.RootFieldMap()
	if root.Entity() != "document" || root.Len() != 19 {
		t.Fatalf("entity=%q len=%d", root.Entity(), root.Len())
	}
	if _, ok := root.Lookup("asset"); !ok {
		t.Fatalf("expected asset binding")
	}
	if gltf.RootFieldMap() != root {
		t.Fatalf("root field map must be built once")
	}
}

const sampleAsset = `{
  "asset": {"version": "2.0", "generator": "hand", "copyright": "none"},
  "extensionsUsed": ["KHR_materials_unlit"],
  "scene": 0,
  "scenes": [{"nodes": [0], "name": "main"}],
  "nodes": [
    {"children": [1], "translation": [1, 2, 3], "rotation": [0, 0.7071, 0, 0.7071], "mesh": 0, "name": "root"},
    {"matrix": [2,0,0,0, 0,2,0,0, 0,0,2,0, 0,0,0,1], "camera": 0, "skin": 0, "weights": [0.5, 0.5]}
  ],
  "meshes": [{
    "primitives": [{
      "attributes": {"POSITION": 0, "NORMAL": 1},
      "indices": 2, "material": 0, "targets": [3, 4],
      "extras": {"tag": "x"}
    }],
    "weights": [0, 1]
  }],
  "materials": [{
    "name": "m",
    "pbrMetallicRoughness": {"baseColorFactor": [0.5, 0.5, 0.5, 1], "metallicFactor": 0, "baseColorTexture": {"index": 0}},
    "normalTexture": {"index": 0, "scale": 0.5},
    "alphaMode": "MASK", "alphaCutoff": 0.25, "doubleSided": true,
    "extensions": {"KHR_materials_unlit": {}}
  }],
  "accessors": [{
    "bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
    "max": [1, 1, 1], "min": [-1, -1, -1],
    "sparse": {"count": 1, "indices": {"bufferView": 0, "componentType": 5123}, "values": {"bufferView": 0, "byteOffset": 8}}
  }],
  "bufferViews": [{"buffer": 0, "byteLength": 36, "target": 34962}],
  "buffers": [{"uri": "data:application/octet-stream;base64,AAAA", "byteLength": 36}],
  "animations": [{
    "channels": [{"sampler": 0, "target": {"node": 0, "path": "rotation"}}],
    "samplers": [{"input": 1, "output": 2, "interpolation": "STEP"}]
  }],
  "cameras": [{"type": "perspective", "perspective": {"yfov": 0.8, "znear": 0.01, "aspectRatio": 1.5}}],
  "images": [{"bufferView": 0, "mimeType": "image/png"}],
  "samplers": [{"magFilter": 9729, "wrapS": 33071}],
  "skins": [{"joints": [0, 1], "skeleton": 0}],
  "textures": [{"source": 0, "sampler": 0}]
}`
