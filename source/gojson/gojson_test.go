package gojson_test

import (
	"io"
	"testing"

	eng "github.com/reoring/gltfskema/internal/engine"
	"github.com/reoring/gltfskema/source/gojson"
)

func TestTokens_KeysAndValues(t *testing.T) {
	src := gojson.Driver().NewBytes([]byte(`{"a":["x",1.5,true,null],"b":{"c":"d"}}`))
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindBeginArray, eng.KindString, eng.KindNumber, eng.KindBool, eng.KindNull, eng.KindEndArray,
		eng.KindKey, eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndObject,
	}
	var got []eng.Token
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		got = append(got, tok)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Fatalf("token %d: expected %v, got %v", i, k, got[i].Kind)
		}
	}
	if got[1].String != "a" || got[3].String != "x" || got[4].Number != "1.5" || !got[5].Bool || got[11].String != "d" {
		t.Fatalf("unexpected payloads: %+v", got)
	}
	if src.Location() != -1 {
		t.Fatalf("go-json does not report offsets")
	}
}

func TestName(t *testing.T) {
	if gojson.Driver().Name() != gojson.Name {
		t.Fatalf("unexpected name %q", gojson.Driver().Name())
	}
}

func TestNewBytes_RejectsMalformed(t *testing.T) {
	for _, in := range []string{`{"a" 1}`, `{"a":1 "b":2}`, `[1 2]`, `[1,,2]`, `[1,2,]`, `{"a":1,}`, `{"a":01}`, `[1.]`, `[-]`} {
		src := gojson.Driver().NewBytes([]byte(in))
		var err error
		for err == nil {
			_, err = src.NextToken()
		}
		if err == io.EOF {
			t.Fatalf("expected an error for %s", in)
		}
	}
}

func TestNewBytes_SyntaxOffset(t *testing.T) {
	src := gojson.NewBytes([]byte(`{"a" 1}`))
	if _, err := src.NextToken(); err == nil {
		t.Fatalf("expected error")
	}
	if src.Location() < 0 {
		t.Fatalf("expected the validator's offset, got %d", src.Location())
	}
}

func TestNumberLiterals(t *testing.T) {
	for _, in := range []string{`[0]`, `[-0]`, `[10]`, `[1.25]`, `[-3e7]`, `[2E+1]`, `[0.5e-3]`} {
		src := gojson.NewBytes([]byte(in))
		for {
			_, err := src.NextToken()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("%s: %v", in, err)
			}
		}
	}
}
