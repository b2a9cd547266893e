package jsonv2_test

import (
	"io"
	"testing"

	eng "github.com/reoring/gltfskema/internal/engine"
	"github.com/reoring/gltfskema/source/jsonv2"
)

func TestTokens_KeysAndValues(t *testing.T) {
	src := jsonv2.Driver().NewBytes([]byte(`{"a":["x",1.5,true,null],"a":{"c":"d"}}`))
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
	if got[4].Number != "1.5" || got[8].String != "a" {
		t.Fatalf("unexpected payloads: %+v", got)
	}
	if jsonv2.Driver().Name() != jsonv2.Name {
		t.Fatalf("unexpected name %q", jsonv2.Driver().Name())
	}
}
