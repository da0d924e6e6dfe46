package solface

import (
	"os"
	"testing"
)

func BenchmarkParseAbiJson(b *testing.B) {
	input := []byte(testErc20AbiJson)

	for i := 0; i < b.N; i++ {
		var doc AbiDocument
		err := doc.UnmarshalJSON(input)
		if err != nil {
			b.Fatalf("%+v", err)
		}
	}
}

func BenchmarkParseTypeDesc(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := ParseTypeDesc("uint32[2][3][4]", nil)
		if err != nil {
			b.Fatalf("%+v", err)
		}
	}
}

func BenchmarkRenderInterface(b *testing.B) {
	input, err := os.ReadFile("testdata/udvts.json")
	if err != nil {
		b.Fatalf("%+v", err)
	}
	artifact, err := DecodeContractArtifact(input)
	if err != nil {
		b.Fatalf("%+v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = RenderInterface("Seaport", artifact.Abi)
	}
}

func BenchmarkExpand(b *testing.B) {
	input := []byte(testErc20Artifact("0x6080"))

	for i := 0; i < b.N; i++ {
		_, err := ExpandJson("Erc20", input, nil)
		if err != nil {
			b.Fatalf("%+v", err)
		}
	}
}
