package langdetect

import (
	"testing"
)

func BenchmarkDetectMarkdown(b *testing.B) {
	content := []byte(`# Title

Some prose with a [link](https://example.com) and a list:

- one
- two
`)
	b.ResetTimer()
	for range b.N {
		Detect("doc.md", content)
	}
}

func BenchmarkDetectGo(b *testing.B) {
	content := []byte(`package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}`)
	b.ResetTimer()
	for range b.N {
		Detect("main.go", content)
	}
}

func BenchmarkDetectNoExtension(b *testing.B) {
	content := []byte("#!/bin/bash\necho hello")
	b.ResetTimer()
	for range b.N {
		Detect("run", content)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		Detect("notes.md", nil)
	}
}

func BenchmarkComments(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		Comments("Markdown")
	}
}
