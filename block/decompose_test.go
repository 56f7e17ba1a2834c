// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package block

import "testing"

func roundTrip(t *testing.T, path, text string) *Store {
	t.Helper()
	s := Decompose(path, text)
	if !s.Valid() {
		t.Fatalf("%s: store failed Valid()", path)
	}
	got := string(s.Reconstruct())
	if got != text {
		t.Fatalf("%s: round trip mismatch\n--- want ---\n%q\n--- got ---\n%q", path, text, got)
	}
	return s
}

func TestRoundTripGeneric(t *testing.T) {
	cases := []string{
		"",
		"a single line with no newline",
		"line one\nline two\n",
		"line one\n\nline two\n",
		"\n\nleading blanks\n",
		"trailing blanks\n\n\n",
		"a\n\n\nb\nc\n\nd\n",
	}
	for _, text := range cases {
		roundTrip(t, "notes.txt", text)
	}
}

func TestRoundTripPython(t *testing.T) {
	text := "import os\n\ndef f():\n    return 1\n"
	s := roundTrip(t, "mod.py", text)
	if len(s.IDList) != 2 {
		t.Fatalf("want 2 blocks, got %d: %v", len(s.IDList), s.IDList)
	}
	if s.Blocks["block-1"].Content != "import os" {
		t.Fatalf("block-1 = %q", s.Blocks["block-1"].Content)
	}
	if s.Blocks["block-2"].Content != "\ndef f():\n    return 1" {
		t.Fatalf("block-2 = %q", s.Blocks["block-2"].Content)
	}
}

func TestPythonInsertAfterPreservesBlankLine(t *testing.T) {
	text := "import os\n\ndef f():\n    return 1\n"
	s := Decompose("mod.py", text)

	old := s.Blocks["block-1"].Content
	add := "import sys"
	if len(old) == 0 || old[len(old)-1] != '\n' {
		add = "\n" + add
	}
	s.Blocks["block-1"].Content = old + add

	want := "import os\nimport sys\n\ndef f():\n    return 1\n"
	if got := string(s.Reconstruct()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRoundTripPythonClassAndDecorators(t *testing.T) {
	text := "import os\nimport sys\n\n\n@decorator\nclass Foo:\n    def bar(self):\n        if True:\n            return 1\n\n        return 2\n\n\nCONST = 1\n"
	roundTrip(t, "mod.py", text)
}

func TestRoundTripC(t *testing.T) {
	text := "#include <stdio.h>\n#include <stdlib.h>\n\nint add(int a, int b) {\n    return a + b;\n}\n\nstruct point {\n    int x;\n    int y;\n};\n"
	roundTrip(t, "math.c", text)
}

func TestRoundTripJava(t *testing.T) {
	text := "package com.example;\n\nimport java.util.List;\n\n@Deprecated\npublic class Foo {\n    public int bar() {\n        return 1;\n    }\n}\n"
	roundTrip(t, "Foo.java", text)
}

func TestRoundTripRust(t *testing.T) {
	text := "use std::io;\n\n#[derive(Debug)]\nstruct Point {\n    x: i32,\n    y: i32,\n}\n\nfn main() {\n    println!(\"hi\");\n}\n"
	roundTrip(t, "main.rs", text)
}

func TestRoundTripGo(t *testing.T) {
	text := "package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nfunc main() {\n\tfmt.Println(os.Args)\n}\n"
	roundTrip(t, "main.go", text)
}

func TestRoundTripJavaScript(t *testing.T) {
	text := "import fs from 'fs';\nconst path = require('path');\n\nfunction main() {\n    console.log('hi');\n}\n\nclass Widget {\n    render() {\n        return 1;\n    }\n}\n"
	roundTrip(t, "main.js", text)
}

func TestEmptyFile(t *testing.T) {
	s := Decompose("empty.go", "")
	if len(s.IDList) != 0 || len(s.Blocks) != 0 {
		t.Fatalf("empty file should decompose to zero blocks, got %v", s.IDList)
	}
	if got := s.Reconstruct(); len(got) != 0 {
		t.Fatalf("empty file should reconstruct to zero bytes, got %q", got)
	}
}

func TestBlockIDsAreDenseAndOrdered(t *testing.T) {
	s := Decompose("x.go", "package main\n\nfunc a() {}\n\nfunc b() {}\n")
	for i, id := range s.IDList {
		if id != nextID(i+1) {
			t.Fatalf("id at position %d = %q, want %q", i, id, nextID(i+1))
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Decompose("x.go", "package main\n\nfunc a() {}\n")
	clone := s.Clone()
	clone.Blocks[clone.IDList[0]].Content = "mutated"
	if s.Blocks[s.IDList[0]].Content == "mutated" {
		t.Fatalf("mutating clone affected original")
	}
	clone.IDList = append(clone.IDList, "block-extra")
	if len(s.IDList) == len(clone.IDList) {
		t.Fatalf("mutating clone's id list affected original")
	}
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	a := Block{Content: "same"}
	b := Block{Content: "same"}
	c := Block{Content: "different"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical content should fingerprint identically")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different content should not fingerprint identically")
	}
}
