// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "testing"

func TestSplitPath(t *testing.T) {
	cases := []struct {
		path string
		want []uint16
	}{
		{"", nil},
		{"/", nil},
		{"3", []uint16{3}},
		{"3/0", []uint16{3, 0}},
		{"3/0/9", []uint16{3, 0, 9}},
		{"3/0/11/1", []uint16{3, 0, 11, 1}},
		{"/3/0/9/", []uint16{3, 0, 9}},
	}
	for _, c := range cases {
		got, err := splitPath(c.path)
		if err != nil {
			t.Fatalf("splitPath(%q): %v", c.path, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("splitPath(%q) = %v, want %v", c.path, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("splitPath(%q) = %v, want %v", c.path, got, c.want)
			}
		}
	}
}

func TestSplitPathTooManySegments(t *testing.T) {
	if _, err := splitPath("1/2/3/4/5"); err == nil {
		t.Fatal("expected error for more than 4 path segments")
	}
}

func TestSplitPathNonNumeric(t *testing.T) {
	if _, err := splitPath("abc/0"); err == nil {
		t.Fatal("expected error for non-numeric segment")
	}
}
