// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package extension

import (
	"sort"
	"testing"
)

func TestCommandRegister(t *testing.T) {
	register := NewCommandRegister()

	ran := false
	if err := register.Register("launch", func(args []string) error {
		ran = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := register.Register("profiles", func(args []string) error { return nil }); err != nil {
		t.Fatal(err)
	}

	handler, ok := register.Lookup("launch")
	if !ok {
		t.Fatal("registered command not found")
	}
	if err := handler(nil); err != nil || !ran {
		t.Fatal("handler did not run")
	}

	if _, ok := register.Lookup("unknown"); ok {
		t.Fatal("unknown command resolved")
	}

	names := register.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "launch" || names[1] != "profiles" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestCommandRegisterRejectsDuplicates(t *testing.T) {
	register := NewCommandRegister()

	if err := register.Register("launch", func(args []string) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := register.Register("launch", func(args []string) error { return nil }); err == nil {
		t.Fatal("re-registration must fail")
	}
}
