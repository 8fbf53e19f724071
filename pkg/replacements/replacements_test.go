package replacements

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/albertocavalcante/toolutil/pkg/env"
)

func TestMappedVariables(t *testing.T) {
	r := Replacements{"CFLAGS": "MY_CFLAGS", "CC": "MY_CC"}

	got := r.MappedVariables(nil)
	want := env.Vars{"MY_CFLAGS": "$CFLAGS", "MY_CC": "$CC"}
	if !maps.Equal(got, want) {
		t.Errorf("MappedVariables(nil) = %v, want %v", got, want)
	}

	got = r.MappedVariables(env.Vars{"CC": "gcc"})
	want = env.Vars{"MY_CC": "$CC"}
	if !maps.Equal(got, want) {
		t.Errorf("MappedVariables(only) = %v, want %v", got, want)
	}
}

func TestInject(t *testing.T) {
	r := Replacements{"CFLAGS": "MY_CFLAGS", "CC": "MY_CC"}

	t.Run("setter", func(t *testing.T) {
		var keys []string
		dest := env.Vars{}
		r.Inject(dest, SetterFunc(func(k, v string) {
			keys = append(keys, k)
			dest[k] = v
		}), false)
		if want := []string{"MY_CC", "MY_CFLAGS"}; !slices.Equal(keys, want) {
			t.Errorf("setter called with %v, want %v", keys, want)
		}
		if dest["MY_CFLAGS"] != "$CFLAGS" {
			t.Errorf("dest = %v", dest)
		}
	})

	t.Run("bulk setter keeps existing", func(t *testing.T) {
		e := env.New(env.Vars{"CC": "gcc", "MY_CC": "clang"})
		r.Inject(e, BulkSetterFunc(e.SetDefault), false)
		if got := e.Get("MY_CC"); got != "clang" {
			t.Errorf("MY_CC = %q, SetDefault should keep it", got)
		}
		if got := e.Get("MY_CFLAGS"); got != "$CFLAGS" {
			t.Errorf("MY_CFLAGS = %q, want $CFLAGS", got)
		}
	})

	t.Run("only present", func(t *testing.T) {
		e := env.New(env.Vars{"CC": "gcc"})
		r.Inject(e, SetterFunc(e.Set), true)
		if !e.Has("MY_CC") || e.Has("MY_CFLAGS") {
			t.Errorf("Inject(onlyPresent) keys = %v", e.Keys())
		}
	})
}

func TestApply(t *testing.T) {
	r := Replacements{"CFLAGS": "MY_CFLAGS", "CC": "MY_CC", "LD": "MY_LD"}
	subj := env.Vars{
		"MY_CFLAGS": "-Wall",
		"MY_CC":     "$CC", // self reference
		"CC":        "gcc",
		"AR":        "ar",
	}

	got := r.Apply(subj, false)
	if want := (env.Vars{"CFLAGS": "-Wall"}); !maps.Equal(got, want) {
		t.Errorf("Apply(false) = %v, want %v", got, want)
	}

	got = r.Apply(subj, true)
	want := env.Vars{"CFLAGS": "-Wall", "CC": "gcc", "AR": "ar"}
	if !maps.Equal(got, want) {
		t.Errorf("Apply(true) = %v, want %v", got, want)
	}
}

func TestApply_ReplacedVariableWins(t *testing.T) {
	r := Replacements{"CFLAGS": "MY_CFLAGS"}
	got := r.Apply(env.Vars{"CFLAGS": "-O0", "MY_CFLAGS": "-O3"}, true)
	if got["CFLAGS"] != "-O3" {
		t.Errorf("CFLAGS = %q, want the replacement value -O3", got["CFLAGS"])
	}
}

func TestBuilder(t *testing.T) {
	e := env.New(env.Vars{"CFLAGS": "", "MY_CFLAGS": "-Wall -Wextra"})

	var seenFlags string
	var seenOverrides env.Vars
	b := Builder{
		Caller: Caller{Replacements: Replacements{"CFLAGS": "MY_CFLAGS"}},
		Wrapped: func(e *env.Environment, target, source []string, overrides env.Vars) ([]string, error) {
			seenFlags = e.Subst("$CFLAGS")
			seenOverrides = overrides
			return []string{"test1.o"}, nil
		},
	}

	out, err := b.Build(e, nil, []string{"test1.c"}, env.Vars{"MY_CFLAGS": "-g", "OTHER": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out, []string{"test1.o"}) {
		t.Errorf("Build() = %v", out)
	}
	if seenFlags != "-Wall -Wextra" {
		t.Errorf("wrapped builder saw CFLAGS=%q", seenFlags)
	}
	if want := (env.Vars{"CFLAGS": "-g", "OTHER": "x"}); !maps.Equal(seenOverrides, want) {
		t.Errorf("wrapped builder overrides = %v, want %v", seenOverrides, want)
	}
	if got := e.Get("CFLAGS"); got != "" {
		t.Errorf("caller environment modified: CFLAGS=%q", got)
	}
}

func TestBuilder_SelfReferenceKeepsOriginal(t *testing.T) {
	e := env.New(env.Vars{"CFLAGS": "-O2"})
	c := Caller{Replacements: Replacements{"CFLAGS": "MY_CFLAGS"}}
	c.InjectReplacements(e, BulkSetterFunc(e.SetDefault), false)

	replaced, _ := c.ApplyReplacements(e, nil)
	if got := replaced.Subst("$CFLAGS"); got != "-O2" {
		t.Errorf("CFLAGS = %q, want -O2 when MY_CFLAGS points back at it", got)
	}
}

func TestAction(t *testing.T) {
	e := env.New(env.Vars{"LINKFLAGS": "", "SHLINKFLAGS_PY": "-shared"})
	errStop := errors.New("stop")

	var order []string
	a := Action{
		Caller: Caller{Replacements: Replacements{"LINKFLAGS": "SHLINKFLAGS_PY"}},
		Wrapped: func(target, source []string, e *env.Environment, overrides env.Vars) error {
			order = append(order, target[0], source[0], e.Get("LINKFLAGS"))
			return errStop
		},
	}

	err := a.Execute([]string{"_mod.so"}, []string{"mod.o"}, e, nil)
	if !errors.Is(err, errStop) {
		t.Errorf("Execute() error = %v, want wrapped error", err)
	}
	if want := []string{"_mod.so", "mod.o", "-shared"}; !slices.Equal(order, want) {
		t.Errorf("wrapped action saw %v, want %v", order, want)
	}
}
