package env

import (
	"os"
	"slices"
	"strings"
	"testing"
)

func TestNew_CopiesVars(t *testing.T) {
	vars := Vars{"A": "1"}
	e := New(vars)
	vars["A"] = "2"
	if got := e.Get("A"); got != "1" {
		t.Errorf("Get(A) = %q, want 1", got)
	}
}

func TestSetters(t *testing.T) {
	e := New(Vars{"CFLAGS": "-O2", "CC": "gcc"})

	e.Set("LD", "ld")
	e.SetDefault(Vars{"CC": "clang", "AR": "ar"})
	e.Append(Vars{"CFLAGS": "-g", "LIBS": "m"})
	e.Prepend(Vars{"CFLAGS": "-Wall"})
	e.Replace(Vars{"LD": "gold"})

	want := map[string]string{
		"CC":     "gcc",
		"AR":     "ar",
		"LD":     "gold",
		"CFLAGS": "-Wall -O2 -g",
		"LIBS":   "m",
	}
	for k, v := range want {
		if got := e.Get(k); got != v {
			t.Errorf("Get(%s) = %q, want %q", k, got, v)
		}
	}
	if got, want := e.Keys(), []string{"AR", "CC", "CFLAGS", "LD", "LIBS"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestOverride(t *testing.T) {
	base := New(Vars{"A": "1", "B": "2"}, WithExecEnv(Vars{"PATH": "/bin"}))
	over := base.Override(Vars{"B": "3", "C": "4"})

	if base.Has("C") || base.Get("B") != "2" {
		t.Errorf("Override mutated receiver: %v", base.Vars())
	}
	if over.Get("A") != "1" || over.Get("B") != "3" || over.Get("C") != "4" {
		t.Errorf("Override result = %v", over.Vars())
	}
	over.SetExecEnv("PATH", "/usr/bin")
	if got := base.ExecEnv()["PATH"]; got != "/bin" {
		t.Errorf("base PATH = %q after mutating override, want /bin", got)
	}
}

func TestPrependExecPath(t *testing.T) {
	e := New(nil, WithExecEnv(Vars{"PATH": "/usr/bin"}))
	e.PrependExecPath("/opt/a", "/opt/b")

	got := ParsePathList(e.ExecEnv()["PATH"])
	want := PathList{"/opt/a", "/opt/b", "/usr/bin"}
	if !slices.Equal(got, want) {
		t.Errorf("PATH = %v, want %v", got, want)
	}
}

func TestEnviron(t *testing.T) {
	e := New(nil, WithExecEnv(Vars{"TOOLUTIL_TEST_MARKER": "yes"}))
	found := false
	for _, kv := range e.Environ() {
		if kv == "TOOLUTIL_TEST_MARKER=yes" {
			found = true
		}
		if !strings.Contains(kv, "=") {
			t.Errorf("malformed entry %q", kv)
		}
	}
	if !found {
		t.Error("Environ() missing execution variable")
	}
}

func TestPathList(t *testing.T) {
	var unset PathList
	if !unset.IsDefault() {
		t.Error("nil PathList should be default")
	}
	if (PathList{}).IsDefault() {
		t.Error("empty PathList should not be default")
	}
	if got := ParsePathList(""); got == nil || len(got) != 0 {
		t.Errorf("ParsePathList(\"\") = %#v, want empty non-nil", got)
	}
}

func TestSearchDirs(t *testing.T) {
	sep := string(os.PathListSeparator)
	e := New(Vars{"TOOLROOT": "/opt/tc"}, WithExecEnv(Vars{"PATH": "/usr/bin" + sep + "/bin"}))

	if got, want := e.SearchDirs(nil), []string{"/usr/bin", "/bin"}; !slices.Equal(got, want) {
		t.Errorf("SearchDirs(nil) = %v, want %v", got, want)
	}
	if got := e.SearchDirs(PathList{}); len(got) != 0 {
		t.Errorf("SearchDirs(empty) = %v, want none", got)
	}
	got := e.SearchDirs(PathList{"$TOOLROOT/bin" + sep + "/sbin"})
	if want := []string{"/opt/tc/bin", "/sbin"}; !slices.Equal(got, want) {
		t.Errorf("SearchDirs(templated) = %v, want %v", got, want)
	}
}
