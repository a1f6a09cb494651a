package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/scribe/pkg/errors"
)

type renderFunc func(string) string

func upper(s string) string { return "UP:" + s }
func lower(s string) string { return "low:" + s }

func TestEmpty(t *testing.T) {
	reg := NewBuilder[renderFunc]().Build()

	if reg.Count() != 0 {
		t.Errorf("Empty registry should have no entries, got %d", reg.Count())
	}
	if _, ok := reg.Lookup("bold"); ok {
		t.Error("Lookup() on empty registry should not find anything")
	}
}

func TestRegister(t *testing.T) {
	b := NewBuilder[renderFunc]()

	t.Run("register valid item", func(t *testing.T) {
		if err := b.Register("bold", upper); err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := b.Register("", upper)
		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := b.Register("bold", lower)
		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("silence duplicate", func(t *testing.T) {
		err := b.Silence("bold")
		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Silence() duplicate should return ErrAlreadyExists, got %v", err)
		}
	})
}

func TestLookup(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "bold", upper)
	MustSilence(b, "icon", "image")
	reg := b.Build()

	t.Run("registered item", func(t *testing.T) {
		f, ok := reg.Lookup("bold")
		if !ok || f == nil {
			t.Fatal("Lookup(bold) should find a function")
		}
		if got := f("x"); got != "UP:x" {
			t.Errorf("bold(x) = %q, want %q", got, "UP:x")
		}
	})

	t.Run("silent item", func(t *testing.T) {
		f, ok := reg.Lookup("icon")
		if !ok {
			t.Fatal("Lookup(icon) should report silent entries as found")
		}
		if f != nil {
			t.Error("silent entries should yield the zero item")
		}
		if !reg.Silent("icon") || reg.Silent("bold") {
			t.Error("Silent() should only be true for silenced names")
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		if _, ok := reg.Lookup("nope"); ok {
			t.Error("Lookup(nope) should not be found")
		}
		_, err := reg.Get("nope")
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get(nope) should return ErrNotFound, got %v", err)
		}
	})
}

func TestExtend(t *testing.T) {
	base := NewBuilder[renderFunc]()
	MustRegister(base, "bold", upper)
	MustRegister(base, "emph", upper)
	MustSilence(base, "color")
	parent := base.Build()

	b := Extend(parent)
	if err := b.Register("bold", lower); err != nil {
		t.Fatalf("overriding an inherited entry should succeed, got %v", err)
	}
	if err := b.Register("color", lower); err != nil {
		t.Fatalf("un-silencing an inherited entry should succeed, got %v", err)
	}
	MustRegister(b, "underline", lower)
	child := b.Build()

	t.Run("child sees overrides", func(t *testing.T) {
		f, _ := child.Lookup("bold")
		if got := f("x"); got != "low:x" {
			t.Errorf("child bold(x) = %q, want %q", got, "low:x")
		}
		if child.Silent("color") {
			t.Error("color should no longer be silent in the child")
		}
	})

	t.Run("child inherits the rest", func(t *testing.T) {
		f, ok := child.Lookup("emph")
		if !ok || f("x") != "UP:x" {
			t.Error("child should inherit emph from the parent")
		}
		if child.Count() != 4 {
			t.Errorf("child Count() = %d, want 4", child.Count())
		}
	})

	t.Run("parent unchanged", func(t *testing.T) {
		f, _ := parent.Lookup("bold")
		if got := f("x"); got != "UP:x" {
			t.Errorf("parent bold(x) = %q, want %q", got, "UP:x")
		}
		if parent.Has("underline") {
			t.Error("parent should not see entries added to the child")
		}
		if !parent.Silent("color") {
			t.Error("parent color should stay silent")
		}
	})

	t.Run("second override fails", func(t *testing.T) {
		err := b.Register("bold", upper)
		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("second override should return ErrAlreadyExists, got %v", err)
		}
	})
}

func TestRemove(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "bold", upper)

	if err := b.Remove("bold"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := b.Remove("bold"); !errors.IsErrorCode(err, errors.ErrNotFound) {
		t.Errorf("Remove() of a missing name should return ErrNotFound, got %v", err)
	}
	if b.Build().Has("bold") {
		t.Error("removed names should not be built")
	}
	if err := b.Register("bold", lower); err != nil {
		t.Errorf("re-registering a removed name should succeed, got %v", err)
	}
}

func TestBuildSnapshots(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "bold", upper)
	first := b.Build()
	MustRegister(b, "emph", upper)

	if first.Has("emph") {
		t.Error("a built registry should not see later builder changes")
	}
	if b.Build().Count() != 2 {
		t.Error("a later Build() should include every entry")
	}
}

func TestList(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "table", upper)
	MustRegister(b, "bold", upper)
	MustSilence(b, "icon")

	got := b.Build().List()
	want := []string{"bold", "icon", "table"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestConcurrentReads(t *testing.T) {
	b := NewBuilder[renderFunc]()
	for i := 0; i < 100; i++ {
		MustRegister(b, fmt.Sprintf("cmd%d", i), upper)
	}
	reg := b.Build()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, ok := reg.Lookup(fmt.Sprintf("cmd%d", i)); !ok {
					t.Errorf("concurrent Lookup(cmd%d) failed", i)
				}
			}
		}()
	}
	wg.Wait()
}

func TestMustRegister(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "bold", upper)

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() should panic on duplicate registration")
		}
	}()
	MustRegister(b, "bold", lower)
}

func TestMustGet(t *testing.T) {
	b := NewBuilder[renderFunc]()
	MustRegister(b, "bold", upper)
	reg := b.Build()

	if got := MustGet(reg, "bold")("a"); got != "UP:a" {
		t.Errorf("MustGet() returned wrong item: %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGet() should panic when item not found")
		}
	}()
	MustGet(reg, "nonexistent")
}

func BenchmarkLookup(b *testing.B) {
	builder := NewBuilder[renderFunc]()
	for i := 0; i < 1000; i++ {
		_ = builder.Register(fmt.Sprintf("cmd%d", i), upper)
	}
	reg := builder.Build()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.Lookup(fmt.Sprintf("cmd%d", i%1000))
	}
}

func ExampleExtend() {
	base := NewBuilder[func() string]()
	MustRegister(base, "bold", func() string { return "BOLD" })
	MustSilence(base, "icon")
	ascii := base.Build()

	b := Extend(ascii)
	MustRegister(b, "bold", func() string { return "\x1b[1mbold\x1b[22m" })
	ansi := b.Build()

	fmt.Println(ansi.List())
	f, _ := ascii.Lookup("bold")
	fmt.Println(f())

	// Output:
	// [bold icon]
	// BOLD
}
