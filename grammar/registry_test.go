package grammar

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestResolveBuiltins(t *testing.T) {
	for _, name := range []string{"mysql", "postgres"} {
		g, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if g.DriverName() != name {
			t.Errorf("Resolve(%q).DriverName() = %q", name, g.DriverName())
		}
	}
}

func TestResolveUnknownListsDrivers(t *testing.T) {
	_, err := Resolve("oracle")
	if err == nil {
		t.Fatal("expected error for unregistered driver")
	}
	var ude *UnsupportedDialectError
	if !errors.As(err, &ude) {
		t.Fatalf("expected *UnsupportedDialectError, got %T", err)
	}
	if ude.Driver != "oracle" {
		t.Errorf("Driver = %q", ude.Driver)
	}
	msg := err.Error()
	if !strings.Contains(msg, "mysql") || !strings.Contains(msg, "postgres") {
		t.Errorf("error message should enumerate known drivers, got %q", msg)
	}
}

type upperGrammar struct{ MySQL }

func (upperGrammar) DriverName() string { return "mysql-upper" }

// unregister removes a test registration so other tests see only the
// built-in drivers.
func unregister(t *testing.T, name string) {
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, name)
		registryMu.Unlock()
	})
}

func TestRegisterCustomDialect(t *testing.T) {
	Register("mysql-upper", func() Grammar { return upperGrammar{} })
	unregister(t, "mysql-upper")

	g, err := Resolve("mysql-upper")
	if err != nil {
		t.Fatalf("Resolve after Register: %v", err)
	}
	if g.DriverName() != "mysql-upper" {
		t.Errorf("DriverName() = %q", g.DriverName())
	}

	found := false
	for _, d := range Drivers() {
		if d == "mysql-upper" {
			found = true
		}
	}
	if !found {
		t.Errorf("Drivers() = %v, missing mysql-upper", Drivers())
	}
}

// Last registration for a name wins.
func TestRegisterReplaces(t *testing.T) {
	Register("replaceme", func() Grammar { return MySQL{} })
	Register("replaceme", func() Grammar { return Postgres{} })
	unregister(t, "replaceme")

	g, err := Resolve("replaceme")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(Postgres); !ok {
		t.Errorf("expected the second registration to win, got %T", g)
	}
}

// Registration must be safe concurrently with resolution.
func TestRegistryConcurrentAccess(t *testing.T) {
	unregister(t, "concurrent")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Register("concurrent", func() Grammar { return MySQL{} })
		}()
		go func() {
			defer wg.Done()
			if _, err := Resolve("mysql"); err != nil {
				t.Errorf("Resolve(mysql): %v", err)
			}
		}()
	}
	wg.Wait()
}
