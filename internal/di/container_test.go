package di

import "testing"

type greeter struct{ name string }

func TestContainer_LazySingleton(t *testing.T) {
	c := NewContainer()
	builds := 0
	tok := NewToken[*greeter]("greeter")

	RegisterToken(c, tok, func(sr ServiceRegistry) *greeter {
		builds++
		return &greeter{name: sr.Get("name").(string)}
	})
	c.Register("name", "comex")

	if builds != 0 {
		t.Fatalf("factory should not run before Get, ran %d times", builds)
	}

	first := GetToken(c, tok)
	second := GetToken(c, tok)

	if first != second {
		t.Error("expected the same instance on repeated Get")
	}
	if builds != 1 {
		t.Errorf("expected 1 build, got %d", builds)
	}
	if first.name != "comex" {
		t.Errorf("expected name comex, got %s", first.name)
	}
}

func TestContainer_UnknownServicePanics(t *testing.T) {
	c := NewContainer()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown service")
		}
	}()
	c.Get("missing")
}

func TestContainer_CyclePanics(t *testing.T) {
	c := NewContainer()
	c.RegisterFactory("a", func(sr ServiceRegistry) any { return sr.Get("b") })
	c.RegisterFactory("b", func(sr ServiceRegistry) any { return sr.Get("a") })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dependency cycle")
		}
	}()
	c.Get("a")
}

func TestContainer_Has(t *testing.T) {
	c := NewContainer()
	c.Register("config", 1)

	if !c.Has("config") {
		t.Error("expected Has(config) to be true")
	}
	if c.Has("logger") {
		t.Error("expected Has(logger) to be false")
	}
}
