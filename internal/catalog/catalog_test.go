package catalog

import "testing"

func TestNewPoolLoadsPresets(t *testing.T) {
	pool, err := NewPool()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pool.All()) != 16 {
		t.Fatalf("expected 16 presets, got %d", len(pool.All()))
	}
	nami := pool.Get("nami")
	if nami == nil || nami.Name != "Nami" {
		t.Fatalf("expected nami preset, got %+v", nami)
	}
	if !nami.IsPreset() {
		t.Fatalf("expected preset character")
	}
	for _, id := range []string{"hisoka", "hannibal", "joker", "cthulhu", "sherlock", "tyrion", "naruto", "totoro", "wednesday", "madison_beer"} {
		if pool.Get(id) == nil {
			t.Fatalf("expected preset %q in catalog", id)
		}
	}
	if c := pool.Get("hannibal"); !c.NSFW {
		t.Fatalf("expected hannibal to be adult-only")
	}
	if c := pool.Get("madison_beer"); len(c.Traits) != 9 {
		t.Fatalf("expected extended trait set for madison_beer, got %d", len(c.Traits))
	}
	if pool.Get("no_such_character") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestGetReturnsCopies(t *testing.T) {
	pool, err := NewPool()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first := pool.Get("nami")
	first.NSFW = true
	first.Traits["intelligence"] = 1

	second := pool.Get("nami")
	if second.NSFW {
		t.Fatalf("expected catalog to stay immutable after caller mutation")
	}
	if second.Traits["intelligence"] == 1 {
		t.Fatalf("expected trait map to be copied")
	}
}
