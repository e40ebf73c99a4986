package options

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/catpea/data-drag/internal/access"
	"github.com/catpea/data-drag/internal/dom"
	"github.com/catpea/data-drag/internal/geom"
)

func itemNode(payload string) *dom.Node {
	n := dom.NewNode("card")
	n.SetAttr(AttrItem, payload)
	return n
}

func TestParseItemDefaults(t *testing.T) {
	got := ParseItem(itemNode(""), zerolog.Nop())
	want := ItemOptions{Axis: geom.Vertical, Copy: false, Sort: true, Handle: "", AnimationMs: 150}
	if got != want {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
}

func TestParseItemFull(t *testing.T) {
	n := itemNode(`{"direction":"horizontal","copy":true,"sort":false,"handle":".grip","animation":200}`)
	got := ParseItem(n, zerolog.Nop())
	if got.Axis != geom.Horizontal || !got.Copy || got.Sort || got.Handle != ".grip" || got.AnimationMs != 200 {
		t.Fatalf("parsed = %+v", got)
	}
}

func TestParseItemMalformedFailsSoftPerField(t *testing.T) {
	// copy is unparseable, animation is valid; each field falls back alone.
	n := itemNode(`{"copy":"yes","animation":80}`)
	got := ParseItem(n, zerolog.Nop())
	if got.Copy {
		t.Error("unparseable copy should fall back to false")
	}
	if got.AnimationMs != 80 {
		t.Errorf("animation = %d, want 80", got.AnimationMs)
	}
}

func TestParseItemGarbagePayload(t *testing.T) {
	got := ParseItem(itemNode(`{not json`), zerolog.Nop())
	if got != DefaultItem() {
		t.Fatalf("garbage payload should yield pure defaults, got %+v", got)
	}
}

func TestParseItemInvalidHandleDropped(t *testing.T) {
	got := ParseItem(itemNode(`{"handle":".a b"}`), zerolog.Nop())
	if got.Handle != "" {
		t.Fatalf("invalid handle selector should be dropped, got %q", got.Handle)
	}
}

func TestParseContainerAccessOrders(t *testing.T) {
	cases := []struct {
		payload string
		want    access.Order
	}{
		{`{"access":{"order":["allow","deny"],"allow":[".library"]}}`, access.AllowFirst},
		{`{"access":{"order":["deny","allow"],"allow":[".library"]}}`, access.DenyFirst},
		{`{"access":{"order":"allow-first"}}`, access.AllowFirst},
		{`{"access":{}}`, access.DenyFirst},
	}
	for _, tc := range cases {
		n := dom.NewNode("pane")
		n.SetAttr(AttrContainer, tc.payload)
		got := ParseContainer(n, zerolog.Nop())
		if got.Access == nil {
			t.Fatalf("payload %s: expected a policy", tc.payload)
		}
		if got.Access.Order() != tc.want {
			t.Errorf("payload %s: order = %v, want %v", tc.payload, got.Access.Order(), tc.want)
		}
	}
}

func TestParseContainerAdoptedSerialization(t *testing.T) {
	n := dom.NewNode("pane")
	n.SetAttr(AttrContainer, `{"adopted":{"status":"done","meta":{"rank":2}}}`)
	got := ParseContainer(n, zerolog.Nop())
	if got.Adopted["status"] != "done" {
		t.Errorf("string value should pass through, got %q", got.Adopted["status"])
	}
	if got.Adopted["meta"] != `{"rank":2}` {
		t.Errorf("structured value should serialize as JSON, got %q", got.Adopted["meta"])
	}
}

func TestParseContainerWithoutDeclarations(t *testing.T) {
	n := dom.NewNode("pane")
	n.SetAttr(AttrContainer, "")
	got := ParseContainer(n, zerolog.Nop())
	if got.Access != nil || got.Adopted != nil {
		t.Fatalf("bare container should have no policy or adoption rules: %+v", got)
	}
}

func TestNearestKeyHint(t *testing.T) {
	if got := nearestKey("sortt", itemKeys); got != "sort" {
		t.Fatalf("nearestKey(sortt) = %q, want sort", got)
	}
	if got := nearestKey("zzzzzz", itemKeys); got != "" {
		t.Fatalf("distant key should have no hint, got %q", got)
	}
}

func TestMarkers(t *testing.T) {
	n := dom.NewNode("card")
	if IsItem(n) || IsContainer(n) {
		t.Fatal("unmarked node")
	}
	n.SetAttr(AttrItem, "")
	if !IsItem(n) {
		t.Fatal("presence of the attribute is the marker")
	}
}
