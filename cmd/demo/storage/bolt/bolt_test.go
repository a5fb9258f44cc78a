package bolt

import (
	"context"
	"os"
	"testing"

	"github.com/fieldexpr/fieldexpr/cmd/demo/storage"
)

func TestImpl(t *testing.T) {
	// Just confirm that this code compiles.
	var _ storage.Storage = &Storage{}
}

func TestBasics(t *testing.T) {
	var (
		filename = "storage.db"
		sid      = "simpsons"
	)

	s, err := NewStorage(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return
		}
		if err := os.Remove(filename); err != nil {
			t.Fatal(err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	if err := s.MakeSite(ctx, sid); err != nil {
		t.Fatal(err)
	}

	{
		ds := []*storage.Document{
			{
				Did: "home",
				Blocks: []*storage.Block{
					{
						Bid:  "b0",
						Type: "heading",
						Props: map[string]interface{}{
							"text": map[string]interface{}{
								"mode":  "static",
								"value": "Tacos",
							},
						},
					},
				},
			},
			{
				Did: "about",
				Blocks: []*storage.Block{
					{
						Bid:  "b0",
						Type: "paragraph",
						Props: map[string]interface{}{
							"text": "Queso",
						},
					},
				},
			},
		}

		if err := s.WriteDocs(ctx, sid, ds); err != nil {
			t.Fatal(err)
		}
	}

	check := func(did, blockType string) {
		d, err := s.GetDoc(ctx, sid, did)
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Blocks) != 1 {
			t.Fatalf("%s has %d blocks", did, len(d.Blocks))
		}
		if d.Blocks[0].Type != blockType {
			t.Fatalf(`"%s" != "%s"`, d.Blocks[0].Type, blockType)
		}
	}

	check("home", "heading")
	check("about", "paragraph")

	{
		// Wrapped props survive the round trip.
		d, err := s.GetDoc(ctx, sid, "home")
		if err != nil {
			t.Fatal(err)
		}
		w, is := d.Blocks[0].Props["text"].(map[string]interface{})
		if !is {
			t.Fatalf("%#v", d.Blocks[0].Props["text"])
		}
		if w["value"] != "Tacos" {
			t.Fatal(w)
		}
	}

	{
		// Enumerate the site.
		ds, err := s.GetSite(ctx, sid)
		if err != nil {
			t.Fatal(err)
		}
		if len(ds) != 2 {
			t.Fatal(len(ds))
		}
	}

	{
		// Delete one.
		ds := []*storage.Document{
			{
				Did:     "about",
				Deleted: true,
			},
		}
		if err := s.WriteDocs(ctx, sid, ds); err != nil {
			t.Fatal(err)
		}
		if _, err := s.GetDoc(ctx, sid, "about"); err != storage.NotFound {
			t.Fatalf("expected NotFound; got %v", err)
		}
	}

	if err := s.RemSite(ctx, sid); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetDoc(ctx, sid, "home"); err != storage.NotFound {
		t.Fatalf("expected NotFound; got %v", err)
	}
}
