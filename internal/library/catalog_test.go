package library

import "testing"

func TestFind(t *testing.T) {
	c, ok := Find("medialog")
	if !ok || c.Endpoint != "/newmedialog" {
		t.Errorf("Find(medialog) = %+v, %v", c, ok)
	}
	if c.IDKey == "" {
		t.Error("collection has no identity field")
	}

	if _, ok := Find("nope"); ok {
		t.Error("unknown collection found")
	}
}
