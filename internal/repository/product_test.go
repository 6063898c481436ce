package repository_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/product-cache/internal/model"
	"github.com/deppfellow/product-cache/internal/repository"
	"github.com/deppfellow/product-cache/internal/storeerr"
)

func newTestRepository(t *testing.T) (*repository.ProductRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewProductRepository(client), mr
}

func decodeProduct(t *testing.T, body string) *model.Product {
	t.Helper()

	p := &model.Product{}
	if err := p.UnmarshalJSON([]byte(body)); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return p
}

func TestSaveStoresJSONUnderDecimalID(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	reply, err := repo.Save(ctx, decodeProduct(t, `{"id":1,"name":"a"}`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if reply != "OK" {
		t.Fatalf("reply = %q, want OK", reply)
	}

	got, err := mr.Get("1")
	if err != nil {
		t.Fatalf("key 1 not stored: %v", err)
	}
	if got != `{"id":1,"name":"a"}` {
		t.Fatalf("stored %s", got)
	}
}

func TestSaveKeepsHTMLCharacters(t *testing.T) {
	repo, mr := newTestRepository(t)

	if _, err := repo.Save(context.Background(), decodeProduct(t, `{"id":1,"s":"<x> & y"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.CheckGet(t, "1", `{"id":1,"s":"<x> & y"}`)
}

func TestSaveOverwrites(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, decodeProduct(t, `{"id":9,"name":"old"}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Save(ctx, decodeProduct(t, `{"id":9,"name":"new"}`)); err != nil {
		t.Fatal(err)
	}

	mr.CheckGet(t, "9", `{"id":9,"name":"new"}`)
}

func TestRemoveReturnsDeletedCount(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	if err := mr.Set("4", `{"id":4}`); err != nil {
		t.Fatal(err)
	}

	removed, err := repo.Remove(ctx, 4)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if mr.Exists("4") {
		t.Fatal("key 4 still present")
	}

	removed, err = repo.Remove(ctx, 4)
	if err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d on missing key, want 0", removed)
	}
}

func TestFind(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	if err := mr.Set("12", `{"id":12,"price":3.5}`); err != nil {
		t.Fatal(err)
	}

	p, err := repo.Find(ctx, 12)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.ID != 12 {
		t.Fatalf("id = %d", p.ID)
	}
	if string(p.Attributes["price"]) != "3.5" {
		t.Fatalf("price = %s", p.Attributes["price"])
	}

	_, err = repo.Find(ctx, 13)
	if storeerr.ErrCode(err) != storeerr.KeyNotFound {
		t.Fatalf("missing key: got %v", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	repo, mr := newTestRepository(t)
	mr.Close()

	_, err := repo.Save(context.Background(), decodeProduct(t, `{"id":1}`))
	if err == nil {
		t.Fatal("expected error with store down")
	}
	if storeerr.ErrCode(err) == storeerr.KeyNotFound {
		t.Fatal("transport failure classified as missing key")
	}
}
