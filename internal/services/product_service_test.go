package services

import (
	"testing"
	"time"
)

func TestProductCreatePassesFieldsThrough(t *testing.T) {
	s := NewProductService(newTestDB(t))

	doc, err := s.Create(map[string]interface{}{
		"name":  "Widget",
		"price": 9.99,
		"sku":   "W-1",
		"id":    "caller-supplied", // must be ignored
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if doc["id"] == "caller-supplied" || doc["id"] == "" {
		t.Fatalf("expected a generated id, got %v", doc["id"])
	}
	if doc["name"] != "Widget" || doc["price"] != 9.99 || doc["sku"] != "W-1" {
		t.Fatalf("expected caller fields preserved, got %+v", doc)
	}
	if _, ok := doc["createdAt"].(time.Time); !ok {
		t.Fatalf("expected createdAt timestamp, got %v", doc["createdAt"])
	}

	stored, err := s.GetByID(doc["id"].(string))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored["name"] != "Widget" {
		t.Fatalf("expected stored name Widget, got %v", stored["name"])
	}
}

func TestProductUpdateMergesPartialPayload(t *testing.T) {
	s := NewProductService(newTestDB(t))

	doc, err := s.Create(map[string]interface{}{
		"name":        "Widget",
		"description": "round",
		"price":       9.99,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := doc["id"].(string)
	createdAt := doc["createdAt"].(time.Time)

	updated, err := s.Update(id, map[string]interface{}{
		"price":     12.5,
		"id":        "tampered",     // immutable
		"createdAt": "1999-01-01T0", // immutable
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated["id"] != id {
		t.Fatalf("id must be immutable, got %v", updated["id"])
	}
	if !updated["createdAt"].(time.Time).Equal(createdAt) {
		t.Fatalf("createdAt must be immutable, got %v", updated["createdAt"])
	}
	if updated["price"] != 12.5 {
		t.Fatalf("expected updated price, got %v", updated["price"])
	}
	if updated["name"] != "Widget" || updated["description"] != "round" {
		t.Fatalf("fields absent from the payload must be retained, got %+v", updated)
	}
	if !updated["updatedAt"].(time.Time).After(createdAt) && !updated["updatedAt"].(time.Time).Equal(createdAt) {
		t.Fatalf("expected updatedAt to be refreshed, got %v", updated["updatedAt"])
	}
}

func TestProductUpdateMissing(t *testing.T) {
	s := NewProductService(newTestDB(t))
	if _, err := s.Update("missing", map[string]interface{}{"price": 1}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductSearchAndOrder(t *testing.T) {
	s := NewProductService(newTestDB(t))

	if _, err := s.Create(map[string]interface{}{"name": "Red Widget"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(map[string]interface{}{"name": "Gizmo", "description": "a widget-like thing"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(map[string]interface{}{"name": "Sprocket"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	docs, err := s.GetAll("WIDGET")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(docs))
	}
	// Newest first: Gizmo was created after Red Widget.
	if docs[0]["name"] != "Gizmo" || docs[1]["name"] != "Red Widget" {
		t.Fatalf("expected newest-first order, got %v then %v", docs[0]["name"], docs[1]["name"])
	}

	all, err := s.GetAll("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}
	if all[0]["name"] != "Sprocket" {
		t.Fatalf("expected Sprocket first, got %v", all[0]["name"])
	}
}

func TestProductDelete(t *testing.T) {
	s := NewProductService(newTestDB(t))

	doc, err := s.Create(map[string]interface{}{"name": "Widget"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := doc["id"].(string)

	if err := s.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.GetByID(id); err != ErrNotFound {
		t.Fatalf("expected product to be gone, got %v", err)
	}
}
