package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProductServiceProvider defines the interface for product services.
// Products are schema-less documents: callers supply whatever fields they
// like and get them back merged with the generated id and timestamps.
type ProductServiceProvider interface {
	Create(doc map[string]interface{}) (map[string]interface{}, error)
	GetByID(id string) (map[string]interface{}, error)
	GetAll(search string) ([]map[string]interface{}, error)
	Update(id string, updates map[string]interface{}) (map[string]interface{}, error)
	Delete(id string) error
}

// ProductService stores product documents as JSON text, mirroring the name
// and description fields into real columns so they can be searched.
type ProductService struct {
	db *sql.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

// managedFields are set by the service, never by the caller.
var managedFields = []string{"id", "createdAt", "updatedAt"}

func stripManagedFields(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, f := range managedFields {
		delete(out, f)
	}
	return out
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// assembleDoc rebuilds the API-facing document from a stored row.
func assembleDoc(docJSON string, id string, createdAt, updatedAt time.Time) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored product %s: %w", id, err)
	}
	doc["id"] = id
	doc["createdAt"] = createdAt
	doc["updatedAt"] = updatedAt
	return doc, nil
}

// Create persists a new product document.
func (s *ProductService) Create(doc map[string]interface{}) (map[string]interface{}, error) {
	fields := stripManagedFields(doc)
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	stmt, err := s.db.Prepare("INSERT INTO products(id, name, description, doc_json, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(id, stringField(fields, "name"), stringField(fields, "description"), string(raw), formatStoredTime(now), formatStoredTime(now))
	if err != nil {
		return nil, err
	}

	return assembleDoc(string(raw), id, now, now)
}

// GetByID retrieves a single product document.
func (s *ProductService) GetByID(id string) (map[string]interface{}, error) {
	row := s.db.QueryRow("SELECT doc_json, created_at, updated_at FROM products WHERE id = ?", id)
	return s.scanDoc(row, id)
}

func (s *ProductService) scanDoc(row *sql.Row, id string) (map[string]interface{}, error) {
	var docJSON, createdAt, updatedAt string
	if err := row.Scan(&docJSON, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	created, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseStoredTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return assembleDoc(docJSON, id, created, updated)
}

// GetAll retrieves product documents newest-first, optionally filtered by a
// case-insensitive substring match on name or description.
func (s *ProductService) GetAll(search string) ([]map[string]interface{}, error) {
	query := "SELECT id, doc_json, created_at, updated_at FROM products"
	var args []interface{}
	if search != "" {
		query += " WHERE LOWER(name) LIKE ? OR LOWER(description) LIKE ?"
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []map[string]interface{}{}
	for rows.Next() {
		var id, docJSON, createdAt, updatedAt string
		if err := rows.Scan(&id, &docJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		created, err := parseStoredTime(createdAt)
		if err != nil {
			return nil, err
		}
		updated, err := parseStoredTime(updatedAt)
		if err != nil {
			return nil, err
		}
		doc, err := assembleDoc(docJSON, id, created, updated)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Update merges a partial document into an existing product. The id and
// createdAt fields are immutable; updatedAt is refreshed. Any authenticated
// caller may update any product.
func (s *ProductService) Update(id string, updates map[string]interface{}) (map[string]interface{}, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var docJSON, createdAt string
	err = tx.QueryRow("SELECT doc_json, created_at FROM products WHERE id = ?", id).Scan(&docJSON, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal([]byte(docJSON), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode stored product %s: %w", id, err)
	}
	for k, v := range stripManagedFields(updates) {
		fields[k] = v
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.Exec("UPDATE products SET name = ?, description = ?, doc_json = ?, updated_at = ? WHERE id = ?",
		stringField(fields, "name"), stringField(fields, "description"), string(raw), formatStoredTime(now), id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}
	return assembleDoc(string(raw), id, created, now)
}

// Delete removes a product. Any authenticated caller may delete any
// product; there is no ownership check.
func (s *ProductService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
