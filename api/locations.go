package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"github.com/skybridgeair/flightops/db"
	"github.com/skybridgeair/flightops/types"
)

func ListLocations(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
		SELECT id, code, name, COALESCE(city, ''), COALESCE(country, '')
		FROM locations
		ORDER BY code
	`)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	locations := make([]types.Location, 0)
	for rows.Next() {
		var l types.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.City, &l.Country); err != nil {
			continue
		}
		locations = append(locations, l)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locations)
}

func CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req types.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" || req.Name == "" {
		http.Error(w, "code and name are required", http.StatusBadRequest)
		return
	}

	err := db.DB.QueryRow(`
		INSERT INTO locations (code, name, city, country)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Code, req.Name, req.City, req.Country).Scan(&req.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			http.Error(w, "Location code already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create location", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func UpdateLocation(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	var req types.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	err := db.DB.QueryRow(`
		UPDATE locations
		SET name = $1, city = $2, country = $3
		WHERE code = $4
		RETURNING id
	`, req.Name, req.City, req.Country, code).Scan(&req.ID)
	if err == sql.ErrNoRows {
		http.Error(w, "Location not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}
	req.Code = code

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func ListCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := db.DB.Query(`
		SELECT id, name, COALESCE(contact, ''), COALESCE(email, ''), COALESCE(phone, '')
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	customers := make([]types.Customer, 0)
	for rows.Next() {
		var c types.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Email, &c.Phone); err != nil {
			continue
		}
		customers = append(customers, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req types.Customer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	err := db.DB.QueryRow(`
		INSERT INTO customers (name, contact, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Name, req.Contact, req.Email, req.Phone).Scan(&req.ID)
	if err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}

	var req types.Customer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	err = db.DB.QueryRow(`
		UPDATE customers
		SET name = $1, contact = $2, email = $3, phone = $4
		WHERE id = $5
		RETURNING id
	`, req.Name, req.Contact, req.Email, req.Phone, id).Scan(&req.ID)
	if err == sql.ErrNoRows {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}
