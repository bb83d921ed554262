package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/adyen/swaglabs/internal/models"
)

// layoutTemplate holds the blocks shared by every page
const layoutTemplate = "layout.html"

// Page is embedded in the template data of every signed-in page
type Page struct {
	Heading   string
	CartCount int
}

// parsePage parses a page template together with the shared layout.
// The page is parsed first so Execute renders it.
func parsePage(templateDir, name string) (*template.Template, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, name),
		filepath.Join(templateDir, layoutTemplate),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// render executes tmpl into a buffer so a template error never produces a
// half-written page
func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// LineItem is a cart row as rendered on the cart and overview pages
type LineItem struct {
	ID          int
	Name        string
	Description string
	Price       string
}

func lineItems(items []models.Item) []LineItem {
	lines := make([]LineItem, len(items))
	for i, item := range items {
		lines[i] = LineItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price(),
		}
	}
	return lines
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
