// Package render turns restaurant data into HTML. Each exported method takes
// plain data and writes one rendered fragment; nothing here fetches data or
// keeps state between calls.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/vbonduro/restaurantinfo/internal/domain"
)

// ratingSteps are the star-control values offered by the review form,
// highest first so the radios lay out right to left.
var ratingSteps = []float64{5, 4.5, 4, 3.5, 3, 2.5, 2, 1.5, 1, 0.5}

type Renderer struct {
	tmpl *template.Template
}

// New parses the page and partial templates from fsys once.
func New(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"stars":       stars,
		"rating":      formatRating,
		"ratingSteps": func() []float64 { return ratingSteps },
	}).ParseFS(fsys, "base.html", "pages/*.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the full restaurant detail page.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	return r.tmpl.ExecuteTemplate(w, "base", v)
}

// ReviewItem writes a single review list item.
func (r *Renderer) ReviewItem(w io.Writer, review domain.Review) error {
	return r.tmpl.ExecuteTemplate(w, "review_item", review)
}

func formatRating(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// stars draws a rating out of five, e.g. 3.5 -> "★★★½☆".
func stars(f float64) string {
	if math.IsNaN(f) {
		f = 0
	}
	f = math.Max(0, math.Min(5, f))
	full := int(f)
	half := f-float64(full) >= 0.5
	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	empty := 5 - full
	if half {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}
