// Package render produces the HTML views of the client list and the tour
// summary. Templates implements echo.Renderer so handlers can call c.Render.
package render

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iliyamo/tourmate/internal/model"
)

// View names.
const (
	ClientsPage  = "clients_page"
	ClientsTable = "clients_table"
	TourSummary  = "tour_summary"
)

// PlanLine is shown under every summary.
const PlanLine = "Recommended plan: Standard sightseeing, local food exploration, and cultural visits."

// PageData feeds the full clients page.
type PageData struct {
	Clients []model.ClientRecord
	Summary *model.ClientRecord
}

// Templates holds the parsed views.
type Templates struct {
	t *template.Template
}

// New parses the built-in views.
func New() *Templates {
	t := template.Must(template.New("tourmate").Funcs(template.FuncMap{
		"rupees":   Rupees,
		"planLine": func() string { return PlanLine },
	}).Parse(views))
	return &Templates{t: t}
}

// Render implements echo.Renderer.
func (t *Templates) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

// Table writes the client table, or the empty-list message when there are no
// records.
func (t *Templates) Table(w io.Writer, clients []model.ClientRecord) error {
	return t.t.ExecuteTemplate(w, ClientsTable, clients)
}

// Summary writes the tour summary card for one record.
func (t *Templates) Summary(w io.Writer, rec model.ClientRecord) error {
	return t.t.ExecuteTemplate(w, TourSummary, rec)
}

var printer = message.NewPrinter(language.English)

// Rupees formats an amount with thousands grouping. Whole amounts carry no
// decimals.
func Rupees(v interface{}) string {
	var f float64
	switch n := v.(type) {
	case int:
		return printer.Sprintf("%d", n)
	case int64:
		return printer.Sprintf("%d", n)
	case float64:
		f = n
	default:
		return fmt.Sprint(v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}
	return printer.Sprintf("%.2f", f)
}

const views = `
{{define "clients_table"}}<table class="clients-table">
<thead><tr><th>Client</th><th>Destination</th><th>Days</th><th>Budget</th><th>Recommended Hotel</th><th></th></tr></thead>
<tbody id="clientsTableBody">{{range .}}
<tr>
<td>{{.ClientName}}</td>
<td>{{.Destination}}</td>
<td>{{.Days}}</td>
<td>₹{{rupees .Budget}}</td>
<td>{{.Hotel.Name}}</td>
<td><form method="post" action="/clients/{{.ID}}/delete"><button class="btn btn-small btn-danger" type="submit">Delete</button></form></td>
</tr>{{end}}
</tbody>
</table>{{if not .}}
<p id="noClientsMsg">No clients added yet.</p>{{end}}{{end}}

{{define "tour_summary"}}<div id="summaryCard" class="card">
<div id="tourSummary">
<p><strong>Client Name:</strong> {{.ClientName}}</p>
<p><strong>Destination:</strong> {{.Destination}}</p>
<p><strong>Duration:</strong> {{.Days}} days</p>
<p><strong>Total Budget:</strong> ₹{{rupees .Budget}}</p>
<p><strong>Per Day Budget:</strong> ₹{{rupees .PerDay}}</p>
<p>{{planLine}}</p>
</div>
<div id="recommendedHotel">{{with .Hotel}}
<p><strong>{{.Name}}</strong> ({{.Category}} - {{.Star}}★)</p>{{end}}
</div>
</div>{{end}}

{{define "clients_page"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>TourMate – Clients</title></head>
<body>
<nav class="nav-links"><a href="/clients">Clients</a>
<form method="post" action="/logout"><button type="submit">Logout</button></form></nav>
<form method="post" action="/clients" class="client-form">
<input name="clientName" placeholder="Client name" required>
<input name="destination" placeholder="Destination" required>
<input name="days" type="number" min="1" placeholder="Days" required>
<input name="budget" type="number" min="0" placeholder="Budget (₹)" required>
<button class="btn" type="submit">Save client</button>
</form>
{{with .Summary}}{{template "tour_summary" .}}{{end}}
{{template "clients_table" .Clients}}
</body>
</html>{{end}}
`
