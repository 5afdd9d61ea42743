package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tourmate/internal/model"
	"github.com/iliyamo/tourmate/internal/recommend"
)

func TestRupees(t *testing.T) {
	assert.Equal(t, "100,000", Rupees(100000.0))
	assert.Equal(t, "2,500", Rupees(int64(2500)))
	assert.Equal(t, "999", Rupees(999))
}

func TestTableRowsAndFallbackHotel(t *testing.T) {
	cached := recommend.HotelRecommendation{Name: "Cached Inn", Category: recommend.Budget, Star: 2}
	clients := []model.ClientRecord{
		{ID: 11, ClientName: "Anil", Destination: "Ooty", Days: 2, Budget: 120000},
		{ID: 12, ClientName: "Bela", Destination: "Leh", Days: 6, Budget: 80000, RecommendedHotel: &cached},
	}
	var buf bytes.Buffer
	require.NoError(t, New().Table(&buf, clients))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "<tr>\n"))
	assert.Contains(t, out, "₹120,000")
	assert.Contains(t, out, "Taj Palace / Luxury Resort")
	assert.Contains(t, out, "Cached Inn")
	assert.Contains(t, out, `action="/clients/12/delete"`)
	assert.NotContains(t, out, "noClientsMsg")
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Table(&buf, nil))
	assert.Contains(t, buf.String(), `id="noClientsMsg"`)
}

func TestSummary(t *testing.T) {
	rec := model.ClientRecord{ID: 1, ClientName: "Chitra", Destination: "Munnar", Days: 4, Budget: 30000}
	var buf bytes.Buffer
	require.NoError(t, New().Summary(&buf, rec))
	out := buf.String()

	assert.Contains(t, out, "<strong>Duration:</strong> 4 days")
	assert.Contains(t, out, "<strong>Total Budget:</strong> ₹30,000")
	assert.Contains(t, out, "<strong>Per Day Budget:</strong> ₹7,500")
	assert.Contains(t, out, PlanLine)
	assert.Contains(t, out, "<strong>Hotel Lake View / Ibis</strong> (Standard - 3★)")
}

func TestOutputIsEscaped(t *testing.T) {
	rec := model.ClientRecord{ClientName: "<script>alert(1)</script>", Destination: "Goa", Days: 1, Budget: 1}
	var buf bytes.Buffer
	require.NoError(t, New().Summary(&buf, rec))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestPage(t *testing.T) {
	rec := model.ClientRecord{ID: 3, ClientName: "Dev", Destination: "Agra", Days: 2, Budget: 9000}
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, ClientsPage, PageData{Clients: []model.ClientRecord{rec}, Summary: &rec}, nil))
	out := buf.String()
	assert.Contains(t, out, `id="summaryCard"`)
	assert.Contains(t, out, "Hostel / Guest House")
	assert.Contains(t, out, `id="clientsTableBody"`)
}
