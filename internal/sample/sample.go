// Package sample generates the demo dataset: 12 employee columns and a
// deterministic row set of any size.
package sample

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-theft-auto/grid"
)

// DefaultRowCount is the size of the demo dataset.
const DefaultRowCount = 10000

var (
	names       = []string{"John Doe", "Jane Smith", "Bob Johnson", "Alice Brown", "Charlie Wilson", "Diana Davis", "Eve Miller", "Frank Garcia"}
	companies   = []string{"TechCorp", "DataSys", "CloudInc", "WebSoft", "AppDev", "CodeLab", "DevStudio", "TechFlow"}
	positions   = []string{"Developer", "Designer", "Manager", "Analyst", "Engineer", "Consultant", "Specialist", "Director"}
	departments = []string{"Engineering", "Design", "Marketing", "Sales", "HR", "Finance", "Operations", "Support"}
	locations   = []string{"New York", "San Francisco", "London", "Tokyo", "Berlin", "Sydney", "Toronto", "Amsterdam"}
	statuses    = []string{"Active", "Inactive", "Pending", "On Leave"}
)

// Columns returns the demo column set: ID and Name frozen left, Actions
// frozen right, formatted Salary and Start Date.
func Columns() []grid.Column {
	currency, _ := grid.NamedFormatter("currency")
	date, _ := grid.NamedFormatter("date")
	return []grid.Column{
		{Field: "id", Header: "ID", Width: "80px", Freeze: grid.FreezeLeft, Sortable: true},
		{Field: "name", Header: "Name", Width: "200px", Freeze: grid.FreezeLeft, Sortable: true},
		{Field: "email", Header: "Email", Width: "250px", Sortable: true},
		{Field: "phone", Header: "Phone", Width: "150px", Sortable: true},
		{Field: "company", Header: "Company", Width: "200px", Sortable: true},
		{Field: "position", Header: "Position", Width: "180px", Sortable: true},
		{Field: "salary", Header: "Salary", Width: "120px", Sortable: true, Formatter: currency},
		{Field: "department", Header: "Department", Width: "150px", Sortable: true},
		{Field: "location", Header: "Location", Width: "150px", Sortable: true},
		{Field: "startDate", Header: "Start Date", Width: "120px", Sortable: true, Formatter: date},
		{Field: "status", Header: "Status", Width: "100px", Sortable: true},
		{Field: "actions", Header: "Actions", Width: "120px", Freeze: grid.FreezeRight},
	}
}

// Rows generates n rows. The same seed always yields the same rows.
func Rows(n int, seed uint64) []grid.Row {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pick := func(s []string) string { return s[r.IntN(len(s))] }

	rows := make([]grid.Row, n)
	for i := range rows {
		id := i + 1
		rows[i] = grid.Row{
			"id":         id,
			"name":       pick(names),
			"email":      fmt.Sprintf("user%d@example.com", id),
			"phone":      fmt.Sprintf("+1-555-%04d", r.IntN(10000)),
			"company":    pick(companies),
			"position":   pick(positions),
			"salary":     r.IntN(150000) + 50000,
			"department": pick(departments),
			"location":   pick(locations),
			"startDate":  time.Date(2020+r.IntN(4), time.Month(r.IntN(12)+1), r.IntN(28)+1, 0, 0, 0, 0, time.UTC),
			"status":     pick(statuses),
			"actions":    "Edit | Delete",
		}
	}
	return rows
}
