package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/listkit/pkg/core"
)

// UserStatus is the demo account-status enum.
var UserStatus = core.MapEnum{1: "Active", 2: "Suspended", 3: "Closed"}

// Dataset is the in-memory backing data for the demo list page. It stands
// in for whatever service a real admin page would fetch from.
type Dataset struct {
	users []core.Record
}

var demoNames = []string{
	"Ada Lovelace", "Grace Hopper", "Alan Turing", "Edsger Dijkstra",
	"Barbara Liskov", "Donald Knuth", "Frances Allen", "Tony Hoare",
	"Niklaus Wirth", "Margaret Hamilton",
}

var demoDepts = []string{
	"eng/platform/tools", "eng/product/admin", "ops/support", "finance/billing",
}

// NewDataset builds a deterministic-ish demo dataset of n users.
func NewDataset(n int) *Dataset {
	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	users := make([]core.Record, 0, n)
	for i := 0; i < n; i++ {
		name := demoNames[i%len(demoNames)]
		users = append(users, core.Record{
			"id":      uuid.NewString(),
			"name":    name,
			"email":   strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
			"phone":   fmt.Sprintf("555-01%02d", i),
			"status":  i%3 + 1,
			"balance": float64(i*1337) + 0.5,
			"dept":    demoDepts[i%len(demoDepts)],
			"created": base.AddDate(0, 0, i),
		})
	}
	return &Dataset{users: users}
}

// Fetch implements the engine's fetch boundary over the demo data. It
// understands the name (substring, case-insensitive) and status (equality)
// filters and the standard pagination params.
func (d *Dataset) Fetch(_ context.Context, params core.Payload) (*core.PageResult, error) {
	name := strings.ToLower(paramString(params, "name"))
	status := paramString(params, "status")

	var matched []core.Record
	for _, u := range d.users {
		if name != "" && !strings.Contains(strings.ToLower(paramString(u, "name")), name) {
			continue
		}
		if status != "" && paramString(u, "status") != status {
			continue
		}
		matched = append(matched, u)
	}

	page := paramInt(params, core.ParamPage, 1)
	pageSize := paramInt(params, core.ParamPageSize, 10)

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &core.PageResult{
		List:     matched[start:end],
		Page:     page,
		PageSize: pageSize,
		Total:    len(matched),
	}, nil
}

func paramString(p core.Payload, key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func paramInt(p core.Payload, key string, def int) int {
	s := paramString(p, key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
