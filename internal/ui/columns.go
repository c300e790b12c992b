package ui

import (
	"github.com/leapstack-labs/listkit/pkg/column"
	"github.com/leapstack-labs/listkit/pkg/render"
)

// UserType is the registered record-type name for the demo user list.
const UserType = "demo.user"

func init() {
	column.Register(UserType, []column.Field{
		{Name: "id", Meta: column.Metadata{
			Title: "ID",
			Truncate: &render.TruncateSpec{
				Name:    render.TruncateSplit,
				Options: render.Options{"by": "-", "showIndex": "start"},
			},
		}},
		{Name: "name", Meta: column.Metadata{Title: "Name", Amend: true}},
		{Name: "email", Meta: column.Metadata{
			Title: "Contact",
			Format: &render.FormatSpec{
				Name:    render.FormatJoin,
				Options: render.Options{"with": "phone", "sep": " / "},
			},
		}},
		{Name: "status", Meta: column.Metadata{
			Title: "Status",
			Format: &render.FormatSpec{
				Name:    render.FormatConstant,
				Options: render.Options{"origin": UserStatus},
			},
		}},
		{Name: "balance", Meta: column.Metadata{
			Title:  "Balance",
			Format: &render.FormatSpec{Name: render.FormatMoney, Options: render.Options{"symbol": "$"}},
			Groups: []string{"finance"},
		}},
		{Name: "dept", Meta: column.Metadata{
			Title: "Team",
			Truncate: &render.TruncateSpec{
				Name:    render.TruncateSplit,
				Options: render.Options{"by": "/", "showIndex": "end"},
			},
		}},
		{Name: "created", Meta: column.Metadata{
			Title:  "Joined",
			Format: &render.FormatSpec{Name: render.FormatDate},
		}},
	})
}
