package view

import (
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
)

// Combined is the account-plus-forwarding presentation
var Combined = Table[models.CombinedView]{Columns: []Column[models.CombinedView]{
	{Key: "id", Header: "ID", Value: func(r models.CombinedView) (string, bool) { return text(r.ID) }},
	{Key: "email", Header: "Email", Searchable: true, Value: func(r models.CombinedView) (string, bool) { return text(r.Email) }},
	{Key: "forwardingEmail", Header: "ForwardingEmail", Searchable: true, Value: func(r models.CombinedView) (string, bool) { return text(r.ForwardingEmail) }},
	{Key: "status", Header: "Status", Value: func(r models.CombinedView) (string, bool) { return text(string(r.Status)) }},
}}

// Accounts is the accounts-only presentation
var Accounts = Table[models.Account]{Columns: []Column[models.Account]{
	{Key: "email", Header: "Email", Searchable: true, Value: func(r models.Account) (string, bool) { return text(r.Email) }},
	{Key: "role", Header: "Role", Value: func(r models.Account) (string, bool) { return text(string(r.Role)) }},
	{Key: "status", Header: "Status", Value: func(r models.Account) (string, bool) { return text(string(r.Status)) }},
	{Key: "createdAt", Header: "CreatedAt", Value: func(r models.Account) (string, bool) { return timeValue(r.CreatedAt) }},
	{Key: "lastLoginAt", Header: "LastLoginAt", Value: func(r models.Account) (string, bool) { return optionalTime(r.LastLoginAt) }},
}}

// Forwardings is the forwarding-only presentation
var Forwardings = Table[models.ForwardingConfig]{Columns: []Column[models.ForwardingConfig]{
	{Key: "accountEmail", Header: "AccountEmail", Searchable: true, Value: func(r models.ForwardingConfig) (string, bool) { return text(r.AccountEmail) }},
	{Key: "forwardingEmail", Header: "ForwardingEmail", Searchable: true, Value: func(r models.ForwardingConfig) (string, bool) { return text(r.ForwardingEmail) }},
	{Key: "status", Header: "Status", Value: func(r models.ForwardingConfig) (string, bool) { return text(string(r.Status)) }},
	{Key: "createdAt", Header: "CreatedAt", Value: func(r models.ForwardingConfig) (string, bool) { return timeValue(r.CreatedAt) }},
	{Key: "updatedAt", Header: "UpdatedAt", Value: func(r models.ForwardingConfig) (string, bool) { return timeValue(r.UpdatedAt) }},
}}

// CombinedCSV renders rows as ID,Email,ForwardingEmail,Status
func CombinedCSV(rows []models.CombinedView) string {
	return Combined.CSV(rows)
}

// AccountsCSV renders rows as Email,Role,Status,CreatedAt,LastLoginAt
func AccountsCSV(rows []models.Account) string {
	return Accounts.CSV(rows)
}

// ForwardingsCSV renders rows as AccountEmail,ForwardingEmail,Status,CreatedAt,UpdatedAt
func ForwardingsCSV(rows []models.ForwardingConfig) string {
	return Forwardings.CSV(rows)
}
