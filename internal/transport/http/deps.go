package http

import (
	"github.com/smartbudget/api/internal/application/bills"
	"github.com/smartbudget/api/internal/application/budget"
	"github.com/smartbudget/api/internal/application/otp"
)

// Deps holds the application services the router dispatches to. They are
// built in main so the scheduler can share the same instances.
type Deps struct {
	OTPService    otp.Service
	BudgetService budget.Service
	BillsService  bills.Service
}
