package controller

import "github.com/blackwell-systems/libractl/internal/library"

// TransactionsController drives the read-only transaction history.
type TransactionsController struct {
	*pager[library.Transaction]
}

// NewTransactionsController returns a controller with an empty first page.
func NewTransactionsController(gw TransactionsGateway, d *Deps) *TransactionsController {
	return &TransactionsController{
		pager: newPager[library.Transaction](d, "transactions.fetch", "Failed to load transactions", gw.ListTransactions),
	}
}
