package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctions      Table = "auctions"
	TableAuctionEvents Table = "auction_events"
	TableBalances      Table = "ledger_balances"
	TablePayouts       Table = "ledger_payouts"
	TableDeposits      Table = "ledger_deposits"
	TableAccessHolders Table = "access_holders"
	TableCustodyItems  Table = "custody_items"
)
