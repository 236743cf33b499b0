package models

// SortDirection is "asc" or "desc". The zero value means unset.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// OrderField is a sortable link attribute.
type OrderField string

const (
	OrderByDescription OrderField = "description"
	OrderByURL         OrderField = "url"
	OrderByCreatedAt   OrderField = "createdAt"
)

// OrderClause sorts by one field. Clauses apply in sequence as tie-breaks.
type OrderClause struct {
	Field     OrderField    `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// FeedArgs are the client supplied feed arguments, exactly as received.
type FeedArgs struct {
	Filter  *string       `json:"filter,omitempty"`
	Skip    *int          `json:"skip,omitempty"`
	Take    *int          `json:"take,omitempty"`
	OrderBy []OrderClause `json:"orderBy,omitempty"`
}

// FeedQuery is the normalized read handed to the store.
//   - Filter: empty matches every link
//   - OrderBy: only clauses with a direction; empty means store order
//   - Take: nil means no limit
type FeedQuery struct {
	Filter  string
	OrderBy []OrderClause
	Skip    int
	Take    *int
}

// Feed is one page of links plus the filtered total.
type Feed struct {
	Links []Link `json:"links"`
	Count int    `json:"count"`
	ID    string `json:"id"`
}
